package main

import (
	"github.com/seqsense/arviewer/model"
	"github.com/seqsense/pcgol/mat"
)

// modelOffset places the model in front of the initial camera: centered
// horizontally, lowered by a third of its height and pushed back by twice its depth.
func modelOffset(b model.Bounds) mat.Vec3 {
	c, s := b.Center(), b.Size()
	return mat.Vec3{-c[0], -s[1] / 3, -s[2] / 0.5}
}

func (c rgb) vec3(intensity float32) mat.Vec3 {
	return mat.Vec3{
		float32(c>>16&0xff) / 255 * intensity,
		float32(c>>8&0xff) / 255 * intensity,
		float32(c&0xff) / 255 * intensity,
	}
}

// shading holds the light uniforms in world space with intensities applied.
type shading struct {
	sky, ground          mat.Vec3
	hemiDir              mat.Vec3
	lightDir, lightColor mat.Vec3
	pointPos, pointColor mat.Vec3
}

func newShading(l lightsConfig, offset mat.Vec3) shading {
	return shading{
		sky:        l.Hemisphere.Sky.vec3(l.Hemisphere.Intensity),
		ground:     l.Hemisphere.Ground.vec3(l.Hemisphere.Intensity),
		hemiDir:    mat.Vec3(l.Hemisphere.Direction).Normalized(),
		lightDir:   mat.Vec3(l.Directional.Direction).Normalized(),
		lightColor: l.Directional.Color.vec3(l.Directional.Intensity),
		pointPos:   offset.Add(mat.Vec3(l.Point.Position)),
		pointColor: l.Point.Color.vec3(l.Point.Intensity),
	}
}

// vertexData packs a primitive into position, normal and texture coordinate arrays.
func vertexData(p *model.Primitive) (pos, nrm, uv []float32) {
	n := p.Len()
	pos = make([]float32, 0, n*3)
	nrm = make([]float32, 0, n*3)
	uv = make([]float32, 0, n*2)
	for i := 0; i < n; i++ {
		pos = append(pos, p.Positions[i][0], p.Positions[i][1], p.Positions[i][2])
		nrm = append(nrm, p.Normals[i][0], p.Normals[i][1], p.Normals[i][2])
		if i < len(p.TexCoords) {
			uv = append(uv, p.TexCoords[i][0], p.TexCoords[i][1])
		} else {
			uv = append(uv, 0, 0)
		}
	}
	return
}
