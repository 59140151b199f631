// Package model flattens glTF 2.0 scenes into world-space triangle lists
// ready to be uploaded to vertex buffers.
package model

import (
	"errors"
	"math"

	"github.com/seqsense/pcgol/mat"
)

var (
	ErrEmptyModel   = errors.New("model has no triangles")
	ErrIndexOverrun = errors.New("vertex index out of range")
)

// Image is the source of a texture.
// Either URI (relative to the document, or a data URI) or Data is set.
type Image struct {
	URI      string
	Data     []byte
	MimeType string
}

type Material struct {
	BaseColor [4]float32
	// nil when the material has no base color texture
	Texture *Image
}

// Primitive is a de-indexed triangle list.
// Len(Positions) is a multiple of three and Normals/TexCoords have the same length.
type Primitive struct {
	Positions []mat.Vec3
	Normals   []mat.Vec3
	TexCoords [][2]float32
	Material  Material
}

func (p *Primitive) Len() int {
	return len(p.Positions)
}

type Bounds struct {
	Min, Max mat.Vec3
}

func (b Bounds) Center() mat.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Bounds) Size() mat.Vec3 {
	return b.Max.Sub(b.Min)
}

type Model struct {
	Primitives []Primitive
	Bounds     Bounds

	// number of primitives dropped because they are not triangle lists
	Skipped int
}

func (m *Model) Vertices() int {
	var n int
	for i := range m.Primitives {
		n += m.Primitives[i].Len()
	}
	return n
}

func (m *Model) updateBounds() {
	min := mat.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := mat.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := range m.Primitives {
		for _, v := range m.Primitives[i].Positions {
			for j := range v {
				if v[j] < min[j] {
					min[j] = v[j]
				}
				if v[j] > max[j] {
					max[j] = v[j]
				}
			}
		}
	}
	m.Bounds = Bounds{Min: min, Max: max}
}

func faceNormal(a, b, c mat.Vec3) mat.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.NormSq() == 0 {
		return mat.Vec3{0, 1, 0}
	}
	return n.Normalized()
}
