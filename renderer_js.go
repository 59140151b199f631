package main

import (
	"syscall/js"

	"github.com/seqsense/arviewer/model"
	"github.com/seqsense/arviewer/xr"
	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"
)

// screen is the orbit camera drawn to the page canvas.
type screen struct {
	*perspectiveCamera
	canvas webgl.Canvas
}

func (s *screen) Resize(width, height int) {
	s.canvas.SetWidth(width)
	s.canvas.SetHeight(height)
	s.perspectiveCamera.Resize(width, height)
}

type gpuMesh struct {
	pos, nrm, uv webgl.Buffer
	n            int
	color        [4]float32
	tex          js.Value
	hasTex       bool
}

type renderer struct {
	gl      *webgl.WebGL
	program webgl.Program
	lights  lightsConfig

	uModel, uView, uProjection          webgl.Location
	uBaseColor, uOpacity                webgl.Location
	uUseTexture, uSampler               webgl.Location
	uSky, uGround, uHemisphereDirection webgl.Location
	uLightDirection, uLightColor        webgl.Location
	uPointLightPosition, uPointLightCol webgl.Location

	meshes   []gpuMesh
	textures []js.Value
	offset   mat.Vec3
	shade    shading
}

func newRenderer(gl *webgl.WebGL, lights lightsConfig) (*renderer, error) {
	program, err := newProgram(gl, vsModelSource, fsModelSource)
	if err != nil {
		return nil, err
	}
	r := &renderer{
		gl:      gl,
		program: program,
		lights:  lights,

		uModel:               gl.GetUniformLocation(program, "uModelMatrix"),
		uView:                gl.GetUniformLocation(program, "uViewMatrix"),
		uProjection:          gl.GetUniformLocation(program, "uProjectionMatrix"),
		uBaseColor:           gl.GetUniformLocation(program, "uBaseColor"),
		uOpacity:             gl.GetUniformLocation(program, "uOpacity"),
		uUseTexture:          gl.GetUniformLocation(program, "uUseTexture"),
		uSampler:             gl.GetUniformLocation(program, "uSampler"),
		uSky:                 gl.GetUniformLocation(program, "uSkyColor"),
		uGround:              gl.GetUniformLocation(program, "uGroundColor"),
		uHemisphereDirection: gl.GetUniformLocation(program, "uHemisphereDirection"),
		uLightDirection:      gl.GetUniformLocation(program, "uLightDirection"),
		uLightColor:          gl.GetUniformLocation(program, "uLightColor"),
		uPointLightPosition:  gl.GetUniformLocation(program, "uPointLightPosition"),
		uPointLightCol:       gl.GetUniformLocation(program, "uPointLightColor"),

		shade: newShading(lights, mat.Vec3{}),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearDepth(1.0)

	gl.UseProgram(program)
	gl.EnableVertexAttribArray(aPosition)
	gl.EnableVertexAttribArray(aNormal)
	gl.EnableVertexAttribArray(aTexCoord)

	return r, nil
}

// SetModel replaces the GPU resources with the ones of m.
func (r *renderer) SetModel(m *loadedModel) {
	r.release()

	r.offset = modelOffset(m.Bounds)
	r.shade = newShading(r.lights, r.offset)

	textures := make(map[*model.Image]js.Value)
	for i := range m.Primitives {
		p := &m.Primitives[i]
		pos, nrm, uv := vertexData(p)
		mesh := gpuMesh{
			pos:   r.buffer(pos),
			nrm:   r.buffer(nrm),
			uv:    r.buffer(uv),
			n:     p.Len(),
			color: p.Material.BaseColor,
		}
		if img := p.Material.Texture; img != nil {
			if el := m.images[img]; el.Truthy() {
				tex, ok := textures[img]
				if !ok {
					tex = r.texture(el)
					textures[img] = tex
				}
				mesh.tex, mesh.hasTex = tex, true
			}
		}
		r.meshes = append(r.meshes, mesh)
	}
}

func (r *renderer) buffer(data []float32) webgl.Buffer {
	gl := r.gl
	buf := gl.CreateBuffer()
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(data), gl.STATIC_DRAW)
	return buf
}

func (r *renderer) texture(img js.Value) js.Value {
	g := r.gl.JS()
	tex := g.Call("createTexture")
	target := g.Get("TEXTURE_2D")
	g.Call("bindTexture", target, tex)
	g.Call("pixelStorei", g.Get("UNPACK_FLIP_Y_WEBGL"), false)
	g.Call("texImage2D", target, 0, g.Get("RGBA"), g.Get("RGBA"), g.Get("UNSIGNED_BYTE"), img)
	g.Call("generateMipmap", target)
	g.Call("texParameteri", target, g.Get("TEXTURE_MIN_FILTER"), g.Get("LINEAR_MIPMAP_LINEAR"))
	g.Call("texParameteri", target, g.Get("TEXTURE_MAG_FILTER"), g.Get("LINEAR"))
	g.Call("texParameteri", target, g.Get("TEXTURE_WRAP_S"), g.Get("REPEAT"))
	g.Call("texParameteri", target, g.Get("TEXTURE_WRAP_T"), g.Get("REPEAT"))
	r.textures = append(r.textures, tex)
	return tex
}

func (r *renderer) release() {
	g := r.gl.JS()
	for _, m := range r.meshes {
		g.Call("deleteBuffer", js.Value(m.pos))
		g.Call("deleteBuffer", js.Value(m.nrm))
		g.Call("deleteBuffer", js.Value(m.uv))
	}
	for _, t := range r.textures {
		g.Call("deleteTexture", t)
	}
	r.meshes = nil
	r.textures = nil
}

func (r *renderer) bindFramebuffer(fb js.Value) {
	g := r.gl.JS()
	g.Call("bindFramebuffer", g.Get("FRAMEBUFFER"), fb)
}

// RenderFrame draws the model through the orbit camera into the canvas.
func (r *renderer) RenderFrame(s *screen) {
	gl := r.gl
	r.bindFramebuffer(js.Null())
	gl.Viewport(0, 0, s.width, s.height)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.draw(s.View(), s.Projection())
}

// RenderXRFrame draws every view of the viewer pose into the session's layer.
// Clear color is transparent to keep the camera passthrough visible.
func (r *renderer) RenderXRFrame(s xr.Session, f xr.Frame, space xr.ReferenceSpace) {
	pose, ok := f.ViewerPose(space)
	if !ok {
		return
	}
	gl := r.gl
	layer := s.BaseLayer()
	r.bindFramebuffer(layer.Framebuffer())
	gl.ClearColor(0.0, 0.0, 0.0, 0.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	for _, v := range pose.Views() {
		vp := layer.Viewport(v)
		gl.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
		r.draw(v.ViewMatrix(), v.ProjectionMatrix())
	}
}

func (r *renderer) draw(view, projection mat.Mat4) {
	gl := r.gl
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProjection, false, projection)
	gl.UniformMatrix4fv(r.uView, false, view)
	gl.UniformMatrix4fv(r.uModel, false, mat.Translate(r.offset[0], r.offset[1], r.offset[2]))

	gl.Uniform3fv(r.uSky, r.shade.sky)
	gl.Uniform3fv(r.uGround, r.shade.ground)
	gl.Uniform3fv(r.uHemisphereDirection, r.shade.hemiDir)
	gl.Uniform3fv(r.uLightDirection, r.shade.lightDir)
	gl.Uniform3fv(r.uLightColor, r.shade.lightColor)
	gl.Uniform3fv(r.uPointLightPosition, r.shade.pointPos)
	gl.Uniform3fv(r.uPointLightCol, r.shade.pointColor)
	gl.Uniform1i(r.uSampler, 0)

	g := gl.JS()
	for _, m := range r.meshes {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.pos)
		gl.VertexAttribPointer(aPosition, 3, gl.FLOAT, false, 0, 0)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.nrm)
		gl.VertexAttribPointer(aNormal, 3, gl.FLOAT, false, 0, 0)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.uv)
		gl.VertexAttribPointer(aTexCoord, 2, gl.FLOAT, false, 0, 0)

		gl.Uniform3fv(r.uBaseColor, mat.Vec3{m.color[0], m.color[1], m.color[2]})
		gl.Uniform1f(r.uOpacity, m.color[3])
		if m.hasTex {
			gl.ActiveTexture(gl.TEXTURE0)
			g.Call("bindTexture", g.Get("TEXTURE_2D"), m.tex)
			gl.Uniform1i(r.uUseTexture, 1)
		} else {
			gl.Uniform1i(r.uUseTexture, 0)
		}
		gl.DrawArrays(gl.TRIANGLES, 0, m.n)
	}
}
