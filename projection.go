package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

// perspectiveCamera is a camera fixed at a position whose orientation is
// the XYZ Euler rotation (pitch, yaw, 0).
type perspectiveCamera struct {
	fov        float64
	yaw, pitch float64
	aspect     float32
	near, far  float32
	position   mat.Vec3

	width, height int
	projection    mat.Mat4
	view          mat.Mat4
}

func newPerspectiveCamera(c cameraConfig) *perspectiveCamera {
	pc := &perspectiveCamera{
		fov:      c.Fov,
		aspect:   1,
		near:     c.Near,
		far:      c.Far,
		position: mat.Vec3(c.Position),
	}
	pc.updateProjection()
	pc.updateView()
	return pc
}

func (c *perspectiveCamera) SetFieldOfView(deg float64) {
	c.fov = deg
	c.updateProjection()
}

func (c *perspectiveCamera) SetOrientation(yaw, pitch float64) {
	c.yaw, c.pitch = yaw, pitch
	c.updateView()
}

func (c *perspectiveCamera) Resize(width, height int) {
	c.width, c.height = width, height
	c.aspect = float32(width) / float32(height)
	c.updateProjection()
}

func (c *perspectiveCamera) Projection() mat.Mat4 {
	return c.projection
}

func (c *perspectiveCamera) View() mat.Mat4 {
	return c.view
}

func (c *perspectiveCamera) updateProjection() {
	c.projection = perspective(float32(c.fov*math.Pi/180), c.aspect, c.near, c.far)
}

// updateView inverts the camera transform T(position) * Rx(pitch) * Ry(yaw).
func (c *perspectiveCamera) updateView() {
	c.view = mat.Rotate(0, 1, 0, float32(-c.yaw)).
		Mul(mat.Rotate(1, 0, 0, float32(-c.pitch))).
		Mul(mat.Translate(-c.position[0], -c.position[1], -c.position[2]))
}

// perspective returns a projection with vertical field of view fovY in radians.
// mat.Perspective takes the horizontal one.
func perspective(fovY, aspect, near, far float32) mat.Mat4 {
	f := 1 / float32(math.Tan(float64(fovY/2)))
	return mat.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), -1,
		0, 0, 2 * far * near / (near - far), 0,
	}
}
