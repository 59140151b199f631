package main

import (
	"math"
)

// camera receives every orientation and projection change of the viewer.
// The renderer implements it; the viewer never reads back from it.
type camera interface {
	SetFieldOfView(deg float64)
	SetOrientation(yaw, pitch float64)
	Resize(width, height int)
}

type pointerState struct {
	lastX, lastY float64
	// touch-start anchor, kept for inspection only
	touchX0, touchY0 float64
	dragging         bool
}

type orientation struct {
	Yaw, Pitch, Fov float64
}

type viewer struct {
	pointer pointerState
	orient  orientation
	initial orientation

	minFov, maxFov         float64
	rotateSpeed, zoomSpeed float64

	wheel *wheelNormalizer
	cam   camera
}

func newViewer(c controlsConfig, cc cameraConfig, cam camera) *viewer {
	v := &viewer{
		orient:      orientation{Fov: cc.Fov},
		initial:     orientation{Fov: cc.Fov},
		minFov:      cc.MinFov,
		maxFov:      cc.MaxFov,
		rotateSpeed: c.RotateSpeed,
		zoomSpeed:   c.ZoomSpeed,
		cam:         cam,
	}
	if c.NormalizeWheel {
		v.wheel = newWheelNormalizer(c.WheelStep)
	}
	v.push()
	return v
}

func (v *viewer) Orientation() orientation {
	return v.orient
}

func (v *viewer) Dragging() bool {
	return v.pointer.dragging
}

// Handle applies one input event to the pointer state and the camera.
func (v *viewer) Handle(e inputEvent) {
	switch e := e.(type) {
	case dragStartEvent:
		v.pointer.dragging = true
	case dragEndEvent, touchEndEvent:
		v.pointer.dragging = false
	case pointerMoveEvent:
		v.rotate(v.move(e.X, e.Y))
	case touchStartEvent:
		v.pointer.touchX0, v.pointer.touchY0 = e.X, e.Y
		v.pointer.lastX, v.pointer.lastY = e.X, e.Y
		v.pointer.dragging = true
	case touchMoveEvent:
		v.rotate(v.move(e.X, e.Y))
	case wheelEvent:
		d := e.DeltaY
		if v.wheel != nil {
			d, _ = v.wheel.Normalize(d)
		}
		v.zoom(d)
	case resizeEvent:
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		v.cam.Resize(e.Width, e.Height)
	}
}

// Reset restores the initial orientation and field of view.
func (v *viewer) Reset() {
	v.orient = v.initial
	v.push()
}

// move updates the anchor on every call, dragging or not,
// so that a drag resumed after a pause does not jump.
func (v *viewer) move(x, y float64) (float64, float64) {
	dx := x - v.pointer.lastX
	dy := y - v.pointer.lastY
	v.pointer.lastX, v.pointer.lastY = x, y
	return dx, dy
}

func (v *viewer) rotate(dx, dy float64) {
	if !v.pointer.dragging || (dx == 0 && dy == 0) {
		return
	}
	v.orient.Yaw += dx * v.rotateSpeed
	v.orient.Pitch += dy * v.rotateSpeed
	v.cam.SetOrientation(v.orient.Yaw, v.orient.Pitch)
}

func (v *viewer) zoom(d float64) {
	fov := v.orient.Fov + d*v.zoomSpeed
	if math.IsNaN(fov) {
		return
	}
	if fov < v.minFov {
		fov = v.minFov
	} else if fov > v.maxFov {
		fov = v.maxFov
	}
	if fov == v.orient.Fov {
		return
	}
	v.orient.Fov = fov
	v.cam.SetFieldOfView(fov)
}

func (v *viewer) push() {
	v.cam.SetFieldOfView(v.orient.Fov)
	v.cam.SetOrientation(v.orient.Yaw, v.orient.Pitch)
}
