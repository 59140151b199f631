package main

import (
	"math"
	"testing"
	"time"
)

type cameraRecorder struct {
	fov        float64
	yaw, pitch float64
	w, h       int

	fovCalls, orientCalls, resizeCalls int
}

func (c *cameraRecorder) SetFieldOfView(deg float64) {
	c.fov = deg
	c.fovCalls++
}

func (c *cameraRecorder) SetOrientation(yaw, pitch float64) {
	c.yaw, c.pitch = yaw, pitch
	c.orientCalls++
}

func (c *cameraRecorder) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizeCalls++
}

func newTestViewer(t *testing.T) (*viewer, *cameraRecorder) {
	t.Helper()
	c := defaultConfig()
	cam := &cameraRecorder{}
	return newViewer(c.Controls, c.Camera, cam), cam
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestViewer_Initial(t *testing.T) {
	v, cam := newTestViewer(t)
	if v.Dragging() {
		t.Error("Viewer must start idle")
	}
	if o := v.Orientation(); o != (orientation{Fov: 70}) {
		t.Errorf("Unexpected initial orientation: %+v", o)
	}
	if cam.fov != 70 || cam.fovCalls != 1 || cam.orientCalls != 1 {
		t.Errorf("Initial state must be pushed to the camera once, got: %+v", cam)
	}
}

func TestViewer_PointerDrag(t *testing.T) {
	testCases := map[string]struct {
		moves              [][2]float64
		expYaw, expPitch   float64
		expLastX, expLastY float64
	}{
		"SingleStep": {
			moves:  [][2]float64{{100, 100}, {110, 95}},
			expYaw: 0.05, expPitch: -0.025,
			expLastX: 110, expLastY: 95,
		},
		"SumOfSteps": {
			moves:  [][2]float64{{0, 0}, {10, 20}, {-30, 40}, {5, 5}},
			expYaw: 5 * 0.005, expPitch: 5 * 0.005,
			expLastX: 5, expLastY: 5,
		},
		"NoMove": {
			moves: [][2]float64{{0, 0}, {0, 0}},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, cam := newTestViewer(t)
			v.Handle(pointerMoveEvent{X: tt.moves[0][0], Y: tt.moves[0][1]})
			v.Handle(dragStartEvent{})
			if !v.Dragging() {
				t.Fatal("Drag start must enter dragging state")
			}
			for _, m := range tt.moves[1:] {
				v.Handle(pointerMoveEvent{X: m[0], Y: m[1]})
			}
			v.Handle(dragEndEvent{})

			o := v.Orientation()
			if !nearlyEqual(o.Yaw, tt.expYaw) || !nearlyEqual(o.Pitch, tt.expPitch) {
				t.Errorf("Expected yaw/pitch: %f/%f, got: %f/%f", tt.expYaw, tt.expPitch, o.Yaw, o.Pitch)
			}
			if cam.yaw != o.Yaw || cam.pitch != o.Pitch {
				t.Errorf("Camera must follow orientation, expected: %f/%f, got: %f/%f", o.Yaw, o.Pitch, cam.yaw, cam.pitch)
			}
			if v.pointer.lastX != tt.expLastX || v.pointer.lastY != tt.expLastY {
				t.Errorf("Expected anchor: %f,%f, got: %f,%f", tt.expLastX, tt.expLastY, v.pointer.lastX, v.pointer.lastY)
			}

			v.Handle(pointerMoveEvent{X: 500, Y: -500})
			if v.Orientation() != o {
				t.Error("Moves after drag end must not rotate")
			}
		})
	}
}

func TestViewer_IdleMoveUpdatesAnchor(t *testing.T) {
	v, cam := newTestViewer(t)
	calls := cam.orientCalls

	v.Handle(pointerMoveEvent{X: 10, Y: 20})
	v.Handle(pointerMoveEvent{X: 300, Y: 400})
	if v.pointer.lastX != 300 || v.pointer.lastY != 400 {
		t.Errorf("Idle move must update anchor, got: %f,%f", v.pointer.lastX, v.pointer.lastY)
	}
	if o := v.Orientation(); o.Yaw != 0 || o.Pitch != 0 {
		t.Errorf("Idle move must not rotate, got: %+v", o)
	}
	if cam.orientCalls != calls {
		t.Error("Idle move must not push orientation")
	}

	// resuming the drag must not jump by the idle distance
	v.Handle(dragStartEvent{})
	v.Handle(pointerMoveEvent{X: 302, Y: 401})
	o := v.Orientation()
	if !nearlyEqual(o.Yaw, 0.01) || !nearlyEqual(o.Pitch, 0.005) {
		t.Errorf("Expected yaw/pitch: 0.01/0.005, got: %f/%f", o.Yaw, o.Pitch)
	}
}

func TestViewer_Touch(t *testing.T) {
	v, cam := newTestViewer(t)

	v.Handle(pointerMoveEvent{X: 900, Y: 900})
	v.Handle(touchStartEvent{X: 50, Y: 50})
	if !v.Dragging() {
		t.Fatal("Touch start must enter dragging state")
	}
	if v.pointer.touchX0 != 50 || v.pointer.touchY0 != 50 {
		t.Errorf("Touch start anchor must be stored, got: %f,%f", v.pointer.touchX0, v.pointer.touchY0)
	}
	v.Handle(touchMoveEvent{X: 40, Y: 60})

	o := v.Orientation()
	if !nearlyEqual(o.Yaw, -0.05) || !nearlyEqual(o.Pitch, 0.05) {
		t.Errorf("Expected yaw/pitch: -0.05/0.05, got: %f/%f", o.Yaw, o.Pitch)
	}
	if cam.yaw != o.Yaw || cam.pitch != o.Pitch {
		t.Error("Camera must follow touch rotation")
	}

	v.Handle(touchEndEvent{})
	if v.Dragging() {
		t.Error("Touch end must leave dragging state")
	}
	v.Handle(touchMoveEvent{X: 0, Y: 0})
	if v.Orientation() != o {
		t.Error("Touch move after touch end must not rotate")
	}
}

func TestViewer_Zoom(t *testing.T) {
	testCases := map[string]struct {
		deltas   []float64
		expected float64
	}{
		"ClampMax":   {deltas: []float64{500}, expected: 75},
		"ClampMin":   {deltas: []float64{500, -1000}, expected: 10},
		"Step":       {deltas: []float64{-100}, expected: 60},
		"Infinite":   {deltas: []float64{math.Inf(-1)}, expected: 10},
		"NaNIgnored": {deltas: []float64{math.NaN(), 20}, expected: 72},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, cam := newTestViewer(t)
			for _, d := range tt.deltas {
				v.Handle(wheelEvent{DeltaY: d})
			}
			if fov := v.Orientation().Fov; !nearlyEqual(fov, tt.expected) {
				t.Errorf("Expected fov: %f, got: %f", tt.expected, fov)
			}
			if cam.fov != v.Orientation().Fov {
				t.Errorf("Camera fov must follow, expected: %f, got: %f", v.Orientation().Fov, cam.fov)
			}
		})
	}
}

func TestViewer_ZoomBounds(t *testing.T) {
	v, _ := newTestViewer(t)
	deltas := []float64{1e6, -3, 7.5, -1e9, 42, 1e300, -1e300, 0.01, -650, 650}
	for i := 0; i < 1000; i++ {
		if i%3 == 0 {
			v.Handle(dragStartEvent{})
		} else if i%3 == 2 {
			v.Handle(dragEndEvent{})
		}
		v.Handle(wheelEvent{DeltaY: deltas[i%len(deltas)] * float64(i%7-3)})
		if fov := v.Orientation().Fov; fov < 10 || 75 < fov {
			t.Fatalf("fov out of bounds after %d events: %f", i+1, fov)
		}
	}
}

func TestViewer_ZoomPushesOnlyOnChange(t *testing.T) {
	v, cam := newTestViewer(t)
	v.Handle(wheelEvent{DeltaY: 500})
	calls := cam.fovCalls
	v.Handle(wheelEvent{DeltaY: 500})
	if cam.fovCalls != calls {
		t.Error("Saturated zoom must not push an unchanged fov")
	}
	v.Handle(wheelEvent{DeltaY: -1})
	if cam.fovCalls != calls+1 {
		t.Error("Changed fov must be pushed")
	}
}

func TestViewer_Resize(t *testing.T) {
	v, cam := newTestViewer(t)
	v.Handle(dragStartEvent{})
	v.Handle(pointerMoveEvent{X: 10, Y: 10})
	v.Handle(pointerMoveEvent{X: 20, Y: 30})
	v.Handle(wheelEvent{DeltaY: -55})
	o := v.Orientation()

	sizes := [][2]int{{640, 480}, {640, 480}, {1, 1}, {3840, 2160}, {0, 100}, {-1, 5}}
	for _, s := range sizes {
		v.Handle(resizeEvent{Width: s[0], Height: s[1]})
	}
	if v.Orientation() != o {
		t.Errorf("Resize must not change orientation, expected: %+v, got: %+v", o, v.Orientation())
	}
	if cam.resizeCalls != 4 {
		t.Errorf("Non-positive sizes must be ignored, expected 4 resize calls, got: %d", cam.resizeCalls)
	}
	if cam.w != 3840 || cam.h != 2160 {
		t.Errorf("Last valid size must be applied, got: %dx%d", cam.w, cam.h)
	}
}

func TestViewer_Reset(t *testing.T) {
	v, cam := newTestViewer(t)
	v.Handle(dragStartEvent{})
	v.Handle(pointerMoveEvent{X: 50, Y: 50})
	v.Handle(wheelEvent{DeltaY: 100})
	v.Reset()
	if o := v.Orientation(); o != (orientation{Fov: 70}) {
		t.Errorf("Reset must restore the initial orientation, got: %+v", o)
	}
	if cam.fov != 70 || cam.yaw != 0 || cam.pitch != 0 {
		t.Errorf("Reset must be pushed to the camera, got: %+v", cam)
	}
	if !v.Dragging() {
		t.Error("Reset must not touch the drag state")
	}
}

func TestViewer_NormalizedWheel(t *testing.T) {
	newNormalizedViewer := func() (*viewer, *fakeClock) {
		c := defaultConfig()
		c.Controls.NormalizeWheel = true
		v := newViewer(c.Controls, c.Camera, &cameraRecorder{})
		clk := &fakeClock{t: time.Unix(1000, 0)}
		v.wheel.now = clk.now
		return v, clk
	}

	t.Run("WarmUpClampedToNotch", func(t *testing.T) {
		v, clk := newNormalizedViewer()
		clk.advance(50 * time.Millisecond)
		v.Handle(wheelEvent{DeltaY: -1000})
		if fov := v.Orientation().Fov; !nearlyEqual(fov, 60) {
			t.Errorf("First event must move fov by one notch to 60, got: %f", fov)
		}
	})
	t.Run("NotchStepAfterWarmUp", func(t *testing.T) {
		v, clk := newNormalizedViewer()
		for i := 0; i < 8; i++ {
			clk.advance(50 * time.Millisecond)
			d := 100.0
			if i%2 == 1 {
				d = -100
			}
			v.Handle(wheelEvent{DeltaY: d})
		}
		for i := 0; i < 3; i++ {
			before := v.Orientation().Fov
			clk.advance(50 * time.Millisecond)
			v.Handle(wheelEvent{DeltaY: -100})
			if step := v.Orientation().Fov - before; !nearlyEqual(step, -10) {
				t.Errorf("Each notch must move fov by -10, got: %f (from %f)", step, before)
			}
		}
	})
	t.Run("Bounded", func(t *testing.T) {
		v, clk := newNormalizedViewer()
		for i := 0; i < 50; i++ {
			clk.advance(50 * time.Millisecond)
			v.Handle(wheelEvent{DeltaY: 100})
			if fov := v.Orientation().Fov; fov < 10 || 75 < fov {
				t.Fatalf("fov out of bounds: %f", fov)
			}
		}
		if v.Orientation().Fov != 75 {
			t.Errorf("Repeated positive wheel must reach max fov, got: %f", v.Orientation().Fov)
		}
	})
}
