package main

import (
	"math"
	"testing"

	"github.com/seqsense/pcgol/mat"
)

// project applies m to (v, 1) and divides by w.
func project(m mat.Mat4, v mat.Vec3) mat.Vec3 {
	in := [4]float32{v[0], v[1], v[2], 1}
	var out [4]float32
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			out[i] += m[4*k+i] * in[k]
		}
	}
	return mat.Vec3{out[0] / out[3], out[1] / out[3], out[2] / out[3]}
}

func vec3Near(a, b mat.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}

func TestPerspectiveCamera_View(t *testing.T) {
	testCases := map[string]struct {
		yaw, pitch float64
		world      mat.Vec3
		expected   mat.Vec3
	}{
		"Front": {
			world:    mat.Vec3{0, 0, 0},
			expected: mat.Vec3{0, 0, -2},
		},
		"Yaw90": {
			yaw:      math.Pi / 2,
			world:    mat.Vec3{-1, 0, 2},
			expected: mat.Vec3{0, 0, -1},
		},
		"Pitch90": {
			pitch:    math.Pi / 2,
			world:    mat.Vec3{0, 1, 2},
			expected: mat.Vec3{0, 0, -1},
		},
		"Right": {
			world:    mat.Vec3{1, 0, 1},
			expected: mat.Vec3{1, 0, -1},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			c := newPerspectiveCamera(defaultConfig().Camera)
			c.SetOrientation(tt.yaw, tt.pitch)
			if v := c.View().TransformAffine(tt.world); !vec3Near(v, tt.expected) {
				t.Errorf("Expected view position: %v, got: %v", tt.expected, v)
			}
		})
	}
}

func TestPerspectiveCamera_Projection(t *testing.T) {
	c := newPerspectiveCamera(defaultConfig().Camera)
	c.Resize(200, 100)
	c.SetFieldOfView(60)

	d := float32(5)
	top := d * float32(math.Tan(30*math.Pi/180))
	testCases := map[string]struct {
		view     mat.Vec3
		axis     int
		expected float32
	}{
		"Near":  {view: mat.Vec3{0, 0, -0.01}, axis: 2, expected: -1},
		"Far":   {view: mat.Vec3{0, 0, -40}, axis: 2, expected: 1},
		"Top":   {view: mat.Vec3{0, top, -d}, axis: 1, expected: 1},
		"Right": {view: mat.Vec3{2 * top, 0, -d}, axis: 0, expected: 1},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			p := project(c.Projection(), tt.view)
			if math.Abs(float64(p[tt.axis]-tt.expected)) > 1e-4 {
				t.Errorf("Expected NDC[%d]: %f, got: %v", tt.axis, tt.expected, p)
			}
		})
	}
}

func TestPerspectiveCamera_ResizeKeepsOrientation(t *testing.T) {
	c := newPerspectiveCamera(defaultConfig().Camera)
	c.SetOrientation(0.3, -0.2)
	view := c.View()
	for _, s := range [][2]int{{1, 1}, {1920, 1080}, {1920, 1080}, {3, 7}} {
		c.Resize(s[0], s[1])
	}
	if c.View() != view {
		t.Error("Resize must not change the view matrix")
	}
	if c.width != 3 || c.height != 7 {
		t.Errorf("Expected size 3x7, got: %dx%d", c.width, c.height)
	}
}

func TestPerspectiveCamera_ViewInvertsPose(t *testing.T) {
	testCases := map[string]struct {
		yaw, pitch float64
	}{
		"Zero":     {},
		"Yaw":      {yaw: 0.3},
		"Pitch":    {pitch: -1.2},
		"Combined": {yaw: 3.0, pitch: 0.7},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig().Camera
			c := newPerspectiveCamera(cfg)
			c.SetOrientation(tt.yaw, tt.pitch)

			p := cfg.Position
			pose := mat.Translate(p[0], p[1], p[2]).
				Mul(mat.Rotate(1, 0, 0, float32(tt.pitch))).
				Mul(mat.Rotate(0, 1, 0, float32(tt.yaw)))
			out := c.View().Mul(pose)
			for i := range out {
				expected := float32(0)
				if i%5 == 0 {
					expected = 1
				}
				if math.Abs(float64(out[i]-expected)) > 1e-5 {
					t.Fatalf("View times camera pose must be identity, got:\n%v", out)
				}
			}
		})
	}
}
