package model

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

var identity = mat.Scale(1, 1, 1)

// trs builds translation * rotation * scale.
// q is a quaternion (x, y, z, w), normalized here.
func trs(t mat.Vec3, q [4]float32, s mat.Vec3) mat.Mat4 {
	return mat.Translate(t[0], t[1], t[2]).
		Mul(quatRotation(q)).
		Mul(mat.Scale(s[0], s[1], s[2]))
}

func quatRotation(q [4]float32) mat.Mat4 {
	n := math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]))
	if n == 0 {
		return identity
	}
	w := float64(q[3]) / n
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	sin := math.Sqrt(1 - w*w)
	if sin < 1e-7 {
		return identity
	}
	axis := mat.Vec3{q[0], q[1], q[2]}.Mul(float32(1 / (n * sin)))
	return mat.Rotate(axis[0], axis[1], axis[2], float32(2*math.Acos(w)))
}

// normalTransform transforms normals by the inverse transpose of m and
// renormalizes them. Singular matrices leave normals unchanged.
type normalTransform struct {
	m  mat.Mat4
	ok bool
}

func newNormalTransform(m mat.Mat4) normalTransform {
	if m.Det() == 0 {
		return normalTransform{}
	}
	return normalTransform{m: m.Inv().Transpose(), ok: true}
}

func (t normalTransform) Transform(n mat.Vec3) mat.Vec3 {
	if !t.ok {
		return n
	}
	// The translation column of an affine inverse transpose is zero.
	out := t.m.TransformAffine(n)
	if l := out.NormSq(); l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return n
	}
	return out.Normalized()
}
