// Package xr binds the parts of the WebXR Device API used for
// camera-passthrough AR rendering into a WebGL layer.
//
// Asynchronous calls take callbacks instead of blocking so that they can be
// issued from the goroutine that also serves DOM event callbacks.
package xr

import (
	"errors"
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
)

var ErrNotAvailable = errors.New("WebXR is not available")

type SessionMode string

const SessionModeImmersiveAR SessionMode = "immersive-ar"

type ReferenceSpaceType string

const ReferenceSpaceLocal ReferenceSpaceType = "local"

type System js.Value

// Navigator returns navigator.xr.
func Navigator() (System, error) {
	x := js.Global().Get("navigator").Get("xr")
	if x.IsUndefined() || x.IsNull() {
		return System(js.Null()), ErrNotAvailable
	}
	return System(x), nil
}

func (s System) IsSessionSupported(mode SessionMode, cb func(bool)) {
	then(js.Value(s).Call("isSessionSupported", string(mode)),
		func(v js.Value) { cb(v.Bool()) },
		func(error) { cb(false) },
	)
}

type SessionInit struct {
	OptionalFeatures []string
	// root element of the dom-overlay feature, ignored if undefined
	DOMOverlayRoot js.Value
}

func (i SessionInit) value() map[string]interface{} {
	v := map[string]interface{}{}
	if len(i.OptionalFeatures) > 0 {
		v["optionalFeatures"] = stringSlice(i.OptionalFeatures)
	}
	if i.DOMOverlayRoot.Truthy() {
		v["domOverlay"] = map[string]interface{}{"root": i.DOMOverlayRoot}
	}
	return v
}

func (s System) RequestSession(mode SessionMode, init SessionInit, cb func(Session, error)) {
	p, err := call(js.Value(s), "requestSession", string(mode), init.value())
	if err != nil {
		cb(Session(js.Null()), err)
		return
	}
	then(p,
		func(v js.Value) { cb(Session(v), nil) },
		func(err error) { cb(Session(js.Null()), err) },
	)
}

type Session js.Value

func (s Session) UpdateRenderState(layer WebGLLayer) {
	js.Value(s).Call("updateRenderState", map[string]interface{}{
		"baseLayer": js.Value(layer),
	})
}

func (s Session) BaseLayer() WebGLLayer {
	return WebGLLayer(js.Value(s).Get("renderState").Get("baseLayer"))
}

func (s Session) RequestReferenceSpace(typ ReferenceSpaceType, cb func(ReferenceSpace, error)) {
	then(js.Value(s).Call("requestReferenceSpace", string(typ)),
		func(v js.Value) { cb(ReferenceSpace(v), nil) },
		func(err error) { cb(ReferenceSpace(js.Null()), err) },
	)
}

// RequestAnimationFrame schedules fn, typically created by FrameFunc,
// for the next XR frame.
func (s Session) RequestAnimationFrame(fn js.Func) int {
	return js.Value(s).Call("requestAnimationFrame", fn).Int()
}

func (s Session) End() {
	p, err := call(js.Value(s), "end")
	if err != nil {
		return
	}
	// already ended sessions reject
	then(p, func(js.Value) {}, func(error) {})
}

// OnEnd registers cb to be called once when the session ends.
func (s Session) OnEnd(cb func()) {
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn.Release()
		cb()
		return nil
	})
	js.Value(s).Call("addEventListener", "end", fn, map[string]interface{}{"once": true})
}

// FrameFunc wraps cb as an XRFrameRequestCallback.
func FrameFunc(cb func(t float64, f Frame)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb(args[0].Float(), Frame(args[1]))
		return nil
	})
}

type ReferenceSpace js.Value

type Frame js.Value

func (f Frame) ViewerPose(space ReferenceSpace) (Pose, bool) {
	p := js.Value(f).Call("getViewerPose", js.Value(space))
	if p.IsNull() || p.IsUndefined() {
		return Pose(js.Null()), false
	}
	return Pose(p), true
}

type Pose js.Value

func (p Pose) Views() []View {
	views := js.Value(p).Get("views")
	n := views.Length()
	out := make([]View, n)
	for i := 0; i < n; i++ {
		out[i] = View(views.Index(i))
	}
	return out
}

type View js.Value

func (v View) ProjectionMatrix() mat.Mat4 {
	return toMat4(js.Value(v).Get("projectionMatrix"))
}

// ViewMatrix is the inverse of the view's rigid transform.
func (v View) ViewMatrix() mat.Mat4 {
	return toMat4(js.Value(v).Get("transform").Get("inverse").Get("matrix"))
}

type WebGLLayer js.Value

// NewWebGLLayer binds the XR compatible WebGL context gl to the session.
func NewWebGLLayer(s Session, gl js.Value) (WebGLLayer, error) {
	l, err := construct(js.Global().Get("XRWebGLLayer"), js.Value(s), gl)
	if err != nil {
		return WebGLLayer(js.Null()), err
	}
	return WebGLLayer(l), nil
}

func (l WebGLLayer) Framebuffer() js.Value {
	return js.Value(l).Get("framebuffer")
}

type Viewport struct {
	X, Y, Width, Height int
}

func (l WebGLLayer) Viewport(v View) Viewport {
	vp := js.Value(l).Call("getViewport", js.Value(v))
	return Viewport{
		X:      vp.Get("x").Int(),
		Y:      vp.Get("y").Int(),
		Width:  vp.Get("width").Int(),
		Height: vp.Get("height").Int(),
	}
}
