package main

import (
	"fmt"
	"syscall/js"

	"github.com/seqsense/arviewer/xr"
	webgl "github.com/seqsense/webgl-go"
)

type frameRequest struct {
	xr    bool
	frame xr.Frame
	done  chan struct{}
}

type sessionResult struct {
	session xr.Session
	err     error
}

type refSpaceResult struct {
	space xr.ReferenceSpace
	err   error
}

func main() {
	window := js.Global()
	doc := window.Get("document")
	canvas := doc.Call("getElementById", "arCanvas")
	log := newLogger(doc)

	cfg := loadConfig(window, canvas, log)

	// The first getContext call fixes the attributes; webgl.New receives the same context.
	canvas.Call("getContext", "webgl2", map[string]interface{}{
		"alpha":        true,
		"antialias":    true,
		"xrCompatible": true,
	})
	gl, err := webgl.New(canvas)
	if err != nil {
		log.Error(err)
		return
	}
	showDebugInfo(gl, log)

	r, err := newRenderer(gl, cfg.Lights)
	if err != nil {
		log.Error(err)
		return
	}
	scr := &screen{
		perspectiveCamera: newPerspectiveCamera(cfg.Camera),
		canvas:            gl.Canvas,
	}
	vi := newViewer(cfg.Controls, cfg.Camera, scr)
	setCursor(canvas, dragCursor(false))

	chInput := make(chan inputEvent)
	listenInput(window, gl.Canvas, chInput)

	chFrame := make(chan frameRequest)
	windowFrame := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		done := make(chan struct{})
		chFrame <- frameRequest{done: done}
		<-done
		return nil
	})
	xrFrame := xr.FrameFunc(func(t float64, f xr.Frame) {
		done := make(chan struct{})
		chFrame <- frameRequest{xr: true, frame: f, done: done}
		<-done
	})

	chContextLost := make(chan struct{})
	chContextRestored := make(chan struct{})
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		// Required to get the restored event.
		e.PreventDefault()
		chContextLost <- struct{}{}
	})
	gl.Canvas.OnWebGLContextRestored(func(e webgl.WebGLContextEvent) {
		chContextRestored <- struct{}{}
	})

	chLoad := make(chan string)
	chReset := make(chan struct{})
	chQuery := make(chan chan orientation)
	js.Global().Set("arviewer", js.ValueOf(map[string]interface{}{
		"loadModel": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if len(args) != 1 {
				return errorToJS(errArgumentNumber)
			}
			if args[0].Type() != js.TypeString {
				return errorToJS(errArgumentType)
			}
			chLoad <- args[0].String()
			return nil
		}),
		"resetView": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			chReset <- struct{}{}
			return nil
		}),
		"orientation": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			ch := make(chan orientation)
			chQuery <- ch
			o := <-ch
			return map[string]interface{}{
				"yaw":   o.Yaw,
				"pitch": o.Pitch,
				"fov":   o.Fov,
			}
		}),
	}))

	chARClick := make(chan struct{})
	button := newARButton(doc, func() {
		chARClick <- struct{}{}
	})
	chSupported := make(chan bool)
	xrSys, err := xr.Navigator()
	if err != nil {
		log.Print(err)
	} else {
		xrSys.IsSessionSupported(xr.SessionModeImmersiveAR, func(ok bool) {
			chSupported <- ok
		})
	}

	chModel := make(chan modelResult)
	var loadSeq int
	startLoad := func(u string) {
		loadSeq++
		seq := loadSeq
		log.Print("loading " + shortURL(u))
		go func() {
			m, err := loadModel(u, log)
			chModel <- modelResult{seq: seq, url: u, model: m, err: err}
		}()
	}
	startLoad(cfg.Model)

	chSession := make(chan sessionResult)
	chRefSpace := make(chan refSpaceResult)
	chSessionEnd := make(chan struct{})

	var (
		loaded        *loadedModel
		canAR         bool
		session       xr.Session
		hasSession    bool
		refSpace      xr.ReferenceSpace
		inAR          bool
		contextLost   bool
		width, height int
	)

	window.Call("requestAnimationFrame", windowFrame)
	windowPending := true

	for {
		select {
		case e := <-chInput:
			dragging := vi.Dragging()
			vi.Handle(e)
			if d := vi.Dragging(); d != dragging {
				setCursor(canvas, dragCursor(d))
			}

		case f := <-chFrame:
			if f.xr {
				if inAR {
					if !contextLost {
						r.RenderXRFrame(session, f.frame, refSpace)
					}
					session.RequestAnimationFrame(xrFrame)
				}
				close(f.done)
				continue
			}
			windowPending = false
			if !inAR {
				dpr := window.Get("devicePixelRatio").Float()
				w := int(float64(gl.Canvas.ClientWidth()) * dpr)
				h := int(float64(gl.Canvas.ClientHeight()) * dpr)
				if w != width || h != height {
					width, height = w, h
					vi.Handle(resizeEvent{Width: w, Height: h})
				}
				if !contextLost {
					r.RenderFrame(scr)
				}
				window.Call("requestAnimationFrame", windowFrame)
				windowPending = true
			}
			close(f.done)

		case u := <-chLoad:
			startLoad(u)

		case res := <-chModel:
			if res.seq != loadSeq {
				continue
			}
			if res.err != nil {
				log.Error(fmt.Errorf("loading model %s: %w", shortURL(res.url), res.err))
				continue
			}
			loaded = res.model
			if !contextLost {
				r.SetModel(loaded)
			}
			log.Print(fmt.Sprintf("model loaded: %d primitives, %d vertices",
				len(loaded.Primitives), loaded.Vertices(),
			))

		case <-chReset:
			vi.Reset()

		case ch := <-chQuery:
			ch <- vi.Orientation()

		case ok := <-chSupported:
			canAR = ok
			if ok {
				button.Set(arSupported)
			} else {
				button.Set(arUnsupported)
			}

		case <-chARClick:
			if hasSession {
				session.End()
				continue
			}
			if !canAR {
				continue
			}
			button.Set(arStarting)
			xrSys.RequestSession(xr.SessionModeImmersiveAR, xr.SessionInit{
				OptionalFeatures: []string{"dom-overlay"},
				DOMOverlayRoot:   doc.Get("body"),
			}, func(s xr.Session, err error) {
				chSession <- sessionResult{session: s, err: err}
			})

		case res := <-chSession:
			if res.err != nil {
				log.Error(fmt.Errorf("starting AR session: %w", res.err))
				button.Set(arSupported)
				continue
			}
			layer, err := xr.NewWebGLLayer(res.session, gl.JS())
			if err != nil {
				log.Error(fmt.Errorf("creating XR layer: %w", err))
				res.session.End()
				button.Set(arSupported)
				continue
			}
			session, hasSession = res.session, true
			session.UpdateRenderState(layer)
			session.OnEnd(func() {
				chSessionEnd <- struct{}{}
			})
			session.RequestReferenceSpace(xr.ReferenceSpaceLocal, func(sp xr.ReferenceSpace, err error) {
				chRefSpace <- refSpaceResult{space: sp, err: err}
			})

		case res := <-chRefSpace:
			if !hasSession {
				continue
			}
			if res.err != nil {
				log.Error(fmt.Errorf("requesting reference space: %w", res.err))
				session.End()
				continue
			}
			refSpace = res.space
			inAR = true
			button.Set(arActive)
			session.RequestAnimationFrame(xrFrame)
			log.Print("AR session started")

		case <-chSessionEnd:
			hasSession, inAR = false, false
			r.bindFramebuffer(js.Null())
			button.Set(arSupported)
			if !windowPending {
				window.Call("requestAnimationFrame", windowFrame)
				windowPending = true
			}
			log.Print("AR session ended")

		case <-chContextLost:
			contextLost = true
			log.Error(errContextLostEvent)

		case <-chContextRestored:
			nr, err := newRenderer(gl, cfg.Lights)
			if err != nil {
				log.Error(fmt.Errorf("restoring renderer: %w", err))
				continue
			}
			r = nr
			if loaded != nil {
				r.SetModel(loaded)
			}
			width, height = 0, 0
			contextLost = false
			log.Print("WebGL context restored")
		}
	}
}
