package main

import (
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"
)

// listenInput converts DOM input events into viewer events sent to ch.
// Mouse buttons, moves and wheel are taken from the window so that drags
// continue outside of the canvas; webgl.Canvas only registers on the canvas
// element, so these use raw listeners.
func listenInput(window js.Value, canvas webgl.Canvas, ch chan<- inputEvent) {
	on := func(name string, cb func(e js.Value), opts ...interface{}) {
		fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cb(args[0])
			return nil
		})
		window.Call("addEventListener", append([]interface{}{name, fn}, opts...)...)
	}

	on("mousedown", func(e js.Value) {
		ch <- dragStartEvent{}
	})
	on("mouseup", func(e js.Value) {
		ch <- dragEndEvent{}
	})
	on("mousemove", func(e js.Value) {
		ch <- pointerMoveEvent{
			X: e.Get("clientX").Float(),
			Y: e.Get("clientY").Float(),
		}
	})
	// Window level wheel listeners are passive unless requested otherwise.
	on("wheel", func(e js.Value) {
		e.Call("preventDefault")
		ch <- wheelEvent{DeltaY: e.Get("deltaY").Float()}
	}, map[string]interface{}{"passive": false})

	onTouch := func(phase touchPhase) func(webgl.TouchEvent) {
		return func(e webgl.TouchEvent) {
			if phase != touchPhaseEnd {
				e.PreventDefault()
			}
			if ev, ok := touchInput(phase, touchPoints(e.Touches)); ok {
				ch <- ev
			}
		}
	}
	canvas.OnTouchStart(onTouch(touchPhaseStart))
	canvas.OnTouchMove(onTouch(touchPhaseMove))
	canvas.OnTouchEnd(onTouch(touchPhaseEnd))
	canvas.OnTouchCancel(onTouch(touchPhaseEnd))
}

func touchPoints(touches []webgl.Touch) [][2]float64 {
	out := make([][2]float64, len(touches))
	for i, t := range touches {
		out[i] = [2]float64{float64(t.ClientX), float64(t.ClientY)}
	}
	return out
}
