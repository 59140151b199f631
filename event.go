package main

// inputEvent is a platform input converted into a plain value.
// All of them are dispatched through viewer.Handle.
type inputEvent interface {
	inputEvent()
}

type dragStartEvent struct{}

type dragEndEvent struct{}

type pointerMoveEvent struct {
	X, Y float64
}

type touchStartEvent struct {
	X, Y float64
}

type touchMoveEvent struct {
	X, Y float64
}

type touchEndEvent struct{}

type wheelEvent struct {
	DeltaY float64
}

type resizeEvent struct {
	Width, Height int
}

func (dragStartEvent) inputEvent()   {}
func (dragEndEvent) inputEvent()     {}
func (pointerMoveEvent) inputEvent() {}
func (touchStartEvent) inputEvent()  {}
func (touchMoveEvent) inputEvent()   {}
func (touchEndEvent) inputEvent()    {}
func (wheelEvent) inputEvent()       {}
func (resizeEvent) inputEvent()      {}

type touchPhase int

const (
	touchPhaseStart touchPhase = iota
	touchPhaseMove
	touchPhaseEnd
)

// touchInput converts a touch callback into a viewer event.
// touches are the client positions of the fingers still on the surface.
// The first finger drives the drag and the drag ends with the last one.
func touchInput(phase touchPhase, touches [][2]float64) (inputEvent, bool) {
	switch phase {
	case touchPhaseStart:
		if len(touches) == 0 {
			return nil, false
		}
		return touchStartEvent{X: touches[0][0], Y: touches[0][1]}, true
	case touchPhaseMove:
		if len(touches) == 0 {
			return nil, false
		}
		return touchMoveEvent{X: touches[0][0], Y: touches[0][1]}, true
	case touchPhaseEnd:
		if len(touches) > 0 {
			return nil, false
		}
		return touchEndEvent{}, true
	}
	return nil, false
}
