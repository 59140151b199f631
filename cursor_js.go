package main

import (
	"syscall/js"
)

type cursor string

const (
	cursorGrab     cursor = "grab"
	cursorGrabbing cursor = "grabbing"
)

func setCursor(canvas js.Value, c cursor) {
	canvas.Get("style").Set("cursor", string(c))
}

func dragCursor(dragging bool) cursor {
	if dragging {
		return cursorGrabbing
	}
	return cursorGrab
}
