package main

import (
	"errors"
	"syscall/js"
)

var (
	errArgumentNumber   = errors.New("invalid number of arguments")
	errArgumentType     = errors.New("invalid argument type")
	errContextLostEvent = errors.New("received context lost event")
)

func errorToJS(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
