package main

import (
	"fmt"
	"html"
	"syscall/js"
)

// logger appends messages to the #log element and mirrors them to the console.
type logger struct {
	div     js.Value
	console js.Value
}

func newLogger(doc js.Value) *logger {
	return &logger{
		div:     doc.Call("getElementById", "log"),
		console: js.Global().Get("console"),
	}
}

func (l *logger) Print(msg interface{}) {
	s := fmt.Sprint(msg)
	println(s)
	l.append(s)
}

func (l *logger) Error(msg interface{}) {
	s := fmt.Sprint(msg)
	l.console.Call("error", s)
	l.append(s)
}

func (l *logger) append(s string) {
	if !l.div.Truthy() {
		return
	}
	h := l.div.Get("innerHTML").String()
	l.div.Set("innerHTML", fmt.Sprintf("%s%s<br/>", h, html.EscapeString(s)))
}
