package main

import (
	"syscall/js"
)

type arState int

const (
	arUnavailable arState = iota
	arUnsupported
	arSupported
	arStarting
	arActive
)

func (s arState) label() string {
	switch s {
	case arUnavailable:
		return "WEBXR NOT AVAILABLE"
	case arUnsupported:
		return "AR NOT SUPPORTED"
	case arStarting:
		return "STARTING AR"
	case arActive:
		return "STOP AR"
	default:
		return "START AR"
	}
}

func (s arState) clickable() bool {
	return s == arSupported || s == arActive
}

// arButton is the session toggle at the bottom of the page.
type arButton struct {
	el js.Value
}

func newARButton(doc js.Value, onClick func()) *arButton {
	el := doc.Call("createElement", "button")
	el.Set("id", "ARButton")
	style := el.Get("style")
	for k, v := range map[string]string{
		"position":         "absolute",
		"bottom":           "20px",
		"left":             "calc(50% - 75px)",
		"width":            "150px",
		"padding":          "12px 6px",
		"border":           "1px solid #fff",
		"borderRadius":     "4px",
		"background":       "rgba(0,0,0,0.1)",
		"color":            "#fff",
		"font":             "normal 13px sans-serif",
		"textAlign":        "center",
		"opacity":          "0.5",
		"outline":          "none",
		"zIndex":           "999",
		"userSelect":       "none",
		"webkitUserSelect": "none",
	} {
		style.Set(k, v)
	}
	el.Call("addEventListener", "click", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		args[0].Call("stopPropagation")
		onClick()
		return nil
	}))
	doc.Get("body").Call("appendChild", el)

	b := &arButton{el: el}
	b.Set(arUnavailable)
	return b
}

func (b *arButton) Set(s arState) {
	b.el.Set("textContent", s.label())
	b.el.Set("disabled", !s.clickable())
	if s.clickable() {
		b.el.Get("style").Set("cursor", "pointer")
		b.el.Get("style").Set("opacity", "0.8")
	} else {
		b.el.Get("style").Set("cursor", "auto")
		b.el.Get("style").Set("opacity", "0.5")
	}
}
