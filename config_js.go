package main

import (
	"fmt"
	"syscall/js"
)

// loadConfig reads the YAML file named by the canvas data-config attribute
// and applies the ?model= query parameter. Failures fall back to defaults.
func loadConfig(window, canvas js.Value, log *logger) *config {
	c := defaultConfig()
	if src := canvas.Call("getAttribute", "data-config"); src.Truthy() {
		b, err := fetchGet(src.String())
		if err != nil {
			log.Error(fmt.Errorf("loading config: %w", err))
		} else if parsed, err := parseConfig(b); err != nil {
			log.Error(fmt.Errorf("loading config %s: %w", src.String(), err))
		} else {
			c = parsed
		}
	}

	q := js.Global().Get("URLSearchParams").New(window.Get("location").Get("search"))
	if m := q.Call("get", "model"); m.Truthy() {
		c.Model = m.String()
	}
	return c
}
