package main

import (
	"fmt"

	webgl "github.com/seqsense/webgl-go"
)

func showDebugInfo(gl *webgl.WebGL, log *logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Print("Failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		log.Print("GPU info: hidden by the browser privacy setting")
		return
	}
	log.Print(fmt.Sprintf("GPU: %s %s",
		gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
		gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
	))
	log.Print(fmt.Sprintf("Max texture size: %d",
		gl.GetParameter(gl.JS().Get("MAX_TEXTURE_SIZE").Int()).Int(),
	))
}
