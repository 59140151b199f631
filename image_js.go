package main

import (
	"fmt"
	"syscall/js"

	"github.com/seqsense/arviewer/blob"
	"github.com/seqsense/arviewer/model"
)

// loadImage decodes src into an HTMLImageElement. label names the image
// in errors since src may be a long data or blob URL.
func loadImage(src, label string) (js.Value, error) {
	img := js.Global().Get("Image").New()
	img.Set("crossOrigin", "anonymous")

	chOK := make(chan bool, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- true
		return nil
	})
	defer onLoad.Release()
	onError := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chOK <- false
		return nil
	})
	defer onError.Release()
	img.Call("addEventListener", "load", onLoad)
	img.Call("addEventListener", "error", onError)
	img.Set("src", src)

	if !<-chOK {
		return js.Null(), fmt.Errorf("failed to load image %s", label)
	}
	return img, nil
}

func loadTextureImage(fsys *fetchFS, img *model.Image) (js.Value, error) {
	if img.Data != nil {
		b := blob.New(img.Data, img.MimeType)
		u := b.ObjectURL()
		defer blob.RevokeObjectURL(u)
		return loadImage(u, fmt.Sprintf("embedded %s (%d bytes)", img.MimeType, b.Size()))
	}
	u, err := resolveURL(fsys.base, img.URI)
	if err != nil {
		return js.Null(), err
	}
	label := img.URI
	if len(label) > 64 {
		label = label[:64] + "..."
	}
	return loadImage(u, label)
}
