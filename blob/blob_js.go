// Package blob wraps JavaScript Blob objects holding Go byte slices.
package blob

import (
	"syscall/js"
)

type Blob js.Value

var (
	blobJS = js.Global().Get("Blob")
	urlJS  = js.Global().Get("URL")
)

func New(b []byte, typ string) Blob {
	array := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(array, b)

	return Blob(blobJS.New([]interface{}{array}, map[string]interface{}{
		"type": typ,
	}))
}

func (blob Blob) Size() int {
	return js.Value(blob).Get("size").Int()
}

// ObjectURL returns a blob: URL referencing the data.
// The URL must be released by RevokeObjectURL.
func (blob Blob) ObjectURL() string {
	return urlJS.Call("createObjectURL", js.Value(blob)).String()
}

func RevokeObjectURL(u string) {
	urlJS.Call("revokeObjectURL", u)
}
