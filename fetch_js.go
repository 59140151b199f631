package main

import (
	"errors"
	"fmt"
	"syscall/js"
)

// fetchGet downloads path and blocks until the whole body is received.
// It must not be called from the goroutine serving JavaScript callbacks.
func fetchGet(path string) ([]byte, error) {
	var b []byte
	var errFetch error
	chErr := make(chan error, 1)

	// Every path settles in the second then, so the callbacks can be
	// released once chErr is received.
	var onResponse, onFetchError, onBody, onBodyError js.Func
	defer func() {
		onResponse.Release()
		onFetchError.Release()
		onBody.Release()
		onBodyError.Release()
	}()
	onResponse = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if !args[0].Get("ok").Bool() {
			errFetch = fmt.Errorf("failed to fetch %s: %d %s",
				path, args[0].Get("status").Int(), args[0].Get("statusText").String(),
			)
			return nil
		}
		return args[0].Call("arrayBuffer")
	})
	onFetchError = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		errFetch = fmt.Errorf("failed to fetch %s: network error", path)
		return nil
	})
	onBody = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if errFetch != nil {
			chErr <- errFetch
			return nil
		}
		array := js.Global().Get("Uint8Array").New(args[0])
		n := array.Get("byteLength").Int()
		b = make([]byte, n)
		js.CopyBytesToGo(b, array)
		chErr <- nil
		return nil
	})
	onBodyError = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chErr <- errors.New("failed to handle received data")
		return nil
	})

	// Cross-origin model hosts answer with a wildcard CORS header,
	// which browsers reject for credentialed requests.
	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "same-origin",
	}).Call("then", onResponse, onFetchError).Call("then", onBody, onBodyError)

	if err := <-chErr; err != nil {
		return nil, err
	}
	return b, nil
}
