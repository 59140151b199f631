//go:build !js

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "arviewer runs in a browser: build with GOOS=js GOARCH=wasm and open examples/www/index.html")
	os.Exit(1)
}
