package xr

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/seqsense/pcgol/mat"
)

func then(p js.Value, onFulfilled func(js.Value), onRejected func(error)) {
	var ok, ng js.Func
	release := func() {
		ok.Release()
		ng.Release()
	}
	ok = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		release()
		onFulfilled(arg0(args))
		return nil
	})
	ng = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		release()
		onRejected(errorFromJS(arg0(args)))
		return nil
	})
	p.Call("then", ok, ng)
}

func arg0(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

func errorFromJS(v js.Value) error {
	if v.Type() == js.TypeObject {
		if msg := v.Get("message"); msg.Type() == js.TypeString {
			return errors.New(msg.String())
		}
	}
	return errors.New(v.String())
}

// call converts synchronous JavaScript exceptions into errors.
func call(v js.Value, name string, args ...interface{}) (ret js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", name, r)
		}
	}()
	return v.Call(name, args...), nil
}

func construct(c js.Value, args ...interface{}) (ret js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("new: %v", r)
		}
	}()
	if c.IsUndefined() {
		return js.Null(), ErrNotAvailable
	}
	return c.New(args...), nil
}

func stringSlice(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i := range s {
		out[i] = s[i]
	}
	return out
}

func toMat4(a js.Value) mat.Mat4 {
	var m mat.Mat4
	for i := range m {
		m[i] = float32(a.Index(i).Float())
	}
	return m
}
