package main

import (
	"errors"
	"fmt"
	"syscall/js"

	webgl "github.com/seqsense/webgl-go"
)

var errContextLost = errors.New("WebGL context lost")

func compileShader(gl *webgl.WebGL, typ webgl.ShaderType, name, src string) (webgl.Shader, error) {
	s := gl.CreateShader(typ)
	gl.ShaderSource(s, src)
	gl.CompileShader(s)
	if !gl.GetShaderParameter(s, gl.COMPILE_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Shader(js.Null()), errContextLost
		}
		return webgl.Shader(js.Null()), fmt.Errorf("compile failed (%s): %s",
			name, gl.GetShaderInfoLog(s),
		)
	}
	return s, nil
}

func newProgram(gl *webgl.WebGL, vsSrc, fsSrc string) (webgl.Program, error) {
	vs, err := compileShader(gl, gl.VERTEX_SHADER, "VERTEX_SHADER", vsSrc)
	if err != nil {
		return webgl.Program(js.Null()), err
	}
	fs, err := compileShader(gl, gl.FRAGMENT_SHADER, "FRAGMENT_SHADER", fsSrc)
	if err != nil {
		return webgl.Program(js.Null()), err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	if !gl.GetProgramParameter(program, gl.LINK_STATUS).(bool) {
		if gl.IsContextLost() {
			return webgl.Program(js.Null()), errContextLost
		}
		return webgl.Program(js.Null()), errors.New("link failed: " + gl.GetProgramInfoLog(program))
	}
	return program, nil
}
