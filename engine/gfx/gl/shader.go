package glbackend

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/sprout/engine/core"
)

var (
	//go:embed shaders/batch.vert
	batchVert string
	//go:embed shaders/textured.frag
	texturedFrag string
	//go:embed shaders/outline.frag
	outlineFrag string
)

// program is a linked pipeline plus the uniforms the backend drives.
type program struct {
	handle   uint32
	coverage int32 // uCoverage location, -1 if absent
}

func newProgram(name, vsSrc, fsSrc string) (program, error) {
	handle, err := linkProgram(vsSrc, fsSrc)
	if err != nil {
		return program{}, fmt.Errorf("%s program: %w", name, err)
	}
	p := program{handle: handle, coverage: uniform(handle, "uCoverage")}

	// bind sampler i to texture unit i once
	gl.UseProgram(handle)
	for i := 0; i < core.MaxTextureSlots; i++ {
		if loc := uniform(handle, fmt.Sprintf("uTex[%d]", i)); loc >= 0 {
			gl.Uniform1i(loc, int32(i))
		}
	}
	gl.UseProgram(0)
	return p, nil
}

func (p *program) delete() {
	if p.handle != 0 {
		gl.DeleteProgram(p.handle)
		p.handle = 0
	}
}

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func linkProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := compileShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
