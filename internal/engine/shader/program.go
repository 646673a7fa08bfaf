package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/logger"
)

// SourceFunc returns the current vertex and fragment sources.
type SourceFunc func() (vertex, fragment string, err error)

// Program is a linked GL program that can be rebuilt from its sources.
// A failed rebuild leaves the running program in place.
type Program struct {
	name     string
	source   SourceFunc
	id       uint32
	uniforms map[string]int32
}

// NewProgram builds the program once. Failing here is fatal to the caller
// because there is nothing to fall back to.
func NewProgram(name string, source SourceFunc) (*Program, error) {
	p := &Program{name: name, source: source}
	id, err := p.build()
	if err != nil {
		return nil, err
	}
	p.swap(id)
	logger.Info("shader program built", zap.String("program", name), zap.Uint32("id", id))
	return p, nil
}

func (p *Program) build() (uint32, error) {
	vert, frag, err := p.source()
	if err != nil {
		return 0, fmt.Errorf("%s: reading sources: %w", p.name, err)
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.name, err)
	}
	return id, nil
}

// swap installs id and deletes the previous program.
func (p *Program) swap(id uint32) {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
	p.id = id
	p.uniforms = make(map[string]int32)
}

// Reload rebuilds the program from its sources. On error the previous
// program stays active and the error is returned for reporting.
func (p *Program) Reload() error {
	id, err := p.build()
	if err != nil {
		return err
	}
	old := p.id
	p.swap(id)
	logger.Info("shader program reloaded",
		zap.String("program", p.name),
		zap.Uint32("old", old),
		zap.Uint32("new", id),
	)
	return nil
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the cached location of name. Inactive uniforms are -1,
// which GL ignores on upload.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := GetUniform(p.id, name)
	if loc < 0 {
		logger.Debug("inactive uniform", zap.String("program", p.name), zap.String("uniform", name))
	}
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.Uniform(name), 1, &v[0])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.Uniform(name), 1, &v[0])
}

func (p *Program) SetIVec3(name string, v [3]int32) {
	gl.Uniform3iv(p.Uniform(name), 1, &v[0])
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// Delete releases the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
