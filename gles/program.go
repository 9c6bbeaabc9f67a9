package gles

import (
	"github.com/devblok/vgl/resource"
	"github.com/devblok/vgl/shader"
)

// programPtr resolves a public handle to its program entity with the
// same two-way validation split as shaderPtr.
func (c *Context) programPtr(handle uint32) *shader.Program {
	if handle == 0 || handle >= c.rm.HandleBound() || !c.rm.Exists(handle) {
		c.recordError(InvalidValue)
		return nil
	}
	entry, _ := c.rm.Resolve(handle)
	if entry.Index == 0 || entry.Kind != resource.ProgramKind {
		c.recordError(InvalidOperation)
		return nil
	}
	return c.rm.Program(entry.Index)
}

// CreateProgram creates a new program object and returns its handle.
func (c *Context) CreateProgram() uint32 {
	c.logger.Debug("CreateProgram")

	index := c.rm.AllocateProgram()
	if c.compiler != nil {
		c.rm.Program(index).SetCompiler(c.compiler)
	}
	return c.rm.PushEntry(resource.Entry{Kind: resource.ProgramKind, Index: index})
}

// DeleteProgram marks the program for deletion and invalidates its
// handle, following the same eager-or-deferred policy as DeleteShader.
// Physical destruction detaches every attached shader. Handle 0 is a
// silent no-op.
func (c *Context) DeleteProgram(handle uint32) {
	c.logger.WithField("handle", handle).Debug("DeleteProgram")

	if handle == 0 {
		return
	}
	p := c.programPtr(handle)
	if p == nil {
		return
	}

	p.MarkForDeletion()

	entry, _ := c.rm.Resolve(handle)
	c.rm.Erase(handle)

	if p.FreeForDeletion() {
		if c.pipeline.InDrawState() {
			c.pipeline.Flush()
		}
		c.rm.DeallocateProgram(entry.Index)
		return
	}

	rm := c.rm
	if cur := Current(); cur != nil {
		rm = cur.rm
	}
	rm.AddToPurge(entry)
}

// IsProgram reports whether the handle refers to a live program
// object. Never records an error.
func (c *Context) IsProgram(handle uint32) bool {
	return c.rm.Is(handle, resource.ProgramKind)
}

// AttachShader attaches a shader to a program, pinning it against
// physical destruction. Attaching a shader twice, or a second shader
// of the same stage, records InvalidOperation.
func (c *Context) AttachShader(program, shaderHandle uint32) {
	c.logger.WithField("program", program).WithField("shader", shaderHandle).Debug("AttachShader")

	p := c.programPtr(program)
	if p == nil {
		return
	}
	s := c.shaderPtr(shaderHandle)
	if s == nil {
		return
	}
	if !p.Attach(s) {
		c.recordError(InvalidOperation)
	}
}

// DetachShader detaches a shader from a program. Detaching a shader
// that is not attached records InvalidOperation.
func (c *Context) DetachShader(program, shaderHandle uint32) {
	c.logger.WithField("program", program).WithField("shader", shaderHandle).Debug("DetachShader")

	p := c.programPtr(program)
	if p == nil {
		return
	}
	s := c.shaderPtr(shaderHandle)
	if s == nil {
		return
	}
	if !p.Detach(s) {
		c.recordError(InvalidOperation)
	}
}

// LinkProgram resolves the program's link status from its attached
// shaders. Link failure is not an API error; it is reported through
// GetProgramiv and the info log.
func (c *Context) LinkProgram(handle uint32) {
	c.logger.WithField("handle", handle).Debug("LinkProgram")

	p := c.programPtr(handle)
	if p == nil {
		return
	}
	p.Link()
}

// GetProgramiv writes one queryable program property into params.
// Unknown properties record InvalidEnum.
func (c *Context) GetProgramiv(handle uint32, pname Enum, params *int32) {
	p := c.programPtr(handle)
	if p == nil {
		return
	}

	switch pname {
	case LinkStatus:
		*params = glBool(p.IsLinked())
	case DeleteStatus:
		*params = glBool(p.MarkedForDeletion())
	case AttachedShaders:
		*params = int32(p.AttachedCount())
	case InfoLogLength:
		*params = int32(p.InfoLogLength())
	default:
		c.recordError(InvalidEnum)
	}
}
