package gles

import (
	"github.com/devblok/vgl/resource"
	"github.com/devblok/vgl/shader"
)

// shaderPtr resolves a public handle to its shader entity, recording
// InvalidValue for a malformed or unknown handle and InvalidOperation
// when the handle is live but refers to another object kind.
func (c *Context) shaderPtr(handle uint32) *shader.Shader {
	if handle == 0 || handle >= c.rm.HandleBound() || !c.rm.Exists(handle) {
		c.recordError(InvalidValue)
		return nil
	}
	entry, _ := c.rm.Resolve(handle)
	if entry.Index == 0 || entry.Kind != resource.ShaderKind {
		c.recordError(InvalidOperation)
		return nil
	}
	return c.rm.Shader(entry.Index)
}

// CreateShader creates a new shader object of the given type and
// returns its handle, 0 when the type is neither VertexShader nor
// FragmentShader.
func (c *Context) CreateShader(shaderType Enum) uint32 {
	c.logger.WithField("type", shaderType).Debug("CreateShader")

	if shaderType != VertexShader && shaderType != FragmentShader {
		c.recordError(InvalidEnum)
		return 0
	}

	index := c.rm.AllocateShader()
	s := c.rm.Shader(index)
	if shaderType == VertexShader {
		s.SetType(shader.VertexType)
	} else {
		s.SetType(shader.FragmentType)
	}
	if c.compiler != nil {
		s.SetCompiler(c.compiler)
	}

	return c.rm.PushEntry(resource.Entry{Kind: resource.ShaderKind, Index: index})
}

// DeleteShader marks the shader for deletion and invalidates its
// handle. The object is destroyed immediately when provably
// unreferenced, flushing pending draw work first if needed; otherwise
// it parks on the purge list of the current context's resource manager
// until a later flush or teardown finds it free. Handle 0 is a silent
// no-op.
func (c *Context) DeleteShader(handle uint32) {
	c.logger.WithField("handle", handle).Debug("DeleteShader")

	if handle == 0 {
		return
	}
	s := c.shaderPtr(handle)
	if s == nil {
		return
	}

	s.MarkForDeletion()

	entry, _ := c.rm.Resolve(handle)
	c.rm.Erase(handle)

	if s.FreeForDeletion() {
		// Flush in case submitted work still references the shader.
		if c.pipeline.InDrawState() {
			c.pipeline.Flush()
		}
		c.rm.DeallocateShader(entry.Index)
		return
	}

	rm := c.rm
	if cur := Current(); cur != nil {
		rm = cur.rm
	}
	rm.AddToPurge(entry)
}

// ShaderSource replaces the shader's source with the concatenation of
// the first count fragments. Requires compiler support; count outside
// [0, len(fragments)] records InvalidValue.
func (c *Context) ShaderSource(handle uint32, count int32, fragments []shader.SourceFragment) {
	c.logger.WithField("handle", handle).Debug("ShaderSource")

	if !c.hasShaderCompiler() {
		return
	}
	s := c.shaderPtr(handle)
	if s == nil {
		return
	}
	if count < 0 || int(count) > len(fragments) {
		c.recordError(InvalidValue)
		return
	}
	s.SetSource(fragments[:count])
}

// CompileShader compiles the shader's source through the shared
// compiler service, constructing the service on first need. Without
// compiler support, a resolvable handle or assigned source the call
// returns without touching entity state.
func (c *Context) CompileShader(handle uint32) {
	c.logger.WithField("handle", handle).Debug("CompileShader")

	if !c.hasShaderCompiler() {
		return
	}
	s := c.shaderPtr(handle)
	if s == nil || !s.HasSource() {
		return
	}

	c.createShaderCompiler()

	s.Compile()
}

// GetShaderiv writes one queryable shader property into params.
// Unknown properties record InvalidEnum; on an invalid handle params
// is left untouched.
func (c *Context) GetShaderiv(handle uint32, pname Enum, params *int32) {
	s := c.shaderPtr(handle)
	if s == nil {
		return
	}

	switch pname {
	case CompileStatus:
		*params = glBool(s.IsCompiled())
	case DeleteStatus:
		*params = glBool(s.MarkedForDeletion())
	case InfoLogLength:
		*params = int32(s.InfoLogLength())
	case ShaderSourceLength:
		*params = int32(s.SourceLength())
	case ShaderType:
		if s.Type() == shader.FragmentType {
			*params = int32(FragmentShader)
		} else {
			*params = int32(VertexShader)
		}
	default:
		c.recordError(InvalidEnum)
	}
}

// GetShaderInfoLog copies the shader's info log into infoLog under the
// truncation contract: at most bufSize-1 bytes plus a NUL terminator,
// with the payload length written to length. bufSize < 0 records
// InvalidValue.
func (c *Context) GetShaderInfoLog(handle uint32, bufSize int32, length *int32, infoLog []byte) {
	if bufSize < 0 {
		c.recordError(InvalidValue)
		return
	}
	s := c.shaderPtr(handle)
	if s == nil {
		return
	}
	copyTerminated(s.InfoLog(), s.InfoLogLength(), bufSize, length, infoLog)
}

// GetShaderSource copies the concatenated source into source under the
// same truncation contract as GetShaderInfoLog.
func (c *Context) GetShaderSource(handle uint32, bufSize int32, length *int32, source []byte) {
	if bufSize < 0 {
		c.recordError(InvalidValue)
		return
	}
	s := c.shaderPtr(handle)
	if s == nil {
		return
	}
	copyTerminated(s.Source(), s.SourceLength(), bufSize, length, source)
}

// IsShader reports whether the handle refers to a live shader object.
// Never records an error.
func (c *Context) IsShader(handle uint32) bool {
	return c.rm.Is(handle, resource.ShaderKind)
}

// ShaderIR returns the intermediate representation produced by the
// last successful compile, nil when none exists. This is the seam the
// GPU backend and tooling consume modules through; it is not part of
// the GLES surface.
func (c *Context) ShaderIR(handle uint32) []byte {
	s := c.shaderPtr(handle)
	if s == nil {
		return nil
	}
	return s.Binary()
}

// ShaderBinary would load a precompiled shader binary into a set of
// shader objects. No binary format exists in this implementation to
// fail gracefully into, so calling it is fatal rather than a
// recoverable API error.
func (c *Context) ShaderBinary(handles []uint32, binaryFormat Enum, binary []byte) {
	panic("gles: ShaderBinary is not implemented")
}
