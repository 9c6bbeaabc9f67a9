// Package gles is the orchestration layer of the translation runtime:
// it exposes the C-style shading handle API, validates arguments and
// handles, and coordinates the resource manager, the entity state
// machines and the shared compiler service. All operations on a
// Context are synchronous and single threaded; the only asynchrony is
// GPU work already submitted through the Pipeline collaborator.
package gles

import (
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vgl/compiler"
	"github.com/devblok/vgl/resource"
	"github.com/devblok/vgl/shader"
)

// Pipeline is the GPU backend collaborator. The runtime never submits
// work itself; it only needs to know whether submitted work may still
// reference shading objects, and how to wait for it to retire before
// destroying one.
type Pipeline interface {
	// InDrawState reports whether draw work that may reference
	// shading objects has been recorded and not yet flushed.
	InDrawState() bool

	// Flush blocks until all pending work has retired.
	Flush()
}

// nopPipeline backs contexts with no GPU attached, as used by tooling.
type nopPipeline struct{}

func (nopPipeline) InDrawState() bool { return false }
func (nopPipeline) Flush()            {}

// Context translates public API calls into operations on the resource
// manager and the entities. Errors are recorded on the context and
// read through GetError, never returned.
type Context struct {
	cfg       Configuration
	rm        *resource.Manager
	pipeline  Pipeline
	compiler  *compiler.Service
	lastError Enum
	logger    *log.Entry
}

// NewContext creates a context with no GPU pipeline attached.
func NewContext(cfg Configuration) *Context {
	return &Context{
		cfg:      cfg,
		rm:       resource.NewManager(),
		pipeline: nopPipeline{},
		logger:   log.WithField("component", "gles"),
	}
}

// SetPipeline attaches the GPU backend collaborator.
func (c *Context) SetPipeline(p Pipeline) {
	if p == nil {
		p = nopPipeline{}
	}
	c.pipeline = p
}

var current *Context

// MakeCurrent binds c as the process's current context. Deferred
// deletions park entities on the current context's resource manager.
func MakeCurrent(c *Context) {
	current = c
}

// Current returns the current context, nil when none is bound.
func Current() *Context {
	return current
}

// Flush forces submitted GPU work to retire and reclaims every parked
// entity that has become free for deletion.
func (c *Context) Flush() {
	c.logger.Debug("Flush")
	c.pipeline.Flush()
	c.rm.ReclaimPurged()
}

// Destroy tears the context down: pending work is flushed, parked
// entities reclaimed, all objects and the namespace destroyed, and
// the compiler service released.
func (c *Context) Destroy() {
	c.logger.Debug("Destroy")
	c.pipeline.Flush()
	c.rm.Destroy()
	if c.compiler != nil {
		c.compiler.Release()
		c.compiler = nil
	}
	if current == c {
		current = nil
	}
}

// hasShaderCompiler gates every compiler-dependent operation on the
// configured capability flag, recording InvalidOperation when absent.
func (c *Context) hasShaderCompiler() bool {
	if !c.cfg.Compiler.Supported {
		c.recordError(InvalidOperation)
		return false
	}
	return true
}

// createShaderCompiler lazily constructs the shared compiler service
// and retroactively attaches it to every live shader and program,
// regardless of when they were created. Rebuilt after an explicit
// release, at most one live instance exists at a time.
func (c *Context) createShaderCompiler() {
	if c.compiler != nil && c.compiler.Alive() {
		return
	}
	c.logger.Debug("constructing shader compiler service")
	c.compiler = compiler.New(compiler.Options{
		Debug:    c.cfg.Compiler.Debug,
		Validate: c.cfg.Compiler.Validate,
	})
	c.rm.ForEachShader(func(s *shader.Shader) {
		s.SetCompiler(c.compiler)
	})
	c.rm.ForEachProgram(func(p *shader.Program) {
		p.SetCompiler(c.compiler)
	})
}

// ReleaseShaderCompiler destroys the shared compiler service if one
// exists. Entities keep their stale reference; liveness is re-checked
// on every use, so they behave as having no compiler until a later
// compile-triggering call rebuilds and re-propagates the service.
func (c *Context) ReleaseShaderCompiler() {
	c.logger.Debug("ReleaseShaderCompiler")
	if !c.hasShaderCompiler() {
		return
	}
	if c.compiler != nil {
		c.compiler.Release()
		c.compiler = nil
	}
}

// copyTerminated implements the shared truncation contract of the log
// and source queries: at most bufSize-1 payload bytes land in out,
// always followed by a NUL terminator, so the result fits strictly
// inside bufSize. fullLen counts the terminator, matching the lengths
// reported by the iv queries; when it is 0 the result is an empty
// terminated string and the reported length is 0. out must hold at
// least bufSize bytes.
func copyTerminated(data string, fullLen int, bufSize int32, length *int32, out []byte) {
	n := int(bufSize)
	if fullLen < n {
		n = fullLen
	}
	if n--; n < 0 {
		n = 0
	}
	if length != nil {
		*length = int32(n)
	}
	if bufSize == 0 || len(out) == 0 {
		return
	}
	copy(out, data[:n])
	out[n] = 0
}
