// Package compiler provides the shared compiler service of the
// translation runtime. It wraps the naga shader compiler to translate
// WGSL source into SPIR-V, the intermediate representation the GPU
// backend consumes. A single Service instance is built lazily by the
// context and shared by reference across every live shader and
// program entity.
package compiler

import (
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/spirv"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vgl/shader"
)

// Options configures the compiler service.
type Options struct {
	// Debug keeps debug information (names, line info) in the
	// generated modules.
	Debug bool

	// Validate runs IR validation before code generation.
	Validate bool
}

// New constructs a compiler service. Construction is the expensive
// step; the context builds at most one live instance per epoch and
// propagates it to every existing entity.
func New(opts Options) *Service {
	return &Service{opts: opts}
}

// Service implements shader.Compiler on top of naga. The zero value
// is not usable; construct with New.
type Service struct {
	opts     Options
	released bool
}

// Compile translates source for the given stage and reports the
// outcome. Diagnostics end up in the result log, never in a Go error:
// a failed compile is a valid outcome for the caller to query.
func (s *Service) Compile(typ shader.Type, source string) shader.CompileResult {
	if s.released {
		return shader.CompileResult{Log: "compiler service has been released"}
	}

	bin, err := naga.CompileWithOptions(source, naga.CompileOptions{
		SPIRVVersion: spirv.Version1_3,
		Debug:        s.opts.Debug,
		Validate:     s.opts.Validate,
	})
	if err != nil {
		log.WithField("stage", typ).Debugf("shader compile failed: %v", err)
		return shader.CompileResult{Log: err.Error()}
	}
	return shader.CompileResult{Binary: bin, OK: true}
}

// Alive reports whether the service has not been released.
func (s *Service) Alive() bool {
	return !s.released
}

// Release destroys the shared instance. Entities still holding a
// reference observe Alive() == false and treat compile attempts as
// "no compiler available" until a new instance is built and
// re-propagated.
func (s *Service) Release() {
	s.released = true
}
