// Package shader holds the per-object state machines behind the public
// shading handles: Shader and Program entities, and the Compiler
// interface through which both reach the shared compiler service.
package shader

// Type identifies the pipeline stage a shader object feeds.
type Type int

// Shader stage types.
const (
	VertexType Type = iota
	FragmentType
	UnknownType
)

// CompileResult is the outcome of one compiler service invocation.
type CompileResult struct {
	// Binary is the translated module (SPIR-V, little-endian words),
	// empty when compilation failed.
	Binary []byte

	// Log carries compiler diagnostics, empty when there are none.
	Log string

	// OK reports whether a usable Binary was produced.
	OK bool
}

// Compiler is the shared service that translates shader source into
// the intermediate representation consumed by the GPU backend. One
// instance is shared by reference across all live shaders and
// programs; holders must check Alive before every use, a released
// service never compiles again.
type Compiler interface {
	Compile(typ Type, source string) CompileResult
	Alive() bool
}

// SourceFragment is one piece of a multi-fragment source upload.
// A negative Length means the whole Text is used, mirroring the C
// API's nul-terminated convention; otherwise Length bytes are taken.
type SourceFragment struct {
	Text   string
	Length int
}

// Shader is the state machine behind one shader handle. It owns the
// concatenated source text, the compile outcome and the deletion mark.
// The zero value is a freshly created shader of unknown type. Not safe
// for concurrent use; a context is single threaded.
type Shader struct {
	typ      Type
	source   []byte
	infoLog  []byte
	binary   []byte
	compiled bool
	marked   bool
	refCount int
	compiler Compiler
}

// SetType declares the pipeline stage this shader feeds.
func (s *Shader) SetType(typ Type) {
	s.typ = typ
}

// Type returns the declared pipeline stage.
func (s *Shader) Type() Type {
	return s.typ
}

// SetCompiler attaches the shared compiler service. Called on creation
// when the service already exists, and again retroactively when the
// service is constructed after this shader was.
func (s *Shader) SetCompiler(c Compiler) {
	s.compiler = c
}

// SetSource concatenates the fragments into a single buffer, replacing
// any previous source. The compiled flag is deliberately left alone:
// compile status reflects the last Compile call, not the current
// source, matching the historical GL object model.
func (s *Shader) SetSource(fragments []SourceFragment) {
	var buf []byte
	for _, f := range fragments {
		if f.Length < 0 || f.Length > len(f.Text) {
			buf = append(buf, f.Text...)
		} else {
			buf = append(buf, f.Text[:f.Length]...)
		}
	}
	s.source = buf
}

// HasSource reports whether source has been assigned.
func (s *Shader) HasSource() bool {
	return len(s.source) > 0
}

// Source returns the concatenated source, empty when none is assigned.
func (s *Shader) Source() string {
	return string(s.source)
}

// SourceLength returns the source length including the terminator, as
// reported through the query API. 0 when no source is assigned.
func (s *Shader) SourceLength() int {
	if len(s.source) == 0 {
		return 0
	}
	return len(s.source) + 1
}

// Compile runs the attached compiler service over the assigned source
// and stores the resulting status, binary and diagnostic log. It is a
// no-op when no source is assigned or when no live compiler service is
// attached.
func (s *Shader) Compile() {
	if len(s.source) == 0 {
		return
	}
	if s.compiler == nil || !s.compiler.Alive() {
		return
	}
	res := s.compiler.Compile(s.typ, string(s.source))
	s.compiled = res.OK
	s.binary = res.Binary
	if res.Log != "" {
		s.infoLog = []byte(res.Log)
	} else {
		s.infoLog = nil
	}
}

// IsCompiled reports the status of the last Compile call.
func (s *Shader) IsCompiled() bool {
	return s.compiled
}

// Binary returns the module produced by the last successful compile.
func (s *Shader) Binary() []byte {
	return s.binary
}

// InfoLog returns the diagnostic log of the last compile, empty when
// there is none.
func (s *Shader) InfoLog() string {
	return string(s.infoLog)
}

// InfoLogLength returns the log length including the terminator,
// 0 when the log is empty.
func (s *Shader) InfoLogLength() int {
	if len(s.infoLog) == 0 {
		return 0
	}
	return len(s.infoLog) + 1
}

// MarkForDeletion sets the deletion mark. Idempotent; the mark is
// never cleared once set.
func (s *Shader) MarkForDeletion() {
	s.marked = true
}

// MarkedForDeletion reports whether deletion has been requested.
func (s *Shader) MarkedForDeletion() bool {
	return s.marked
}

// Ref pins the shader against physical destruction, used by programs
// the shader is attached to.
func (s *Shader) Ref() {
	s.refCount++
}

// Unref releases one pin.
func (s *Shader) Unref() {
	if s.refCount > 0 {
		s.refCount--
	}
}

// FreeForDeletion reports whether the shader is marked for deletion
// and no longer pinned by any attachment. This predicate is the single
// gate for physical destruction.
func (s *Shader) FreeForDeletion() bool {
	return s.marked && s.refCount == 0
}
