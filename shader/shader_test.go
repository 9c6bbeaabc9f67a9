package shader_test

import (
	"strings"
	"testing"

	"github.com/devblok/vgl/shader"
)

// fakeCompiler counts invocations and succeeds or fails on demand.
type fakeCompiler struct {
	calls    int
	fail     bool
	released bool
}

func (f *fakeCompiler) Compile(typ shader.Type, source string) shader.CompileResult {
	f.calls++
	if f.fail {
		return shader.CompileResult{Log: "synthetic failure"}
	}
	return shader.CompileResult{Binary: []byte(source), OK: true}
}

func (f *fakeCompiler) Alive() bool {
	return !f.released
}

func TestSourceFragmentConcatenation(t *testing.T) {
	var s shader.Shader
	s.SetSource([]shader.SourceFragment{
		{Text: "abc", Length: -1},
		{Text: "defgh", Length: 3},
		{Text: "xyz", Length: 0},
	})
	if got := s.Source(); got != "abcdef" {
		t.Errorf("concatenated source = %q, want %q", got, "abcdef")
	}
	if got := s.SourceLength(); got != 7 {
		t.Errorf("source length = %d, want 7 (includes terminator)", got)
	}
}

func TestSourceReplacement(t *testing.T) {
	var s shader.Shader
	s.SetSource([]shader.SourceFragment{{Text: "first", Length: -1}})
	s.SetSource([]shader.SourceFragment{{Text: "second", Length: -1}})
	if got := s.Source(); got != "second" {
		t.Errorf("source after replacement = %q, want %q", got, "second")
	}
}

func TestCompileWithoutSourceIsNoOp(t *testing.T) {
	fake := &fakeCompiler{}
	var s shader.Shader
	s.SetCompiler(fake)
	s.Compile()
	if fake.calls != 0 {
		t.Error("compiler invoked without source assigned")
	}
	if s.IsCompiled() {
		t.Error("shader reports compiled without source")
	}
}

func TestCompileWithoutCompilerIsNoOp(t *testing.T) {
	var s shader.Shader
	s.SetSource([]shader.SourceFragment{{Text: "code", Length: -1}})
	s.Compile()
	if s.IsCompiled() {
		t.Error("shader reports compiled without a compiler attached")
	}
}

func TestCompileWithReleasedCompilerIsNoOp(t *testing.T) {
	fake := &fakeCompiler{released: true}
	var s shader.Shader
	s.SetCompiler(fake)
	s.SetSource([]shader.SourceFragment{{Text: "code", Length: -1}})
	s.Compile()
	if fake.calls != 0 {
		t.Error("released compiler was invoked")
	}
}

func TestCompileStoresOutcome(t *testing.T) {
	fake := &fakeCompiler{}
	var s shader.Shader
	s.SetCompiler(fake)
	s.SetSource([]shader.SourceFragment{{Text: "code", Length: -1}})
	s.Compile()
	if !s.IsCompiled() {
		t.Error("compile status false after successful compile")
	}
	if string(s.Binary()) != "code" {
		t.Errorf("binary = %q, want %q", s.Binary(), "code")
	}

	fake.fail = true
	s.Compile()
	if s.IsCompiled() {
		t.Error("compile status true after failed compile")
	}
	if !strings.Contains(s.InfoLog(), "synthetic failure") {
		t.Errorf("info log = %q, missing diagnostics", s.InfoLog())
	}
	if got := s.InfoLogLength(); got != len("synthetic failure")+1 {
		t.Errorf("info log length = %d, want %d", got, len("synthetic failure")+1)
	}
}

func TestCompiledFlagStickyAcrossSourceReassignment(t *testing.T) {
	fake := &fakeCompiler{}
	var s shader.Shader
	s.SetCompiler(fake)
	s.SetSource([]shader.SourceFragment{{Text: "one", Length: -1}})
	s.Compile()
	s.SetSource([]shader.SourceFragment{{Text: "two", Length: -1}})
	if !s.IsCompiled() {
		t.Error("reassigning source cleared the compiled flag")
	}
}

func TestMarkForDeletionIdempotent(t *testing.T) {
	var s shader.Shader
	s.MarkForDeletion()
	s.MarkForDeletion()
	if !s.MarkedForDeletion() {
		t.Error("deletion mark not set")
	}
	if !s.FreeForDeletion() {
		t.Error("unpinned marked shader not free for deletion")
	}
}

func TestFreeForDeletionRespectsPins(t *testing.T) {
	var s shader.Shader
	s.Ref()
	s.MarkForDeletion()
	if s.FreeForDeletion() {
		t.Error("pinned shader reported free for deletion")
	}
	s.Unref()
	if !s.FreeForDeletion() {
		t.Error("unpinned shader not free for deletion")
	}
	s.Unref() // must not underflow
	if !s.FreeForDeletion() {
		t.Error("extra Unref changed the predicate")
	}
}

func TestProgramAttachDetach(t *testing.T) {
	vert := &shader.Shader{}
	vert.SetType(shader.VertexType)
	frag := &shader.Shader{}
	frag.SetType(shader.FragmentType)
	other := &shader.Shader{}
	other.SetType(shader.VertexType)

	var p shader.Program
	if !p.Attach(vert) || !p.Attach(frag) {
		t.Fatal("attaching distinct stages failed")
	}
	if p.Attach(vert) {
		t.Error("double attach succeeded")
	}
	if p.Attach(other) {
		t.Error("second vertex shader attach succeeded")
	}
	if got := p.AttachedCount(); got != 2 {
		t.Errorf("attached count = %d, want 2", got)
	}

	vert.MarkForDeletion()
	if vert.FreeForDeletion() {
		t.Error("attached shader reported free for deletion")
	}
	if !p.Detach(vert) {
		t.Error("detach of attached shader failed")
	}
	if !vert.FreeForDeletion() {
		t.Error("detached marked shader not free for deletion")
	}
	if p.Detach(vert) {
		t.Error("detach of unattached shader succeeded")
	}
}

func TestProgramLink(t *testing.T) {
	fake := &fakeCompiler{}
	vert := &shader.Shader{}
	vert.SetType(shader.VertexType)
	vert.SetCompiler(fake)
	vert.SetSource([]shader.SourceFragment{{Text: "v", Length: -1}})
	frag := &shader.Shader{}
	frag.SetType(shader.FragmentType)
	frag.SetCompiler(fake)
	frag.SetSource([]shader.SourceFragment{{Text: "f", Length: -1}})

	var p shader.Program
	p.Attach(vert)
	p.Attach(frag)

	p.Link()
	if p.IsLinked() {
		t.Error("link succeeded with uncompiled shaders")
	}
	if p.InfoLogLength() == 0 {
		t.Error("failed link left no info log")
	}

	vert.Compile()
	frag.Compile()
	p.Link()
	if !p.IsLinked() {
		t.Error("link failed with compiled vertex and fragment shaders")
	}
	if p.InfoLogLength() != 0 {
		t.Errorf("successful link kept stale log %q", p.InfoLog())
	}
}
