package shader

// Program is the state machine behind one program handle. Only as much
// of the link model exists as the shader lifecycle needs: attachments
// pin shaders against deletion, and the shared compiler reference is
// propagated here exactly as for shaders.
type Program struct {
	attached []*Shader
	infoLog  []byte
	linked   bool
	marked   bool
	compiler Compiler
}

// SetCompiler attaches the shared compiler service, on creation or
// retroactively when the service is constructed later.
func (p *Program) SetCompiler(c Compiler) {
	p.compiler = c
}

// Attach pins s to this program. It fails when s is already attached
// or when another shader of the same stage is.
func (p *Program) Attach(s *Shader) bool {
	for _, a := range p.attached {
		if a == s || a.Type() == s.Type() {
			return false
		}
	}
	p.attached = append(p.attached, s)
	s.Ref()
	return true
}

// Detach unpins s. It fails when s is not attached.
func (p *Program) Detach(s *Shader) bool {
	for i, a := range p.attached {
		if a == s {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			s.Unref()
			return true
		}
	}
	return false
}

// DetachAll unpins every attached shader, done when the program is
// physically destroyed.
func (p *Program) DetachAll() {
	for _, a := range p.attached {
		a.Unref()
	}
	p.attached = nil
}

// AttachedCount returns the number of attached shaders.
func (p *Program) AttachedCount() int {
	return len(p.attached)
}

// Link resolves link status from the attached shaders: it succeeds
// when a compiled vertex shader and a compiled fragment shader are
// both attached. Failures leave an explanatory info log.
func (p *Program) Link() {
	var vertex, fragment bool
	for _, a := range p.attached {
		switch a.Type() {
		case VertexType:
			vertex = a.IsCompiled()
		case FragmentType:
			fragment = a.IsCompiled()
		}
	}
	p.linked = vertex && fragment
	if p.linked {
		p.infoLog = nil
		return
	}
	switch {
	case !vertex && !fragment:
		p.infoLog = []byte("link failed: no compiled vertex or fragment shader attached")
	case !vertex:
		p.infoLog = []byte("link failed: no compiled vertex shader attached")
	default:
		p.infoLog = []byte("link failed: no compiled fragment shader attached")
	}
}

// IsLinked reports the status of the last Link call.
func (p *Program) IsLinked() bool {
	return p.linked
}

// InfoLog returns the diagnostic log of the last link, empty when
// there is none.
func (p *Program) InfoLog() string {
	return string(p.infoLog)
}

// InfoLogLength returns the log length including the terminator,
// 0 when the log is empty.
func (p *Program) InfoLogLength() int {
	if len(p.infoLog) == 0 {
		return 0
	}
	return len(p.infoLog) + 1
}

// MarkForDeletion sets the deletion mark. Idempotent, never cleared.
func (p *Program) MarkForDeletion() {
	p.marked = true
}

// MarkedForDeletion reports whether deletion has been requested.
func (p *Program) MarkedForDeletion() bool {
	return p.marked
}

// FreeForDeletion reports whether the program can be physically
// destroyed.
func (p *Program) FreeForDeletion() bool {
	return p.marked
}
