package gles

// Enum is a GLES enumerated value. Canonical GLES2 numeric values are
// kept so that handles and enums can cross the C boundary unchanged.
type Enum uint32

// Shader object types.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
)

// Shader and program queryable properties.
const (
	DeleteStatus       Enum = 0x8B80
	CompileStatus      Enum = 0x8B81
	LinkStatus         Enum = 0x8B82
	InfoLogLength      Enum = 0x8B84
	AttachedShaders    Enum = 0x8B85
	ShaderSourceLength Enum = 0x8B88
	ShaderType         Enum = 0x8B4F
)

// Precision format kinds.
const (
	LowFloat    Enum = 0x8DF0
	MediumFloat Enum = 0x8DF1
	HighFloat   Enum = 0x8DF2
	LowInt      Enum = 0x8DF3
	MediumInt   Enum = 0x8DF4
	HighInt     Enum = 0x8DF5
)

// Boolean query values.
const (
	False int32 = 0
	True  int32 = 1
)

func glBool(b bool) int32 {
	if b {
		return True
	}
	return False
}
