package gles

import "math"

// GetShaderPrecisionFormat writes the numeric range and precision of
// the given precision kind, derived from the exponent and mantissa
// width of the representation backing each format. Requires compiler
// support; unknown shader or precision kinds record InvalidEnum and
// leave the outputs untouched.
func (c *Context) GetShaderPrecisionFormat(shaderType, precisionType Enum, rangeOut *[2]int32, precision *int32) {
	if !c.hasShaderCompiler() {
		return
	}
	if shaderType != VertexShader && shaderType != FragmentShader {
		c.recordError(InvalidEnum)
		return
	}

	switch precisionType {
	case LowFloat, MediumFloat, HighFloat:
		exp := int32(math.Floor(math.Log2(math.MaxFloat32)))
		eps := float64(math.Nextafter32(1, 2) - 1)
		rangeOut[0] = exp
		rangeOut[1] = exp
		*precision = int32(math.Floor(-math.Log2(eps)))
	case LowInt, MediumInt:
		exp := int32(math.Floor(math.Log2(math.MaxInt16)))
		rangeOut[0] = exp
		rangeOut[1] = exp
		*precision = 0
	case HighInt:
		exp := int32(math.Floor(math.Log2(math.MaxInt32)))
		rangeOut[0] = exp
		rangeOut[1] = exp
		*precision = 0
	default:
		c.recordError(InvalidEnum)
	}
}
