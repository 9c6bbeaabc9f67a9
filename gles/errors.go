package gles

// Error codes recorded against a context. Failures are sticky: the
// first recorded code is kept until GetError reads and clears it,
// later failures in between are dropped.
const (
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502
)

func (c *Context) recordError(code Enum) {
	if c.lastError == NoError {
		c.lastError = code
	}
}

// GetError returns the first error recorded since the previous call
// and clears the accumulator.
func (c *Context) GetError() Enum {
	code := c.lastError
	c.lastError = NoError
	return code
}
