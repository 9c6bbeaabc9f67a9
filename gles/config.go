package gles

import (
	"github.com/gobuffalo/envy"
)

// Configuration defines a context-wide configuration setting.
type Configuration struct {
	Compiler CompilerConfiguration
}

// CompilerConfiguration is used to configure the shader compiler
// service.
type CompilerConfiguration struct {
	// Supported advertises shader compiler support for this
	// configuration. When false every compiler-dependent operation
	// fails with InvalidOperation, as on binary-only GLES targets.
	Supported bool

	// Debug keeps debug information in generated modules.
	Debug bool

	// Validate runs IR validation before code generation.
	Validate bool
}

// DefaultConfiguration returns the configuration of a full featured
// context.
func DefaultConfiguration() Configuration {
	return Configuration{
		Compiler: CompilerConfiguration{
			Supported: true,
			Validate:  true,
		},
	}
}

// ConfigurationFromEnv builds a configuration from the environment,
// starting from the defaults:
//
//	VGL_SHADER_COMPILER  "0" disables compiler support
//	VGL_COMPILER_DEBUG   "1" keeps debug info in modules
//	VGL_COMPILER_VALIDATE "0" skips IR validation
func ConfigurationFromEnv() Configuration {
	cfg := DefaultConfiguration()
	if envy.Get("VGL_SHADER_COMPILER", "1") == "0" {
		cfg.Compiler.Supported = false
	}
	if envy.Get("VGL_COMPILER_DEBUG", "0") == "1" {
		cfg.Compiler.Debug = true
	}
	if envy.Get("VGL_COMPILER_VALIDATE", "1") == "0" {
		cfg.Compiler.Validate = false
	}
	return cfg
}
