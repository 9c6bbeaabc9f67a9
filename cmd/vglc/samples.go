package main

import (
	"github.com/gobuffalo/packr"
)

// Essential globals
var (
	// SampleShaders embeds the sample shader sources used by the
	// -samples smoke run.
	SampleShaders packr.Box

	sampleNames = []string{
		"triangle.vert.wgsl",
		"triangle.frag.wgsl",
	}
)

func init() {
	SampleShaders = packr.NewBox("./samples")
}
