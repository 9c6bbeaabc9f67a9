package compiler_test

import (
	"testing"

	"github.com/devblok/vgl/compiler"
	"github.com/devblok/vgl/shader"
)

const vertexSource = `
@vertex
fn main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

func TestCompileProducesSPIRV(t *testing.T) {
	svc := compiler.New(compiler.Options{})
	res := svc.Compile(shader.VertexType, vertexSource)
	if !res.OK {
		t.Fatalf("compile failed: %s", res.Log)
	}
	if len(res.Binary) < 20 {
		t.Fatalf("SPIR-V output too short: %d bytes", len(res.Binary))
	}
	magic := uint32(res.Binary[0]) | uint32(res.Binary[1])<<8 |
		uint32(res.Binary[2])<<16 | uint32(res.Binary[3])<<24
	if magic != 0x07230203 {
		t.Errorf("SPIR-V magic = 0x%08x, want 0x07230203", magic)
	}
}

func TestCompileFailureCarriesLog(t *testing.T) {
	svc := compiler.New(compiler.Options{})
	res := svc.Compile(shader.FragmentType, "this is not a shader")
	if res.OK {
		t.Fatal("nonsense source compiled")
	}
	if res.Log == "" {
		t.Error("failed compile produced no diagnostics")
	}
	if len(res.Binary) != 0 {
		t.Error("failed compile produced a binary")
	}
}

func TestReleasedServiceNeverCompiles(t *testing.T) {
	svc := compiler.New(compiler.Options{})
	if !svc.Alive() {
		t.Fatal("fresh service not alive")
	}
	svc.Release()
	if svc.Alive() {
		t.Fatal("released service still alive")
	}
	res := svc.Compile(shader.VertexType, vertexSource)
	if res.OK {
		t.Error("released service compiled")
	}
}
