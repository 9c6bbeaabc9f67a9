// vglc compiles shader source files through the vgl translation
// runtime and bundles the resulting SPIR-V modules into a spak pack.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/vgl/gles"
	"github.com/devblok/vgl/shader"
	"github.com/devblok/vgl/utility/spak"
)

var (
	output  = flag.String("o", "out.spak", "pack file to write")
	samples = flag.Bool("samples", false, "compile the embedded sample shaders")
	verbose = flag.Bool("v", false, "enable debug logging")
)

type input struct {
	name string
	typ  gles.Enum
	src  string
}

// stageForFile maps the shader file naming convention onto shader
// types: name.vert.wgsl feeds the vertex stage, name.frag.wgsl the
// fragment stage.
func stageForFile(name string) (gles.Enum, bool) {
	nodes := strings.Split(strings.TrimSuffix(name, ".wgsl"), ".")
	if len(nodes) < 2 {
		return 0, false
	}
	switch nodes[len(nodes)-1] {
	case "vert":
		return gles.VertexShader, true
	case "frag":
		return gles.FragmentShader, true
	}
	return 0, false
}

func collectInputs() []input {
	var inputs []input
	if *samples {
		for _, name := range sampleNames {
			src, err := SampleShaders.FindString(name)
			if err != nil {
				log.Fatalf("embedded sample %s missing: %v", name, err)
			}
			typ, ok := stageForFile(name)
			if !ok {
				log.Fatalf("embedded sample %s has no stage suffix", name)
			}
			inputs = append(inputs, input{name: name, typ: typ, src: src})
		}
	}
	for _, path := range flag.Args() {
		typ, ok := stageForFile(path)
		if !ok {
			log.Fatalf("%s: cannot infer stage, expected .vert.wgsl or .frag.wgsl", path)
		}
		src, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		inputs = append(inputs, input{name: path, typ: typ, src: string(src)})
	}
	return inputs
}

func stageFor(typ gles.Enum) spak.Stage {
	if typ == gles.FragmentShader {
		return spak.StageFragment
	}
	return spak.StageVertex
}

func main() {
	godotenv.Load()
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	inputs := collectInputs()
	if len(inputs) == 0 {
		log.Fatal("nothing to compile, pass shader files or -samples")
	}

	ctx := gles.NewContext(gles.ConfigurationFromEnv())
	gles.MakeCurrent(ctx)
	defer ctx.Destroy()

	builder := spak.NewBuilder(spak.Header{
		Tool:    "vglc",
		Version: 1,
	})

	failed := false
	for _, in := range inputs {
		handle := ctx.CreateShader(in.typ)
		ctx.ShaderSource(handle, 1, []shader.SourceFragment{{Text: in.src, Length: -1}})
		ctx.CompileShader(handle)
		if code := ctx.GetError(); code != gles.NoError {
			log.Fatalf("%s: context error 0x%04x", in.name, uint32(code))
		}

		var status int32
		ctx.GetShaderiv(handle, gles.CompileStatus, &status)
		if status != gles.True {
			var logLen int32
			ctx.GetShaderiv(handle, gles.InfoLogLength, &logLen)
			buf := make([]byte, logLen)
			ctx.GetShaderInfoLog(handle, logLen, nil, buf)
			log.WithField("file", in.name).Errorf("compile failed: %s", strings.TrimRight(string(buf), "\x00"))
			failed = true
			ctx.DeleteShader(handle)
			continue
		}

		ir := ctx.ShaderIR(handle)
		log.WithField("file", in.name).Infof("compiled, %d bytes of SPIR-V", len(ir))
		if err := builder.Add(in.name, stageFor(in.typ), ir); err != nil {
			log.Fatal(err)
		}
		ctx.DeleteShader(handle)
	}
	if failed {
		os.Exit(1)
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()
	written, err := builder.WriteTo(out)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %s (%d bytes, %d modules)", *output, written, len(inputs))
}
