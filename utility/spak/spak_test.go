// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/devblok/vgl/utility/spak"
)

var (
	testModule1 = bytes.Repeat([]byte{0x03, 0x02, 0x23, 0x07}, 64)
	testModule2 = []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x01, 0x03, 0x00}
)

func TestCreateAndRead(t *testing.T) {
	builder := spak.NewBuilder(spak.Header{
		Tool:    "vglc",
		Created: time.Now().Unix(),
		Version: 1,
	})
	if err := builder.Add("triangle.vert", spak.StageVertex, testModule1); err != nil {
		t.Error(err)
	}
	if err := builder.Add("triangle.frag", spak.StageFragment, testModule2); err != nil {
		t.Error(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if written, err := builder.WriteTo(buf); err != nil {
		t.Error(err)
	} else {
		t.Logf("written %d", written)
	}

	pack, err := spak.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	header := pack.Header()
	if len(header.Index) != 2 {
		t.Fatalf("index holds %d entries, want 2", len(header.Index))
	}
	if header.Index[0].Stage != spak.StageVertex || header.Index[1].Stage != spak.StageFragment {
		t.Error("stage tags did not survive the round trip")
	}

	result, err := pack.ReadAll("triangle.vert")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(result, testModule1) {
		t.Error("module contents do not match up")
	}

	result, err = pack.ReadAll("triangle.frag")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(result, testModule2) {
		t.Error("module contents do not match up")
	}
}

func TestReadMissingModule(t *testing.T) {
	builder := spak.NewBuilder(spak.Header{Tool: "vglc", Version: 1})
	builder.Add("present", spak.StageVertex, testModule1)

	var buf bytes.Buffer
	if _, err := builder.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	pack, err := spak.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pack.ReadAll("missing"); err != spak.ErrNotFound {
		t.Errorf("ReadAll(missing) = %v, want ErrNotFound", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := spak.Open(bytes.NewReader([]byte("KAR\x00 something else entirely"))); err == nil {
		t.Error("garbage input opened without error")
	}
}
