// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak

import (
	"bytes"
	"io"
	"time"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it is computed from the added modules.
func NewBuilder(header Header) *Builder {
	if header.Created == 0 {
		header.Created = time.Now().Unix()
	}
	return &Builder{header: header}
}

type pendingModule struct {
	Name       string
	Stage      Stage
	Size       int64
	Compressed []byte
}

// Builder assembles a pack. Packs are versioned and cannot be
// appended to; Add compresses each module up front and WriteTo lays
// header and data out in one pass.
type Builder struct {
	header  Header
	modules []pendingModule
}

// Add compresses a compiled module and queues it under the given
// name. Blocks until lz4 finishes compression.
func (b *Builder) Add(name string, stage Stage, data []byte) error {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	b.modules = append(b.modules, pendingModule{
		Name:       name,
		Stage:      stage,
		Size:       int64(len(data)),
		Compressed: compressed.Bytes(),
	})
	return nil
}

// WriteTo bundles everything added so far into a pack that is ready
// to open. Module offsets are relative to the data section that
// starts right after the header, so the header can be encoded before
// the data is laid out.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	header := b.header
	header.Index = header.Index[:0]

	var offset int64
	for _, m := range b.modules {
		header.Index = append(header.Index, IndexEntry{
			Name:           m.Name,
			Stage:          m.Stage,
			Offset:         offset,
			Size:           m.Size,
			CompressedSize: int64(len(m.Compressed)),
		})
		offset += int64(len(m.Compressed))
	}

	rawHeader, err := encode(header)
	if err != nil {
		return 0, err
	}

	var written int64
	n, err := w.Write(magic[:])
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(int64ToBinary(int64(len(rawHeader))))
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(rawHeader)
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, m := range b.modules {
		n, err = w.Write(m.Compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	b.modules = b.modules[:0]
	return written, nil
}
