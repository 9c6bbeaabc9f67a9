// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spak

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4"
)

// Open opens the pack from r, checking the magic and reading the full
// index up front. Returns an error when r does not hold a spak pack.
func Open(r io.ReaderAt) (*Pack, error) {
	rawMagic := make([]byte, MagicLength)
	if num, err := r.ReadAt(rawMagic, 0); err != nil {
		return nil, err
	} else if num < MagicLength || !bytes.Equal(rawMagic, magic[:]) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToInt64(headerSizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Pack{
		reader:    r,
		header:    header,
		dataStart: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// Pack provides concurrent access to the modules of one pack file.
type Pack struct {
	reader    io.ReaderAt
	header    Header
	dataStart int64
}

// Header returns the pack header including the module index.
func (p *Pack) Header() Header {
	return p.header
}

// ReadAll returns the decompressed contents of the named module.
func (p *Pack) ReadAll(name string) ([]byte, error) {
	for _, entry := range p.header.Index {
		if entry.Name != name {
			continue
		}
		section := io.NewSectionReader(p.reader, p.dataStart+entry.Offset, entry.CompressedSize)
		data := make([]byte, entry.Size)
		if _, err := io.ReadFull(lz4.NewReader(section), data); err != nil {
			return nil, err
		}
		return data, nil
	}
	return nil, ErrNotFound
}
