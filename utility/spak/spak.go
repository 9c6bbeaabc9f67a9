// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package spak is an lz4 backed container for compiled shader modules.
// A pack holds the SPIR-V output of a set of shaders together with
// their pipeline stages, with the full index known before any module
// is read. Every module is compressed individually so it can be read
// and decompressed in place without touching the rest of the pack,
// which keeps packs memory-mappable and concurrently readable.
package spak

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a spak pack")
	ErrNotFound   = errors.New("no module with that name in the pack")
)

// Stage tags a module with the pipeline stage it was compiled for.
type Stage uint8

// Module stages.
const (
	StageVertex Stage = iota + 1
	StageFragment
)

// Sizes relevant to the header of a pack file.
const (
	MagicLength            = 4
	HeaderSizeNumberLength = binary.MaxVarintLen64
)

var magic = [MagicLength]byte{'S', 'P', 'A', 'K'}

// IndexEntry is info for one module in the pack index. Offset is
// relative to the start of the data section that follows the header.
type IndexEntry struct {
	Name           string
	Stage          Stage
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the pack header.
type Header struct {
	Tool    string
	Created int64
	Version int64
	Index   []IndexEntry
}

func encode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(target interface{}, data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	return dec.Decode(target)
}

func int64ToBinary(num int64) []byte {
	numBytes := make([]byte, binary.MaxVarintLen64)
	binary.PutVarint(numBytes, num)
	return numBytes
}

func binaryToInt64(bts []byte) (int64, error) {
	num, err := binary.ReadVarint(bytes.NewReader(bts))
	if err != nil {
		return 0, err
	}
	return num, nil
}
