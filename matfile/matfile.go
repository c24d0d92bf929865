// Copyright 2026 Flint ML Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matfile reads and writes Flint's binary matrix file format.
//
// The format is a fixed little-endian header (magic, version, dtype,
// dimensions) followed by the row-major payload. Open memory-maps the
// file, so loading a large matrix costs no copy; Write streams a tensor
// out with its header.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float64, tensor.CPU)
//	_ = matfile.Write("weights.fmat", raw)
//
//	m, err := matfile.Open("weights.fmat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//	fmt.Println(m.Tensor.Shape())
package matfile

import (
	"github.com/flint-ml/flint/internal/matfile"
	"github.com/flint-ml/flint/tensor"
)

// Format errors.
var (
	ErrBadMagic    = matfile.ErrBadMagic
	ErrBadVersion  = matfile.ErrBadVersion
	ErrCorrupt     = matfile.ErrCorrupt
	ErrUnsupported = matfile.ErrUnsupported
)

// Matrix is a read-only, memory-mapped matrix file. The embedded tensor
// aliases the mapping directly and stays valid until Close.
type Matrix = matfile.Matrix

// Write stores a 1D or 2D tensor at path, replacing any existing file.
func Write(path string, t *tensor.RawTensor) error {
	return matfile.Write(path, t)
}

// Open memory-maps the matrix file at path read-only and validates its
// header. The returned Matrix must be closed when no longer needed.
func Open(path string) (*Matrix, error) {
	return matfile.Open(path)
}
