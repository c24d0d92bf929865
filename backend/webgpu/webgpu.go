//go:build windows

// Copyright 2026 Flint ML Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// operations.
//
// WebGPU is a cross-platform graphics and compute API. The backend uses
// zero-CGO bindings and requires the wgpu_native library at runtime.
//
// Example:
//
//	import (
//	    "github.com/flint-ml/flint/backend/webgpu"
//	    "github.com/flint-ml/flint/tensor"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    x := tensor.Zeros[float32](tensor.Shape{1024, 1024}, gpu)
//	    _ = x
//	}
package webgpu

import (
	internalwebgpu "github.com/flint-ml/flint/internal/backend/webgpu"
	"github.com/flint-ml/flint/tensor"
)

// Backend represents the WebGPU backend implementation for
// GPU-accelerated tensor operations.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for tensor operations. Call Release() when done to free GPU
// resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible
// GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It attempts to initialize a WebGPU adapter to verify that a
// compatible GPU and drivers are present. Useful for graceful fallback
// to the CPU backend:
//
//	if webgpu.IsAvailable() {
//	    backend, _ = webgpu.New()
//	} else {
//	    backend = cpu.New()
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
