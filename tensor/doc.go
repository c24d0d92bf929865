// Copyright 2026 Flint ML Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe dense tensors for the Flint library.
//
// # Overview
//
// Tensors are the fundamental data structure in Flint. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - A low-level RawTensor representation shared by all backends
//   - Device abstraction (CPU, WebGPU, CUDA planned)
//
// # Basic Usage
//
//	import (
//	    "github.com/flint-ml/flint/backend/cpu"
//	    "github.com/flint-ml/flint/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    z := x.Add(y)
//	    result := x.MatMul(y.Transpose())
//	    _ = result
//	}
//
// # Supported Data Types
//
// The DType constraint covers:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//
// # Device Support
//
// Tensors can reside on different devices:
//   - CPU: pure Go implementation
//   - WebGPU: zero-CGO GPU acceleration (Windows)
//   - CUDA, Vulkan, Metal: planned
package tensor
