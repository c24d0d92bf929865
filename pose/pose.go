// Copyright 2026 Flint ML Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pose builds 4x4 homogeneous transformation matrices from
// rigid-body pose representations.
//
// Transformations are Float32, row-major, with no scale component:
//
//	[ R t ]
//	[ 0 1 ]
package pose

import (
	"errors"
	"fmt"
	"math"

	"github.com/flint-ml/flint/tensor"
)

var (
	// ErrInvalidShape is returned when an operand has the wrong shape.
	ErrInvalidShape = errors.New("pose: invalid shape")

	// ErrUnsupportedDtype is returned for non-Float32 operands.
	ErrUnsupportedDtype = errors.New("pose: unsupported dtype")

	// ErrDeviceMismatch is returned when operands live on different devices.
	ErrDeviceMismatch = errors.New("pose: operand device mismatch")
)

// FromRt assembles a 4x4 transformation from a 3x3 rotation matrix r
// and a translation vector t of length 3. Both must be Float32 and on
// the same device; the result is on that device.
func FromRt(r, t *tensor.RawTensor) (*tensor.RawTensor, error) {
	if !r.Shape().Equal(tensor.Shape{3, 3}) {
		return nil, fmt.Errorf("%w: rotation must be 3x3, got %v", ErrInvalidShape, r.Shape())
	}
	if !t.Shape().Equal(tensor.Shape{3}) {
		return nil, fmt.Errorf("%w: translation must have length 3, got %v", ErrInvalidShape, t.Shape())
	}
	if r.DType() != tensor.Float32 || t.DType() != tensor.Float32 {
		return nil, fmt.Errorf("%w: got %s and %s", ErrUnsupportedDtype, r.DType(), t.DType())
	}
	if r.Device() != t.Device() {
		return nil, fmt.Errorf("%w: rotation on %s, translation on %s", ErrDeviceMismatch, r.Device(), t.Device())
	}

	out, err := tensor.NewRaw(tensor.Shape{4, 4}, tensor.Float32, r.Device())
	if err != nil {
		return nil, err
	}
	m := out.AsFloat32()
	rot := r.AsFloat32()
	tr := t.AsFloat32()

	for i := 0; i < 3; i++ {
		copy(m[i*4:i*4+3], rot[i*3:i*3+3])
		m[i*4+3] = tr[i]
	}
	m[15] = 1
	return out, nil
}

// FromPose assembles a 4x4 transformation from a pose vector
// [rx, ry, rz, tx, ty, tz]: rotations about the x, y and z axes in
// radians, applied in ZYX order, followed by a translation. The pose
// must be a Float32 vector of length 6.
func FromPose(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if !x.Shape().Equal(tensor.Shape{6}) {
		return nil, fmt.Errorf("%w: pose must have length 6, got %v", ErrInvalidShape, x.Shape())
	}
	if x.DType() != tensor.Float32 {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedDtype, x.DType())
	}

	out, err := tensor.NewRaw(tensor.Shape{4, 4}, tensor.Float32, x.Device())
	if err != nil {
		return nil, err
	}
	m := out.AsFloat32()
	p := x.AsFloat32()

	sx, cx := sincos(p[0])
	sy, cy := sincos(p[1])
	sz, cz := sincos(p[2])

	m[0] = cz * cy
	m[1] = -sz*cx + cz*sy*sx
	m[2] = sz*sx + cz*sy*cx
	m[4] = sz * cy
	m[5] = cz*cx + sz*sy*sx
	m[6] = -cz*sx + sz*sy*cx
	m[8] = -sy
	m[9] = cy * sx
	m[10] = cy * cx

	m[3] = p[3]
	m[7] = p[4]
	m[11] = p[5]
	m[15] = 1
	return out, nil
}

func sincos(v float32) (sin, cos float32) {
	s, c := math.Sincos(float64(v))
	return float32(s), float32(c)
}
