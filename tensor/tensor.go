// Copyright 2026 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for buffers, shapes, and devices in
// the Ember evaluation engine.
//
// The package defines the core data types flowing along graph edges:
//   - Buffer: contiguous, exclusively owned numeric storage with shape metadata
//   - Shape, DataType, Device: core type definitions
//   - Backend: interface for device-specific kernel implementations
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPUDevice())
package tensor

import (
	"github.com/ember-ml/ember/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for buffer element types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a buffer.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device is an opaque descriptor identifying the compute device.
type Device = tensor.Device

// CPUDevice returns the descriptor for the host CPU.
func CPUDevice() Device {
	return tensor.CPUDevice()
}

// GPUDevice returns the descriptor for the accelerator with the given index.
func GPUDevice(index int) Device {
	return tensor.GPUDevice(index)
}

// Shape represents the dimensions of a buffer.
// Example: Shape{2, 3, 4} represents a 3D buffer with dimensions 2×3×4.
type Shape = tensor.Shape

// FreeDim marks a dimension bound to a concrete size at evaluation time
// (typically the batch axis).
const FreeDim = tensor.FreeDim

// Buffer owns a contiguous block of numeric storage plus shape metadata.
type Buffer = tensor.Buffer

// Backend is the kernel interface evaluators dispatch through.
type Backend = tensor.Backend

// Creation functions

// NewBuffer allocates a zero-filled buffer with the given shape and type.
func NewBuffer(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	return tensor.NewBuffer(shape, dtype, device)
}

// Zeros creates a buffer filled with zeros.
func Zeros(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	return tensor.Zeros(shape, dtype, device)
}

// Ones creates a buffer filled with ones.
func Ones(shape Shape, dtype DataType, device Device) (*Buffer, error) {
	return tensor.Ones(shape, dtype, device)
}

// Full creates a buffer filled with a specific value.
func Full(shape Shape, value float64, dtype DataType, device Device) (*Buffer, error) {
	return tensor.Full(shape, value, dtype, device)
}

// FromSlice creates a buffer from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, tensor.CPUDevice())
func FromSlice[T DType](data []T, shape Shape, device Device) (*Buffer, error) {
	return tensor.FromSlice(data, shape, device)
}

// Host boundary

// FromHost adapts a host-native array, which carries the reversed
// dimension-ordering convention, into a canonical row-major buffer. The
// adaptation happens once, at this boundary only.
func FromHost[T DType](data []T, hostShape Shape, device Device) (*Buffer, error) {
	return tensor.FromHost(data, hostShape, device)
}

// ToHost returns a buffer's flat data together with the host-convention
// (reversed) shape. The inverse of FromHost.
func ToHost[T DType](b *Buffer) ([]T, Shape, error) {
	return tensor.ToHost[T](b)
}

// Diagnostics

// LiveBuffers returns the number of buffers currently allocated and not yet
// released. Useful for verifying pass memory behavior in tests.
func LiveBuffers() int64 {
	return tensor.LiveBuffers()
}
