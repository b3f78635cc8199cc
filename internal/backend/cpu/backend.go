// Package cpu implements the CPU backend with vectorized float32/float64 kernels.
package cpu

import (
	"fmt"

	"gorgonia.org/vecf32"
	"gorgonia.org/vecf64"

	"github.com/ember-ml/ember/internal/tensor"
)

// CPUBackend implements the tensor.Backend kernel set on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPUDevice(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// checkBinary enforces the kernel contract: matching shapes and dtypes.
// The evaluator validates at the pass boundary, so a violation here is a
// programmer error.
func checkBinary(op string, a, b *tensor.Buffer) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}
}

// Add performs element-wise addition.
func (cpu *CPUBackend) Add(a, b *tensor.Buffer) *tensor.Buffer {
	checkBinary("add", a, b)
	out := a.Clone()
	switch a.DType() {
	case tensor.Float32:
		vecf32.Add(out.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		vecf64.Add(out.AsFloat64(), b.AsFloat64())
	}
	return out
}

// Sub performs element-wise subtraction.
func (cpu *CPUBackend) Sub(a, b *tensor.Buffer) *tensor.Buffer {
	checkBinary("sub", a, b)
	out := a.Clone()
	switch a.DType() {
	case tensor.Float32:
		vecf32.Sub(out.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		vecf64.Sub(out.AsFloat64(), b.AsFloat64())
	}
	return out
}

// Mul performs element-wise multiplication.
func (cpu *CPUBackend) Mul(a, b *tensor.Buffer) *tensor.Buffer {
	checkBinary("mul", a, b)
	out := a.Clone()
	switch a.DType() {
	case tensor.Float32:
		vecf32.Mul(out.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		vecf64.Mul(out.AsFloat64(), b.AsFloat64())
	}
	return out
}

// Div performs element-wise division.
func (cpu *CPUBackend) Div(a, b *tensor.Buffer) *tensor.Buffer {
	checkBinary("div", a, b)
	out := a.Clone()
	switch a.DType() {
	case tensor.Float32:
		vecf32.Div(out.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		vecf64.Div(out.AsFloat64(), b.AsFloat64())
	}
	return out
}

// Scale multiplies every element by a constant.
func (cpu *CPUBackend) Scale(x *tensor.Buffer, c float64) *tensor.Buffer {
	out := x.Clone()
	switch x.DType() {
	case tensor.Float32:
		vecf32.Scale(out.AsFloat32(), float32(c))
	case tensor.Float64:
		vecf64.Scale(out.AsFloat64(), c)
	}
	return out
}

// AddScalar adds a constant to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.Buffer, c float64) *tensor.Buffer {
	out := x.Clone()
	switch x.DType() {
	case tensor.Float32:
		vecf32.Trans(out.AsFloat32(), float32(c))
	case tensor.Float64:
		vecf64.Trans(out.AsFloat64(), c)
	}
	return out
}

// Accumulate performs dst += src in place, in the operands' dtype.
func (cpu *CPUBackend) Accumulate(dst, src *tensor.Buffer) {
	checkBinary("accumulate", dst, src)
	switch dst.DType() {
	case tensor.Float32:
		vecf32.Add(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		vecf64.Add(dst.AsFloat64(), src.AsFloat64())
	}
}
