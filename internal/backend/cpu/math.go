package cpu

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/ember-ml/ember/internal/tensor"
)

// mapUnary applies f32/f64 element-wise into a fresh buffer.
func mapUnary(x *tensor.Buffer, f32 func(float32) float32, f64 func(float64) float64) *tensor.Buffer {
	out := x.Clone()
	switch x.DType() {
	case tensor.Float32:
		data := out.AsFloat32()
		for i, v := range data {
			data[i] = f32(v)
		}
	case tensor.Float64:
		data := out.AsFloat64()
		for i, v := range data {
			data[i] = f64(v)
		}
	}
	return out
}

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.Buffer) *tensor.Buffer {
	return mapUnary(x,
		func(v float32) float32 {
			if v > 0 {
				return v
			}
			return 0
		},
		func(v float64) float64 {
			if v > 0 {
				return v
			}
			return 0
		})
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.Buffer) *tensor.Buffer {
	return mapUnary(x,
		func(v float32) float32 { return 1 / (1 + math32.Exp(-v)) },
		func(v float64) float64 { return 1 / (1 + math.Exp(-v)) })
}

// Tanh applies hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.Buffer) *tensor.Buffer {
	return mapUnary(x, math32.Tanh, math.Tanh)
}

// Exp applies the exponential element-wise.
func (cpu *CPUBackend) Exp(x *tensor.Buffer) *tensor.Buffer {
	return mapUnary(x, math32.Exp, math.Exp)
}

// Log applies the natural logarithm element-wise.
// Input values must be positive.
func (cpu *CPUBackend) Log(x *tensor.Buffer) *tensor.Buffer {
	return mapUnary(x, math32.Log, math.Log)
}
