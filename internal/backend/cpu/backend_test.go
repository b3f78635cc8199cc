package cpu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/backend/cpu"
	"github.com/ember-ml/ember/internal/tensor"
)

func fromF32(t *testing.T, data []float32, shape tensor.Shape) *tensor.Buffer {
	t.Helper()
	b, err := tensor.FromSlice(data, shape, tensor.CPUDevice())
	require.NoError(t, err)
	return b
}

func fromF64(t *testing.T, data []float64, shape tensor.Shape) *tensor.Buffer {
	t.Helper()
	b, err := tensor.FromSlice(data, shape, tensor.CPUDevice())
	require.NoError(t, err)
	return b
}

func TestBackend_Metadata(t *testing.T) {
	backend := cpu.New()
	assert.Equal(t, "CPU", backend.Name())
	assert.True(t, backend.Device().IsCPU())
}

func TestBackend_BinaryOps_Float32(t *testing.T) {
	backend := cpu.New()
	a := fromF32(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := fromF32(t, []float32{4, 5, 6}, tensor.Shape{3})

	assert.Equal(t, []float32{5, 7, 9}, backend.Add(a, b).AsFloat32())
	assert.Equal(t, []float32{-3, -3, -3}, backend.Sub(a, b).AsFloat32())
	assert.Equal(t, []float32{4, 10, 18}, backend.Mul(a, b).AsFloat32())
	assert.Equal(t, []float32{0.25, 0.4, 0.5}, backend.Div(a, b).AsFloat32())
}

func TestBackend_BinaryOps_Float64(t *testing.T) {
	backend := cpu.New()
	a := fromF64(t, []float64{2, 4}, tensor.Shape{2})
	b := fromF64(t, []float64{1, 2}, tensor.Shape{2})

	assert.Equal(t, []float64{3, 6}, backend.Add(a, b).AsFloat64())
	assert.Equal(t, []float64{2, 8}, backend.Mul(a, b).AsFloat64())
	assert.Equal(t, []float64{2, 2}, backend.Div(a, b).AsFloat64())
}

func TestBackend_BinaryOps_DoNotMutateOperands(t *testing.T) {
	backend := cpu.New()
	a := fromF32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromF32(t, []float32{3, 4}, tensor.Shape{2})

	_ = backend.Add(a, b)
	assert.Equal(t, []float32{1, 2}, a.AsFloat32())
	assert.Equal(t, []float32{3, 4}, b.AsFloat32())
}

func TestBackend_ShapeMismatchPanics(t *testing.T) {
	backend := cpu.New()
	a := fromF32(t, []float32{1, 2}, tensor.Shape{2})
	b := fromF32(t, []float32{1, 2, 3}, tensor.Shape{3})

	assert.Panics(t, func() { backend.Add(a, b) })
}

func TestBackend_ScalarOps(t *testing.T) {
	backend := cpu.New()
	x := fromF32(t, []float32{1, 2, 3}, tensor.Shape{3})

	assert.Equal(t, []float32{2, 4, 6}, backend.Scale(x, 2).AsFloat32())
	assert.Equal(t, []float32{2, 3, 4}, backend.AddScalar(x, 1).AsFloat32())

	y := fromF64(t, []float64{1, 2}, tensor.Shape{2})
	assert.Equal(t, []float64{-1, -2}, backend.Scale(y, -1).AsFloat64())
}

func TestBackend_UnaryMath(t *testing.T) {
	backend := cpu.New()
	x := fromF64(t, []float64{-1, 0, 2}, tensor.Shape{3})

	assert.Equal(t, []float64{0, 0, 2}, backend.ReLU(x).AsFloat64())

	sig := backend.Sigmoid(fromF64(t, []float64{0}, tensor.Shape{1})).AsFloat64()
	assert.InDelta(t, 0.5, sig[0], 1e-12)

	tanh := backend.Tanh(fromF64(t, []float64{0}, tensor.Shape{1})).AsFloat64()
	assert.InDelta(t, 0.0, tanh[0], 1e-12)

	exp := backend.Exp(fromF64(t, []float64{0, 1}, tensor.Shape{2})).AsFloat64()
	assert.InDelta(t, 1.0, exp[0], 1e-12)
	assert.InDelta(t, 2.718281828459045, exp[1], 1e-12)

	log := backend.Log(fromF64(t, []float64{1, 2.718281828459045}, tensor.Shape{2})).AsFloat64()
	assert.InDelta(t, 0.0, log[0], 1e-12)
	assert.InDelta(t, 1.0, log[1], 1e-12)
}

func TestBackend_UnaryMath_Float32(t *testing.T) {
	backend := cpu.New()

	sig := backend.Sigmoid(fromF32(t, []float32{0}, tensor.Shape{1})).AsFloat32()
	assert.InDelta(t, 0.5, sig[0], 1e-6)

	exp := backend.Exp(fromF32(t, []float32{1}, tensor.Shape{1})).AsFloat32()
	assert.InDelta(t, 2.7182817, exp[0], 1e-5)
}

func TestBackend_MatMul(t *testing.T) {
	backend := cpu.New()
	// [2, 3] @ [3, 2] -> [2, 2]
	a := fromF32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := fromF32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	out := backend.MatMul(a, b)
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{58, 64, 139, 154}, out.AsFloat32())
}

func TestBackend_MatMul_InnerDimMismatchPanics(t *testing.T) {
	backend := cpu.New()
	a := fromF32(t, []float32{1, 2}, tensor.Shape{1, 2})
	b := fromF32(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	assert.Panics(t, func() { backend.MatMul(a, b) })
}

func TestBackend_Transpose2D(t *testing.T) {
	backend := cpu.New()
	x := fromF64(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	out := backend.Transpose2D(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, out.AsFloat64())
}

func TestBackend_Accumulate(t *testing.T) {
	backend := cpu.New()
	dst := fromF32(t, []float32{1, 2}, tensor.Shape{2})
	src := fromF32(t, []float32{10, 20}, tensor.Shape{2})

	backend.Accumulate(dst, src)
	assert.Equal(t, []float32{11, 22}, dst.AsFloat32())
	assert.Equal(t, []float32{10, 20}, src.AsFloat32())
}
