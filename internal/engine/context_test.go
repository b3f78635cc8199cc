package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/engine"
	"github.com/ember-ml/ember/internal/eval"
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

func TestNew_PrecisionMapping(t *testing.T) {
	ctx, err := engine.New("f", engine.CPUDeviceID, engine.PrecisionFloat)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, ctx.DType())
	assert.True(t, ctx.Device().IsCPU())

	ctx, err = engine.New("d", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, ctx.DType())
}

func TestNew_InvalidPrecision(t *testing.T) {
	for _, precision := range []engine.Precision{"", "float32", "half", "Float"} {
		_, err := engine.New("ctx", engine.CPUDeviceID, precision)
		assert.True(t, errors.Is(err, engine.ErrInvalidPrecision), "precision %q", precision)
	}
}

func TestNew_DeviceMapping(t *testing.T) {
	ctx, err := engine.New("gpu", 2, engine.PrecisionFloat)
	require.NoError(t, err)
	assert.False(t, ctx.Device().IsCPU())
	assert.Equal(t, 2, ctx.Device().Index())
}

func TestEvaluate_ForwardOnly(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	y := b.Scale(x, 3)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	outputs, grads, err := ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, nil)
	require.NoError(t, err)
	assert.Nil(t, grads)
	assert.Equal(t, []float64{3, 6}, outputs[y].AsFloat64())
}

func TestEvaluate_OnesSeededGradients(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	y := b.Scale(x, 3)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	outputs, grads, err := ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, []*graph.Variable{x})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, outputs[y].AsFloat64())
	assert.Equal(t, []float64{3, 3}, grads[x].AsFloat64())
}

func TestEvaluate_EnforcesContextPrecision(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	y := b.Scale(x, 3)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	// A double-precision context rejects float32 bindings outright.
	input, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	outputs, grads, err := ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, []*graph.Variable{x})
	assert.True(t, errors.Is(err, eval.ErrShapeMismatch))
	assert.Nil(t, outputs)
	assert.Nil(t, grads)
}

func TestEvaluate_EnforcesContextPrecision_Float(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	y := b.Scale(x, 3)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionFloat)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	_, _, err = ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, nil)
	assert.True(t, errors.Is(err, eval.ErrShapeMismatch))

	input, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	outputs, _, err := ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, outputs[y].DType())
}

func TestEvaluate_DisjointKeys(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	u := b.Input("u", tensor.Shape{2})
	y := b.Scale(x, 3)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, tensor.CPUDevice())
	require.NoError(t, err)

	// u is a graph input but not an input key of this call.
	_, _, err = ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, []*graph.Variable{u})
	assert.True(t, errors.Is(err, engine.ErrDisjointKeys))
}

func TestEvaluate_ParameterGradientTarget(t *testing.T) {
	w, err := tensor.FromSlice([]float64{2, 0, 0, 2}, tensor.Shape{2, 2}, tensor.CPUDevice())
	require.NoError(t, err)

	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{1, 2})
	param := b.Parameter("w", w)
	y := b.MatMul(x, param)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	input, err := tensor.FromSlice([]float64{1, 1}, tensor.Shape{1, 2}, tensor.CPUDevice())
	require.NoError(t, err)

	// A parameter is a valid gradient target without being an input key.
	_, grads, err := ctx.Evaluate([]*graph.Variable{y},
		map[*graph.Variable]*tensor.Buffer{x: input}, []*graph.Variable{param})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 1}, grads[param].AsFloat64())
}

func TestEvaluate_ReusesCachedGraph(t *testing.T) {
	b := graph.NewBuilder()
	x := b.Input("x", tensor.Shape{2})
	y := b.Scale(x, 2)
	require.NoError(t, b.Err())

	ctx, err := engine.New("ctx", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		input, err := tensor.FromSlice([]float64{float64(i), 1}, tensor.Shape{2}, tensor.CPUDevice())
		require.NoError(t, err)
		outputs, _, err := ctx.Evaluate([]*graph.Variable{y},
			map[*graph.Variable]*tensor.Buffer{x: input}, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{float64(2 * i), 2}, outputs[y].AsFloat64())
	}
}
