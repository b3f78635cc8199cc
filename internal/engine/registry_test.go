package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/engine"
)

func TestRegistry_Get_LazyDefault(t *testing.T) {
	r := engine.NewRegistry()

	ctx, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultHandle, ctx.Name())
	assert.Equal(t, engine.PrecisionFloat, ctx.Precision())
	assert.True(t, ctx.Device().IsCPU())

	again, err := r.Get(engine.DefaultHandle)
	require.NoError(t, err)
	assert.Same(t, ctx, again)
}

func TestRegistry_Open_HandleInUse(t *testing.T) {
	r := engine.NewRegistry()

	_, err := r.Open("train", engine.CPUDeviceID, engine.PrecisionDouble)
	require.NoError(t, err)

	_, err = r.Open("train", engine.CPUDeviceID, engine.PrecisionFloat)
	assert.True(t, errors.Is(err, engine.ErrHandleInUse))
}

func TestRegistry_Open_InvalidPrecisionNotRegistered(t *testing.T) {
	r := engine.NewRegistry()

	_, err := r.Open("bad", engine.CPUDeviceID, "half")
	require.True(t, errors.Is(err, engine.ErrInvalidPrecision))
	assert.Empty(t, r.Handles())
}

func TestRegistry_NewContext_UniqueHandles(t *testing.T) {
	r := engine.NewRegistry()

	a, err := r.NewContext(engine.CPUDeviceID, engine.PrecisionFloat)
	require.NoError(t, err)
	b, err := r.NewContext(engine.CPUDeviceID, engine.PrecisionFloat)
	require.NoError(t, err)

	assert.NotEqual(t, a.Name(), b.Name())
	assert.Len(t, r.Handles(), 2)
}

func TestRegistry_Release(t *testing.T) {
	r := engine.NewRegistry()

	_, err := r.Open("scratch", engine.CPUDeviceID, engine.PrecisionFloat)
	require.NoError(t, err)

	r.Release("scratch")
	r.Release("scratch") // unknown handle is a no-op
	assert.Empty(t, r.Handles())
}

func TestRegistry_Handles_Sorted(t *testing.T) {
	r := engine.NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		_, err := r.Open(name, engine.CPUDeviceID, engine.PrecisionFloat)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a", "b", "c"}, r.Handles())
}

func TestRegistry_With_DeregistersOnError(t *testing.T) {
	r := engine.NewRegistry()
	boom := errors.New("boom")

	err := r.With("scoped", engine.CPUDeviceID, engine.PrecisionDouble, func(ctx *engine.ExecutionContext) error {
		assert.Equal(t, []string{"scoped"}, r.Handles())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.Handles())
}
