package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/zoo/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := New()

	out := backend.Sum(raw[float32](t, tensor.Shape{2, 2}, 1, 2, 3, 4))
	assert.Equal(t, tensor.Shape{}, out.Shape())
	assert.Equal(t, []float32{10}, out.AsFloat32())

	assert.Equal(t, []int32{-2}, backend.Sum(raw[int32](t, tensor.Shape{3}, 1, -4, 1)).AsInt32())
	assert.Panics(t, func() { backend.Sum(raw[bool](t, tensor.Shape{1}, true)) })
}

func TestMeanDim(t *testing.T) {
	backend := New()
	x := raw[float64](t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	rows := backend.MeanDim(x, -1, false)
	assert.Equal(t, tensor.Shape{2}, rows.Shape())
	assert.Equal(t, []float64{2, 5}, rows.AsFloat64())

	cols := backend.MeanDim(x, 0, true)
	assert.Equal(t, tensor.Shape{1, 3}, cols.Shape())
	assert.Equal(t, []float64{2.5, 3.5, 4.5}, cols.AsFloat64())

	assert.Panics(t, func() { backend.MeanDim(x, 2, false) })
}

func TestArgmax(t *testing.T) {
	backend := New()
	x := raw[float32](t, tensor.Shape{2, 3}, 1, 5, 2, 7, 0, 7)

	byRow := backend.Argmax(x, 1)
	assert.Equal(t, tensor.Int32, byRow.DType())
	assert.Equal(t, tensor.Shape{2}, byRow.Shape())
	// Ties resolve to the first index.
	assert.Equal(t, []int32{1, 0}, byRow.AsInt32())

	byCol := backend.Argmax(x, 0)
	assert.Equal(t, []int32{1, 0, 1}, byCol.AsInt32())
}
