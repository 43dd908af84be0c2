package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/zoo/internal/tensor"
)

func window(k, s, p int) tensor.Pool2DParams {
	return tensor.Pool2DParams{Kernel: [2]int{k, k}, Stride: [2]int{s, s}, Padding: [2]int{p, p}}
}

func TestMaxPool2D(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 4, 4}, seqValues[float32](16)...)

	output := backend.MaxPool2D(input, window(2, 2, 0))

	require.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{6, 8, 14, 16}, output.AsFloat32())
}

func TestMaxPool2D_PaddingNeverWins(t *testing.T) {
	backend := New()
	input := raw[float64](t, tensor.Shape{1, 1, 2, 2}, -1, -2, -3, -4)

	output := backend.MaxPool2D(input, window(3, 1, 1))

	require.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float64{-1, -1, -1, -1}, output.AsFloat64())
}

func TestMaxPool2D_Overlapping(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 5, 5}, seqValues[float32](25)...)

	output := backend.MaxPool2D(input, window(3, 2, 0))

	require.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{13, 15, 23, 25}, output.AsFloat32())
}

func TestAvgPool2D(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 4, 4}, seqValues[float32](16)...)

	output := backend.AvgPool2D(input, window(2, 2, 0))

	require.Equal(t, tensor.Shape{1, 1, 2, 2}, output.Shape())
	assert.Equal(t, []float32{3.5, 5.5, 11.5, 13.5}, output.AsFloat32())
}

func TestAvgPool2D_PaddingCountsAsZero(t *testing.T) {
	backend := New()
	input := raw[float64](t, tensor.Shape{1, 1, 2, 2}, 1, 1, 1, 1)

	output := backend.AvgPool2D(input, window(3, 1, 1))

	for _, v := range output.AsFloat64() {
		assert.InDelta(t, 4.0/9.0, v, 1e-12)
	}
}

func TestPool2D_PerChannel(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{2, 2, 2, 2}, seqValues[float32](16)...)

	output := backend.MaxPool2D(input, window(2, 2, 0))

	require.Equal(t, tensor.Shape{2, 2, 1, 1}, output.Shape())
	assert.Equal(t, []float32{4, 8, 12, 16}, output.AsFloat32())
}

func TestPool2D_Panics(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 2, 2}, 1, 2, 3, 4)

	assert.Panics(t, func() { backend.MaxPool2D(input, window(3, 1, 0)) })
	assert.Panics(t, func() { backend.AvgPool2D(input, window(2, 0, 0)) })
	assert.Panics(t, func() { backend.MaxPool2D(raw[float32](t, tensor.Shape{4}, 1, 2, 3, 4), window(2, 2, 0)) })
}

func TestPool2D_PaddingNotSmallerThanKernelPanics(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 1, 1}, 1)

	assert.Panics(t, func() { backend.MaxPool2D(input, window(1, 1, 1)) })
	assert.Panics(t, func() { backend.AvgPool2D(input, window(2, 1, 2)) })
}

func TestPool2D_WindowLargerThanPaddedInputPanics(t *testing.T) {
	backend := New()
	input := raw[float32](t, tensor.Shape{1, 1, 2, 2}, 1, 2, 3, 4)

	// (2 + 2*1 - 5) / 2 truncates to 0, which would otherwise yield one
	// partial window.
	assert.Panics(t, func() { backend.MaxPool2D(input, window(5, 2, 1)) })
	assert.Panics(t, func() { backend.AvgPool2D(input, window(5, 3, 1)) })
}
