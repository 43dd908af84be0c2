// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/zoo/backend/cpu"
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
	"github.com/born-ml/zoo/training"
)

type backendT = *cpu.Backend

func mustTensor(t *testing.T, data []float32, shape tensor.Shape) *tensor.Tensor[float32, backendT] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, cpu.New())
	require.NoError(t, err)
	return x
}

func TestLinreg(t *testing.T) {
	x := mustTensor(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	b := mustTensor(t, []float32{0.5}, tensor.Shape{1})

	t.Run("vector weights", func(t *testing.T) {
		w := mustTensor(t, []float32{2, -1}, tensor.Shape{2})
		y := training.Linreg(x, w, b)
		assert.Equal(t, tensor.Shape{3}, y.Shape())
		assert.InDeltaSlice(t, []float32{0.5, 2.5, 4.5}, y.Data(), 1e-6)
	})

	t.Run("matrix weights", func(t *testing.T) {
		w := mustTensor(t, []float32{2, -1}, tensor.Shape{2, 1})
		y := training.Linreg(x, w, b)
		assert.Equal(t, tensor.Shape{3, 1}, y.Shape())
		assert.InDeltaSlice(t, []float32{0.5, 2.5, 4.5}, y.Data(), 1e-6)
	})
}

func TestSquaredLoss(t *testing.T) {
	yHat := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	t.Run("identical is zero", func(t *testing.T) {
		y := mustTensor(t, []float32{1, 2, 3}, tensor.Shape{3})
		loss := training.SquaredLoss(yHat, y)
		assert.Equal(t, tensor.Shape{3, 1}, loss.Shape())
		assert.Equal(t, []float32{0, 0, 0}, loss.Data())
	})

	t.Run("known values", func(t *testing.T) {
		y := mustTensor(t, []float32{0, 4, 3}, tensor.Shape{3})
		loss := training.SquaredLoss(yHat, y)
		assert.InDeltaSlice(t, []float32{0.5, 2, 0}, loss.Data(), 1e-6)
	})
}

func newParam(t *testing.T, name string, value, grad []float32) *nn.Parameter[backendT] {
	t.Helper()
	p := nn.NewParameter(name, mustTensor(t, value, tensor.Shape{len(value)}))
	if grad != nil {
		p.SetGrad(mustTensor(t, grad, tensor.Shape{len(grad)}))
	}
	return p
}

func TestSGD(t *testing.T) {
	w := newParam(t, "w", []float32{1, 2}, []float32{4, -8})
	b := newParam(t, "b", []float32{0}, []float32{2})
	grad := w.Grad()
	storage := w.Tensor()

	err := training.SGD([]*nn.Parameter[backendT]{w, b}, 0.5, 4)
	require.NoError(t, err)

	// p - g*lr/batch with lr/batch = 0.125.
	assert.InDeltaSlice(t, []float32{0.5, 3}, w.Tensor().Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{-0.25}, b.Tensor().Data(), 1e-6)
	assert.Same(t, storage, w.Tensor(), "update happens in place")

	assert.Nil(t, w.Grad())
	assert.Nil(t, b.Grad())
	assert.True(t, grad.Released())
	assert.Panics(t, func() { _ = grad.Data() })
}

func TestSGD_ReleasesViewedGradient(t *testing.T) {
	w := newParam(t, "w", []float32{1, 2}, nil)
	source := mustTensor(t, []float32{2, 2}, tensor.Shape{2, 1})
	w.SetGrad(source.Reshape(2))

	require.NoError(t, training.SGD([]*nn.Parameter[backendT]{w}, 1, 1))

	assert.InDeltaSlice(t, []float32{-1, 0}, w.Tensor().Data(), 1e-6)
	assert.True(t, source.Released())
}

func TestSGDRetainGrad(t *testing.T) {
	w := newParam(t, "w", []float32{1, 2}, []float32{1, 1})

	for range 2 {
		require.NoError(t, training.SGDRetainGrad([]*nn.Parameter[backendT]{w}, 1, 2))
	}

	assert.InDeltaSlice(t, []float32{0, 1}, w.Tensor().Data(), 1e-6)
	require.NotNil(t, w.Grad())
	assert.False(t, w.Grad().Released())
}

func TestSGD_Errors(t *testing.T) {
	tests := []struct {
		name      string
		params    func(t *testing.T) []*nn.Parameter[backendT]
		batchSize int
		errMsg    string
	}{
		{
			name: "missing gradient",
			params: func(t *testing.T) []*nn.Parameter[backendT] {
				return []*nn.Parameter[backendT]{
					newParam(t, "w", []float32{1}, []float32{1}),
					newParam(t, "b", []float32{1}, nil),
				}
			},
			batchSize: 1,
			errMsg:    "parameter 1 (b) has no gradient",
		},
		{
			name: "zero batch size",
			params: func(t *testing.T) []*nn.Parameter[backendT] {
				return []*nn.Parameter[backendT]{newParam(t, "w", []float32{1}, []float32{1})}
			},
			batchSize: 0,
			errMsg:    "batch size must be positive",
		},
		{
			name: "gradient shape mismatch",
			params: func(t *testing.T) []*nn.Parameter[backendT] {
				return []*nn.Parameter[backendT]{newParam(t, "w", []float32{1, 2}, []float32{1})}
			},
			batchSize: 1,
			errMsg:    "has shape (2) but gradient (1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params(t)
			before := params[0].Tensor().Clone().Data()

			err := training.SGD(params, 0.1, tt.batchSize)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			assert.Equal(t, before, params[0].Tensor().Data(), "no parameter is touched")
			if params[0].Grad() != nil {
				assert.False(t, params[0].Grad().Released())
			}
		})
	}
}

func TestAccuracy(t *testing.T) {
	t.Run("one-hot batch", func(t *testing.T) {
		yHat := mustTensor(t, []float32{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
			0, 1, 0,
		}, tensor.Shape{4, 3})
		y := mustTensor(t, []float32{0, 1, 2, 1}, tensor.Shape{4})
		assert.Equal(t, float32(4), training.Accuracy(yHat, y))
	})

	t.Run("scores", func(t *testing.T) {
		yHat := mustTensor(t, []float32{0.1, 0.9, 0.8, 0.2}, tensor.Shape{2, 2})
		y := mustTensor(t, []float32{1, 1}, tensor.Shape{2})
		assert.Equal(t, float32(1), training.Accuracy(yHat, y))
	})

	t.Run("class indices", func(t *testing.T) {
		yHat := mustTensor(t, []float32{2, 0, 1}, tensor.Shape{3, 1})
		y := mustTensor(t, []float32{2, 1, 1}, tensor.Shape{3})
		assert.Equal(t, float32(2), training.Accuracy(yHat, y))
	})
}
