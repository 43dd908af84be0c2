// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metrics_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/zoo/backend/cpu"
	"github.com/born-ml/zoo/metrics"
	"github.com/born-ml/zoo/tensor"
)

type backendT = *cpu.Backend

type batch = []*tensor.Tensor[float32, backendT]

func mustTensor(t *testing.T, data []float32, shape tensor.Shape) *tensor.Tensor[float32, backendT] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape, cpu.New())
	require.NoError(t, err)
	return x
}

func TestCheckLabelShapes(t *testing.T) {
	tests := []struct {
		name         string
		labels       tensor.Shape
		predictions  tensor.Shape
		checkDimOnly bool
		wantErr      bool
	}{
		{"batch mismatch", tensor.Shape{4}, tensor.Shape{3, 10}, true, true},
		{"batch mismatch strict", tensor.Shape{4}, tensor.Shape{3}, false, true},
		{"trailing dims ignored", tensor.Shape{4}, tensor.Shape{4, 10}, true, false},
		{"trailing dims strict", tensor.Shape{4}, tensor.Shape{4, 10}, false, true},
		{"equal strict", tensor.Shape{4, 2}, tensor.Shape{4, 2}, false, false},
		{"no batch axis", tensor.Shape{}, tensor.Shape{4}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := metrics.CheckLabelShapes(tt.labels, tt.predictions, tt.checkDimOnly)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, metrics.ErrLabelShape))
		})
	}
}

func TestCheckLabelShapes_Message(t *testing.T) {
	err := metrics.CheckLabelShapes(tensor.Shape{4}, tensor.Shape{3, 10}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the size of labels(4) does not match that of predictions(3)")
}

func TestAccuracy(t *testing.T) {
	acc := metrics.NewAccuracy[backendT]("")
	assert.Equal(t, "Accuracy", acc.Name())

	name, value := acc.Metric()
	assert.Equal(t, "Accuracy", name)
	assert.True(t, math.IsNaN(float64(value)), "NaN before any update")

	labels := mustTensor(t, []float32{0, 2, 1}, tensor.Shape{3})
	predictions := mustTensor(t, []float32{
		0.9, 0.05, 0.05,
		0.1, 0.2, 0.7,
		0.6, 0.3, 0.1, // wrong
	}, tensor.Shape{3, 3})

	correct, err := acc.Update(batch{labels}, batch{predictions})
	require.NoError(t, err)
	assert.Equal(t, float32(2), correct.Item())

	_, value = acc.Metric()
	assert.InDelta(t, 2.0/3.0, value, 1e-6)

	acc.Reset()
	_, value = acc.Metric()
	assert.True(t, math.IsNaN(float64(value)))
}

func TestAccuracy_ClassIndexPredictions(t *testing.T) {
	acc := metrics.NewAccuracy[backendT]("acc")

	_, err := acc.Update(
		batch{mustTensor(t, []float32{1, 0, 3, 3}, tensor.Shape{4})},
		batch{mustTensor(t, []float32{1, 0, 3, 2}, tensor.Shape{4, 1})},
	)
	require.NoError(t, err)

	name, value := acc.Metric()
	assert.Equal(t, "acc", name)
	assert.InDelta(t, 0.75, value, 1e-6)
}

func TestAccuracy_Errors(t *testing.T) {
	acc := metrics.NewAccuracy[backendT]("")

	_, err := acc.Update(
		batch{mustTensor(t, []float32{0, 1}, tensor.Shape{2})},
		batch{mustTensor(t, make([]float32, 9), tensor.Shape{3, 3})},
	)
	require.ErrorIs(t, err, metrics.ErrLabelShape)

	_, err = acc.Update(batch{}, batch{})
	require.Error(t, err)

	_, value := acc.Metric()
	assert.True(t, math.IsNaN(float64(value)), "failed updates leave state untouched")
}

func TestL2Loss(t *testing.T) {
	loss := metrics.NewL2Loss[backendT]("")

	labels := mustTensor(t, []float32{1, 2}, tensor.Shape{2})
	predictions := mustTensor(t, []float32{2, 0}, tensor.Shape{2, 1})

	batchLoss, err := loss.Update(batch{labels}, batch{predictions})
	require.NoError(t, err)
	// Per-sample: (1)^2/2 = 0.5 and (2)^2/2 = 2.
	assert.InDelta(t, 1.25, batchLoss.Item(), 1e-6)

	_, err = loss.Update(
		batch{mustTensor(t, []float32{0}, tensor.Shape{1})},
		batch{mustTensor(t, []float32{0}, tensor.Shape{1})},
	)
	require.NoError(t, err)

	name, value := loss.Metric()
	assert.Equal(t, "L2Loss", name)
	assert.InDelta(t, 2.5/3.0, value, 1e-6)
}

func TestL2Loss_Errors(t *testing.T) {
	loss := metrics.NewL2Loss[backendT]("")

	_, err := loss.Update(
		batch{mustTensor(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})},
		batch{mustTensor(t, []float32{1, 2}, tensor.Shape{2})},
	)
	require.ErrorIs(t, err, metrics.ErrLabelShape)

	_, err = loss.Update(batch{mustTensor(t, []float32{1}, tensor.Shape{1})}, batch{})
	require.Error(t, err)
}

func TestDuplicate_IsIndependent(t *testing.T) {
	variants := []metrics.TrainingMetrics[backendT]{
		metrics.NewAccuracy[backendT]("train-acc"),
		metrics.NewL2Loss[backendT]("train-loss"),
	}

	for _, m := range variants {
		t.Run(m.Name(), func(t *testing.T) {
			_, err := m.Update(
				batch{mustTensor(t, []float32{1, 0}, tensor.Shape{2})},
				batch{mustTensor(t, []float32{1, 0.4}, tensor.Shape{2, 1})},
			)
			require.NoError(t, err)
			_, before := m.Metric()

			dup := m.Duplicate()
			assert.Equal(t, m.Name(), dup.Name())
			_, fresh := dup.Metric()
			assert.True(t, math.IsNaN(float64(fresh)), "duplicate starts empty")

			_, err = dup.Update(
				batch{mustTensor(t, []float32{0, 0}, tensor.Shape{2})},
				batch{mustTensor(t, []float32{3, 2}, tensor.Shape{2, 1})},
			)
			require.NoError(t, err)
			dup.Reset()

			_, after := m.Metric()
			assert.Equal(t, before, after)
		})
	}
}
