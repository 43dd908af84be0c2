// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/born-ml/zoo/tensor"
)

// L2Loss is the mean over samples of mean((label - prediction)^2) / 2.
//
// Labels are reshaped to the prediction shape, so [N] labels pair with
// [N, 1] predictions.
type L2Loss[B tensor.Backend] struct {
	name    string
	sum     float64
	samples int
}

// Compile-time check that L2Loss implements TrainingMetrics.
var _ TrainingMetrics[tensor.Backend] = (*L2Loss[tensor.Backend])(nil)

// NewL2Loss creates an L2 loss metric. An empty name defaults to "L2Loss".
func NewL2Loss[B tensor.Backend](name string) *L2Loss[B] {
	if name == "" {
		name = "L2Loss"
	}
	return &L2Loss[B]{name: name}
}

// Name returns the metric name.
func (l *L2Loss[B]) Name() string {
	return l.name
}

// Update accumulates per-sample losses and returns the batch mean loss as a
// 0-D tensor.
func (l *L2Loss[B]) Update(labels, predictions []*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if err := pairs(labels, predictions); err != nil {
		return nil, err
	}

	var sum float64
	var samples int
	for i := range labels {
		label, prediction := labels[i], predictions[i]
		if err := CheckLabelShapes(label.Shape(), prediction.Shape(), true); err != nil {
			return nil, err
		}
		if label.NumElements() != prediction.NumElements() {
			return nil, CheckLabelShapes(label.Shape(), prediction.Shape(), false)
		}

		batch := prediction.Shape()[0]
		diff := prediction.Reshape(batch, -1).Sub(label.Reshape(batch, -1))
		perSample := diff.Mul(diff).MeanDim(1, false).MulScalar(0.5)

		sum += float64(perSample.Sum().Item())
		samples += batch
	}

	l.sum += sum
	l.samples += samples
	return tensor.Scalar(float32(sum/float64(samples)), labels[0].Backend()), nil
}

// Reset clears the accumulated loss.
func (l *L2Loss[B]) Reset() {
	l.sum, l.samples = 0, 0
}

// Metric returns the name and the mean loss per sample, or NaN before any update.
func (l *L2Loss[B]) Metric() (string, float32) {
	return l.name, ratio(l.sum, l.samples)
}

// Duplicate returns a fresh L2Loss with the same name.
func (l *L2Loss[B]) Duplicate() TrainingMetrics[B] {
	return NewL2Loss[B](l.name)
}
