// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package metrics

import (
	"github.com/born-ml/zoo/tensor"
)

// Accuracy is the fraction of samples whose predicted class matches the label.
//
// Predictions of shape [N, classes] are reduced with argmax along axis 1;
// rank-1 or single-column predictions are taken as class indices directly.
// Labels hold class indices and must match the batch size.
type Accuracy[B tensor.Backend] struct {
	name    string
	correct int
	total   int
}

// Compile-time check that Accuracy implements TrainingMetrics.
var _ TrainingMetrics[tensor.Backend] = (*Accuracy[tensor.Backend])(nil)

// NewAccuracy creates an accuracy metric. An empty name defaults to "Accuracy".
func NewAccuracy[B tensor.Backend](name string) *Accuracy[B] {
	if name == "" {
		name = "Accuracy"
	}
	return &Accuracy[B]{name: name}
}

// Name returns the metric name.
func (a *Accuracy[B]) Name() string {
	return a.name
}

// Update accumulates correct and total counts and returns the number of
// correct predictions in this batch as a 0-D tensor.
func (a *Accuracy[B]) Update(labels, predictions []*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if err := pairs(labels, predictions); err != nil {
		return nil, err
	}

	var correct, total int
	for i := range labels {
		c, n, err := a.count(labels[i], predictions[i])
		if err != nil {
			return nil, err
		}
		correct += c
		total += n
	}

	a.correct += correct
	a.total += total
	return tensor.Scalar(float32(correct), labels[0].Backend()), nil
}

func (a *Accuracy[B]) count(label, prediction *tensor.Tensor[float32, B]) (int, int, error) {
	if err := CheckLabelShapes(label.Shape(), prediction.Shape(), true); err != nil {
		return 0, 0, err
	}

	batch := prediction.Shape()[0]
	var predicted *tensor.Tensor[int32, B]
	if shape := prediction.Shape(); len(shape) > 1 && shape[1] > 1 {
		predicted = prediction.Argmax(1)
	} else {
		predicted = prediction.Int32()
	}

	if label.NumElements() != predicted.NumElements() {
		return 0, 0, CheckLabelShapes(label.Shape(), predicted.Shape(), false)
	}

	matches := predicted.Reshape(batch, -1).Equal(label.Int32().Reshape(batch, -1))
	return int(matches.Int32().Sum().Item()), batch, nil
}

// Reset clears the accumulated counts.
func (a *Accuracy[B]) Reset() {
	a.correct, a.total = 0, 0
}

// Metric returns the name and correct/total, or NaN before any update.
func (a *Accuracy[B]) Metric() (string, float32) {
	return a.name, ratio(float64(a.correct), a.total)
}

// Duplicate returns a fresh Accuracy with the same name.
func (a *Accuracy[B]) Duplicate() TrainingMetrics[B] {
	return NewAccuracy[B](a.name)
}
