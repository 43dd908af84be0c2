// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics accumulates training metrics over batches.
//
// A metric is created once per run, updated once per batch, read with Metric
// and cleared with Reset between epochs:
//
//	acc := metrics.NewAccuracy[*cpu.Backend]("")
//	for _, batch := range batches {
//	    if _, err := acc.Update(batch.Labels, batch.Predictions); err != nil {
//	        return err
//	    }
//	}
//	name, value := acc.Metric()
package metrics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/tensor"
)

// ErrLabelShape is wrapped by every label/prediction shape mismatch.
var ErrLabelShape = errors.New("label shape mismatch")

// TrainingMetrics is the contract shared by every metric.
//
// Update consumes aligned lists of label and prediction tensors, one pair
// per output of the network, and returns a per-variant batch value.
// Metric reports the accumulated value; before the first Update it is NaN.
// Duplicate returns an independent metric with the same name and zeroed
// accumulators.
type TrainingMetrics[B tensor.Backend] interface {
	Name() string
	Update(labels, predictions []*tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error)
	Reset()
	Metric() (string, float32)
	Duplicate() TrainingMetrics[B]
}

// CheckLabelShapes verifies that labels and predictions agree on the batch
// axis and, unless checkDimOnly is set, on the whole shape.
// Errors wrap ErrLabelShape.
func CheckLabelShapes(labels, predictions tensor.Shape, checkDimOnly bool) error {
	if len(labels) == 0 || len(predictions) == 0 {
		return errors.Wrapf(ErrLabelShape, "labels%v and predictions%v need a batch axis", labels, predictions)
	}
	if labels[0] != predictions[0] {
		return errors.Wrapf(ErrLabelShape, "the size of labels(%d) does not match that of predictions(%d)",
			labels[0], predictions[0])
	}
	if !checkDimOnly && !labels.Equal(predictions) {
		return errors.Wrapf(ErrLabelShape, "the shape of labels%v does not match that of predictions%v",
			labels, predictions)
	}
	return nil
}

// pairs validates that labels and predictions line up one to one.
func pairs[B tensor.Backend](labels, predictions []*tensor.Tensor[float32, B]) error {
	if len(labels) == 0 {
		return errors.New("no labels given")
	}
	if len(labels) != len(predictions) {
		return errors.Errorf("got %d label tensors for %d prediction tensors", len(labels), len(predictions))
	}
	return nil
}

// ratio returns num/den, or NaN when nothing has been accumulated.
func ratio(num float64, den int) float32 {
	if den == 0 {
		return float32(math.NaN())
	}
	return float32(num / float64(den))
}
