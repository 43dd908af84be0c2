// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package training provides small helpers for hand-written training loops:
// a linear regression model, the squared loss, minibatch SGD updates and a
// classification accuracy count.
//
// Gradients are not computed here. Callers attach them to parameters with
// nn.Parameter.SetGrad before calling SGD.
//
// Example:
//
//	w := nn.NewParameter("w", tensor.Randn[float32](tensor.Shape{2}, backend))
//	b := nn.NewParameter("b", tensor.Zeros[float32](tensor.Shape{1}, backend))
//	yHat := training.Linreg(x, w.Tensor(), b.Tensor())
//	loss := training.SquaredLoss(yHat, y)
//	// ... compute gradients, w.SetGrad(gw), b.SetGrad(gb) ...
//	err := training.SGD([]*nn.Parameter[B]{w, b}, 0.03, batchSize)
package training

import (
	"github.com/pkg/errors"

	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// Linreg computes x·w + b.
//
// x is [N, F]. w is [F] or [F, K]; a rank-1 w yields a rank-1 result of
// length N. b broadcasts against the product.
func Linreg[B tensor.Backend](x, w, b *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if w.Shape().Rank() == 1 {
		out := x.MatMul(w.Reshape(-1, 1))
		return out.Reshape(-1).Add(b)
	}
	return x.MatMul(w).Add(b)
}

// SquaredLoss computes (yHat - y)² / 2 element-wise.
// y is reshaped to yHat's shape first, so [N] labels pair with [N, 1]
// predictions.
func SquaredLoss[B tensor.Backend](yHat, y *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := yHat.Sub(y.Reshape(yHat.Shape()...))
	return diff.Mul(diff).MulScalar(0.5)
}

// SGD applies one minibatch stochastic gradient descent step in place:
//
//	p ← p − grad·lr/batchSize
//
// Each gradient is released after use. Nothing is updated when any parameter
// lacks a gradient or batchSize is not positive.
func SGD[B tensor.Backend](params []*nn.Parameter[B], lr float32, batchSize int) error {
	if err := step(params, lr, batchSize); err != nil {
		return err
	}
	for _, p := range params {
		p.ReleaseGrad()
	}
	return nil
}

// SGDRetainGrad is SGD without releasing the gradients.
func SGDRetainGrad[B tensor.Backend](params []*nn.Parameter[B], lr float32, batchSize int) error {
	return step(params, lr, batchSize)
}

func step[B tensor.Backend](params []*nn.Parameter[B], lr float32, batchSize int) error {
	if batchSize <= 0 {
		return errors.Errorf("sgd: batch size must be positive, got %d", batchSize)
	}
	for i, p := range params {
		grad := p.Grad()
		if grad == nil {
			return errors.Errorf("sgd: parameter %d (%s) has no gradient", i, p.Name())
		}
		if !grad.Shape().Equal(p.Tensor().Shape()) {
			return errors.Errorf("sgd: parameter %d (%s) has shape %v but gradient %v",
				i, p.Name(), p.Tensor().Shape(), grad.Shape())
		}
	}

	scale := float64(lr) / float64(batchSize)
	for _, p := range params {
		value := p.Tensor()
		value.CopyFrom(value.Sub(p.Grad().MulScalar(scale)))
	}
	return nil
}

// Accuracy returns the number of rows of yHat whose predicted class equals y.
//
// When yHat has more than one column the class is its argmax along axis 1;
// otherwise yHat already holds class indices. The count is not divided by
// the batch size.
func Accuracy[B tensor.Backend](yHat, y *tensor.Tensor[float32, B]) float32 {
	var predicted *tensor.Tensor[int32, B]
	if shape := yHat.Shape(); shape.Rank() > 1 && shape[1] > 1 {
		predicted = yHat.Argmax(1)
	} else {
		predicted = yHat.Int32()
	}

	labels := y.Int32().Reshape(predicted.Shape()...)
	return float32(predicted.Equal(labels).Int32().Sum().Item())
}
