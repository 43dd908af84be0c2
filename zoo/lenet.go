// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// LeNet builds LeNet-5 with sigmoid activations and average pooling.
//
// Expects [N, 1, 28, 28] inputs:
//
//	conv 5x5/p2 (6, no bias) -> sigmoid -> avgpool 5/2/p2   [N, 6, 14, 14]
//	conv 5x5 (16)            -> sigmoid -> avgpool 5/2/p2   [N, 16, 5, 5]
//	flatten -> linear 120 -> sigmoid -> linear 84 -> sigmoid -> linear 10
func LeNet[B tensor.Backend](backend B) *nn.Sequential[B] {
	return nn.NewSequential[B](
		nn.NewConv2D(nn.Conv2DConfig{
			Filters: 6,
			Kernel:  [2]int{5, 5},
			Padding: [2]int{2, 2},
			NoBias:  true,
		}, backend),
		nn.NewSigmoid[B](),
		avgPool[B](5, 2, 2),
		conv(backend, 16, 5, 1, 0),
		nn.NewSigmoid[B](),
		avgPool[B](5, 2, 2),
		nn.NewFlatten[B](),
		nn.NewLinear(120, backend),
		nn.NewSigmoid[B](),
		nn.NewLinear(84, backend),
		nn.NewSigmoid[B](),
		nn.NewLinear(NumClasses, backend),
	)
}
