// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package zoo provides reference convolutional network architectures.
//
// Every factory is a pure function of its configuration and the backend and
// returns an *nn.Sequential. Parameters are allocated lazily, so building a
// model is cheap and shape problems surface on the first Forward or
// Initialize call rather than at construction.
//
// All classifiers end in 10 output classes.
//
// Example:
//
//	backend := cpu.New()
//	net := zoo.LeNet(backend)
//	logits := net.Forward(tensor.Randn[float32](tensor.Shape{1, 1, 28, 28}, backend)) // [1, 10]
package zoo

import (
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// NumClasses is the width of every classifier head in the zoo.
const NumClasses = 10

// conv builds a square-kernel convolution with bias.
func conv[B tensor.Backend](backend B, filters, kernel, stride, padding int) *nn.Conv2D[B] {
	return nn.NewConv2D(nn.Conv2DConfig{
		Filters: filters,
		Kernel:  [2]int{kernel, kernel},
		Stride:  [2]int{stride, stride},
		Padding: [2]int{padding, padding},
	}, backend)
}

func maxPool[B tensor.Backend](kernel, stride, padding int) *nn.MaxPool2D[B] {
	return nn.NewMaxPool2D[B](square(kernel, stride, padding))
}

func avgPool[B tensor.Backend](kernel, stride, padding int) *nn.AvgPool2D[B] {
	return nn.NewAvgPool2D[B](square(kernel, stride, padding))
}

func square(kernel, stride, padding int) nn.Pool2DConfig {
	return nn.Pool2DConfig{
		Kernel:  [2]int{kernel, kernel},
		Stride:  [2]int{stride, stride},
		Padding: [2]int{padding, padding},
	}
}

// classifier is the flatten + 4096-relu-dropout ×2 + NumClasses head shared
// by AlexNet and VGG.
func classifier[B tensor.Backend](backend B) []nn.Module[B] {
	return []nn.Module[B]{
		nn.NewFlatten[B](),
		nn.NewLinear(4096, backend),
		nn.NewReLU[B](),
		nn.NewDropout[B](0.5),
		nn.NewLinear(4096, backend),
		nn.NewReLU[B](),
		nn.NewDropout[B](0.5),
		nn.NewLinear(NumClasses, backend),
	}
}
