// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// NiNBlock builds a network-in-network block: a kernel×kernel convolution
// followed by two 1x1 convolutions, each with relu.
func NiNBlock[B tensor.Backend](backend B, channels, kernel, stride, padding int) *nn.Sequential[B] {
	return nn.NewSequential[B](
		conv(backend, channels, kernel, stride, padding),
		nn.NewReLU[B](),
		conv(backend, channels, 1, 1, 0),
		nn.NewReLU[B](),
		conv(backend, channels, 1, 1, 0),
		nn.NewReLU[B](),
	)
}

// NiN builds Network in Network. The last block emits one channel per class
// and global average pooling replaces the dense head.
//
// Expects [N, C, 224, 224] inputs.
func NiN[B tensor.Backend](backend B) *nn.Sequential[B] {
	return nn.NewSequential[B](
		NiNBlock(backend, 96, 11, 4, 0),
		maxPool[B](3, 2, 0),
		NiNBlock(backend, 256, 5, 1, 2),
		maxPool[B](3, 2, 0),
		NiNBlock(backend, 384, 3, 1, 1),
		maxPool[B](3, 2, 0),
		nn.NewDropout[B](0.5),
		NiNBlock(backend, NumClasses, 3, 1, 1),
		nn.NewGlobalAvgPool2D[B](),
		nn.NewFlatten[B](),
	)
}
