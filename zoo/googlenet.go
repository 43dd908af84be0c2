// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// Inception builds an inception block with four parallel paths whose outputs
// are concatenated on the channel axis:
//
//	path 1: 1x1 conv (c1)
//	path 2: 1x1 conv (c2[0]) -> 3x3/p1 conv (c2[1])
//	path 3: 1x1 conv (c3[0]) -> 5x5/p2 conv (c3[1])
//	path 4: 3x3/1/p1 max pool -> 1x1 conv (c4)
//
// Every convolution is followed by relu. Height and width are preserved and
// the block emits c1 + c2[1] + c3[1] + c4 channels.
func Inception[B tensor.Backend](backend B, c1 int, c2, c3 [2]int, c4 int) *nn.Parallel[B] {
	p1 := nn.NewSequential[B](
		conv(backend, c1, 1, 1, 0),
		nn.NewReLU[B](),
	)
	p2 := nn.NewSequential[B](
		conv(backend, c2[0], 1, 1, 0),
		nn.NewReLU[B](),
		conv(backend, c2[1], 3, 1, 1),
		nn.NewReLU[B](),
	)
	p3 := nn.NewSequential[B](
		conv(backend, c3[0], 1, 1, 0),
		nn.NewReLU[B](),
		conv(backend, c3[1], 5, 1, 2),
		nn.NewReLU[B](),
	)
	p4 := nn.NewSequential[B](
		maxPool[B](3, 1, 1),
		conv(backend, c4, 1, 1, 0),
		nn.NewReLU[B](),
	)

	return nn.NewConcat[B](1, p1, p2, p3, p4)
}

// GoogLeNet builds GoogLeNet as five sequential stages and a linear head.
//
// Expects [N, C, 96, 96] inputs; stage 5 ends at [N, 1024, 1, 1].
func GoogLeNet[B tensor.Backend](backend B) *nn.Sequential[B] {
	stage1 := nn.NewSequential[B](
		conv(backend, 64, 7, 2, 3),
		nn.NewReLU[B](),
		maxPool[B](3, 2, 1),
	)

	stage2 := nn.NewSequential[B](
		conv(backend, 64, 1, 1, 0),
		nn.NewReLU[B](),
		conv(backend, 192, 3, 1, 1),
		nn.NewReLU[B](),
		maxPool[B](3, 2, 1),
	)

	stage3 := nn.NewSequential[B](
		Inception(backend, 64, [2]int{96, 128}, [2]int{16, 32}, 32),
		Inception(backend, 128, [2]int{128, 192}, [2]int{32, 96}, 64),
		maxPool[B](3, 2, 1),
	)

	stage4 := nn.NewSequential[B](
		Inception(backend, 192, [2]int{96, 208}, [2]int{16, 48}, 64),
		Inception(backend, 160, [2]int{112, 224}, [2]int{24, 64}, 64),
		Inception(backend, 128, [2]int{128, 256}, [2]int{24, 64}, 64),
		Inception(backend, 112, [2]int{144, 288}, [2]int{32, 64}, 64),
		Inception(backend, 256, [2]int{160, 320}, [2]int{32, 128}, 128),
		maxPool[B](3, 2, 1),
	)

	stage5 := nn.NewSequential[B](
		Inception(backend, 256, [2]int{160, 320}, [2]int{32, 128}, 128),
		Inception(backend, 384, [2]int{192, 384}, [2]int{48, 128}, 128),
		nn.NewGlobalAvgPool2D[B](),
	)

	return nn.NewSequential[B](
		stage1,
		stage2,
		stage3,
		stage4,
		stage5,
		nn.NewLinear(NumClasses, backend),
	)
}
