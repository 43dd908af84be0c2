// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"fmt"

	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// ConvBlock is one VGG stage: NumConvs 3x3 convolutions with Channels filters
// each, followed by a 2x2 max pool.
type ConvBlock struct {
	NumConvs int
	Channels int
}

// VGG11 is the eight-convolution architecture from the VGG paper.
var VGG11 = []ConvBlock{{1, 64}, {1, 128}, {2, 256}, {2, 512}, {2, 512}}

// VGGBlock builds numConvs × (3x3/p1 conv + relu) followed by a 2x2/2 max pool.
// Panics if numConvs is not positive.
func VGGBlock[B tensor.Backend](backend B, numConvs, channels int) *nn.Sequential[B] {
	if numConvs <= 0 {
		panic(fmt.Sprintf("vgg: invalid number of convolutions %d", numConvs))
	}

	block := nn.NewSequential[B]()
	for i := 0; i < numConvs; i++ {
		block.Add(conv(backend, channels, 3, 1, 1), nn.NewReLU[B]())
	}
	return block.Add(maxPool[B](2, 2, 0))
}

// VGG builds a VGG network from an architecture table.
//
// The network has sum(NumConvs) convolutions and three linear layers. Each
// block halves height and width, so a 224x224 input needs at most five blocks.
//
// Example:
//
//	net := zoo.VGG(backend, zoo.VGG11)
func VGG[B tensor.Backend](backend B, arch []ConvBlock) *nn.Sequential[B] {
	net := nn.NewSequential[B]()
	for _, b := range arch {
		net.Add(VGGBlock(backend, b.NumConvs, b.Channels))
	}
	return net.Add(classifier(backend)...)
}
