// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// AlexNet builds the single-tower AlexNet variant with a 10-class head.
//
// Expects [N, C, 224, 224] inputs; the feature extractor ends at [N, 256, 5, 5].
func AlexNet[B tensor.Backend](backend B) *nn.Sequential[B] {
	net := nn.NewSequential[B](
		conv(backend, 96, 11, 4, 0),
		nn.NewReLU[B](),
		maxPool[B](3, 2, 0),

		// Smaller window, padding keeps height and width.
		conv(backend, 256, 5, 1, 2),
		nn.NewReLU[B](),
		maxPool[B](3, 2, 0),

		conv(backend, 384, 3, 1, 1),
		nn.NewReLU[B](),
		conv(backend, 384, 3, 1, 1),
		nn.NewReLU[B](),
		conv(backend, 256, 3, 1, 1),
		nn.NewReLU[B](),
		maxPool[B](3, 2, 0),
	)
	return net.Add(classifier(backend)...)
}
