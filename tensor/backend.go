// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/zoo/internal/tensor"
)

// Backend defines the interface that compute backends implement.
//
// The CPU backend (backend/cpu) is the only implementation in this module.
type Backend = tensor.Backend

// Conv2DParams holds the stride and padding of a 2D convolution.
type Conv2DParams = tensor.Conv2DParams

// Pool2DParams holds the window, stride and padding of a 2D pooling op.
type Pool2DParams = tensor.Pool2DParams
