// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU compute backend.
package cpu

import (
	internalcpu "github.com/born-ml/zoo/internal/backend/cpu"
	"github.com/born-ml/zoo/internal/parallel"
	"github.com/born-ml/zoo/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of all tensor operations.
// Matrix products and convolutions run through gonum BLAS, and convolution
// and pooling are spread over the physical cores.
type Backend = internalcpu.CPUBackend

// Parallelism controls how kernels fan out across goroutines.
type Parallelism = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/zoo/backend/cpu"
//	    "github.com/born-ml/zoo/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithParallelism creates a CPU backend with explicit worker settings.
// A zero Parallelism runs every kernel sequentially.
func NewWithParallelism(cfg Parallelism) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultParallelism returns the settings New uses: one worker per physical core.
func DefaultParallelism() Parallelism {
	return parallel.DefaultConfig()
}
