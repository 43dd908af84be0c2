// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/zoo/backend/cpu"
	"github.com/born-ml/zoo/tensor"
)

func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Len(t, raw.AsFloat32(), 6)
}

func TestPublicCreation(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	y := tensor.Full[float32](tensor.Shape{2, 2}, 1, backend)

	z := tensor.Cat([]*tensor.Tensor[float32, *cpu.Backend]{x.Add(y), tensor.Zeros[float32](tensor.Shape{2, 2}, backend)}, 0)

	assert.Equal(t, tensor.Shape{4, 2}, z.Shape())
	assert.Equal(t, []float32{2, 3, 4, 5, 0, 0, 0, 0}, z.Data())
	assert.Equal(t, float32(7), tensor.Scalar[float32](7, backend).Item())
}
