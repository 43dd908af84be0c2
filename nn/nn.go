// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public neural network building blocks of the model zoo.
//
// Layers are configured at construction and allocate parameters lazily from
// the first input shape:
//
//	backend := cpu.New()
//	net := nn.NewSequential[*cpu.Backend](
//	    nn.NewConv2D(nn.Conv2DConfig{Filters: 6, Kernel: [2]int{5, 5}, Padding: [2]int{2, 2}}, backend),
//	    nn.NewSigmoid[*cpu.Backend](),
//	    nn.NewFlatten[*cpu.Backend](),
//	    nn.NewLinear(10, backend),
//	)
//	out := net.Forward(tensor.Randn[float32](tensor.Shape{1, 1, 28, 28}, backend))
package nn

import (
	"github.com/born-ml/zoo/internal/nn"
	"github.com/born-ml/zoo/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Container is implemented by modules that hold child modules.
type Container[B tensor.Backend] = nn.Container[B]

// Trainable is implemented by modules with distinct training behaviour.
type Trainable = nn.Trainable

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Conv2DConfig holds the hyperparameters of a Conv2D layer.
type Conv2DConfig = nn.Conv2DConfig

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	conv := nn.NewConv2D(nn.Conv2DConfig{Filters: 32, Kernel: [2]int{3, 3}, Padding: [2]int{1, 1}}, backend)
func NewConv2D[B tensor.Backend](cfg Conv2DConfig, backend B) *Conv2D[B] {
	return nn.NewConv2D(cfg, backend)
}

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with the given number of output units.
func NewLinear[B tensor.Backend](units int, backend B) *Linear[B] {
	return nn.NewLinear(units, backend)
}

// Pool2DConfig holds the window of a pooling layer.
type Pool2DConfig = nn.Pool2DConfig

// MaxPool2D represents a 2D max pooling layer.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a new 2D max pooling layer.
func NewMaxPool2D[B tensor.Backend](cfg Pool2DConfig) *MaxPool2D[B] {
	return nn.NewMaxPool2D[B](cfg)
}

// AvgPool2D represents a 2D average pooling layer.
type AvgPool2D[B tensor.Backend] = nn.AvgPool2D[B]

// NewAvgPool2D creates a new 2D average pooling layer.
func NewAvgPool2D[B tensor.Backend](cfg Pool2DConfig) *AvgPool2D[B] {
	return nn.NewAvgPool2D[B](cfg)
}

// GlobalAvgPool2D averages each channel over its spatial extent.
type GlobalAvgPool2D[B tensor.Backend] = nn.GlobalAvgPool2D[B]

// NewGlobalAvgPool2D creates a new global average pooling layer.
func NewGlobalAvgPool2D[B tensor.Backend]() *GlobalAvgPool2D[B] {
	return nn.NewGlobalAvgPool2D[B]()
}

// Flatten collapses every axis after the batch axis.
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a new Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Dropout randomly zeroes elements while training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a new dropout layer with the given drop probability.
func NewDropout[B tensor.Backend](rate float64) *Dropout[B] {
	return nn.NewDropout[B](rate)
}

// Activations

// ReLU represents the rectified linear unit activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid represents the sigmoid activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Tanh represents the hyperbolic tangent activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Containers

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Parallel runs branches on the same input and concatenates their outputs.
type Parallel[B tensor.Backend] = nn.Parallel[B]

// NewConcat creates a Parallel container joining branch outputs along axis.
func NewConcat[B tensor.Backend](axis int, branches ...Module[B]) *Parallel[B] {
	return nn.NewConcat(axis, branches...)
}

// Utilities

// LayerSummary describes one row produced by Summarize.
type LayerSummary = nn.LayerSummary

// Summarize infers per-layer output shapes and parameter counts without
// allocating parameters.
func Summarize[B tensor.Backend](m Module[B], input tensor.Shape) ([]LayerSummary, error) {
	return nn.Summarize(m, input)
}

// Leaves returns every non-container module reachable from m.
func Leaves[B tensor.Backend](m Module[B]) []Module[B] {
	return nn.Leaves(m)
}

// SetTraining switches every Trainable module reachable from m.
func SetTraining[B tensor.Backend](m Module[B], training bool) {
	nn.SetTraining(m, training)
}

// Xavier creates a tensor initialised with the Glorot uniform distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}
