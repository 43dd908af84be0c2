// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package zoo

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/nn"
	"github.com/born-ml/zoo/tensor"
)

// ErrUnknownModel is returned for names not in the registry.
var ErrUnknownModel = errors.New("unknown model")

// entry records the input a model was designed for.
type entry struct {
	channels int
	size     int
}

var registry = map[string]entry{
	"lenet":     {channels: 1, size: 28},
	"alexnet":   {channels: 1, size: 224},
	"vgg11":     {channels: 1, size: 224},
	"nin":       {channels: 1, size: 224},
	"googlenet": {channels: 1, size: 96},
}

// Names returns the registered model names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named model.
func Build[B tensor.Backend](name string, backend B) (*nn.Sequential[B], error) {
	switch name {
	case "lenet":
		return LeNet(backend), nil
	case "alexnet":
		return AlexNet(backend), nil
	case "vgg11":
		return VGG(backend, VGG11), nil
	case "nin":
		return NiN(backend), nil
	case "googlenet":
		return GoogLeNet(backend), nil
	default:
		return nil, errors.Wrapf(ErrUnknownModel, "%q", name)
	}
}

// InputShape returns the [batch, channels, height, width] input the named
// model expects, sized for single-channel Fashion-MNIST style images.
func InputShape(name string, batch int) (tensor.Shape, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q", name)
	}
	if batch <= 0 {
		return nil, errors.Errorf("invalid batch size %d", batch)
	}
	return tensor.Shape{batch, e.channels, e.size, e.size}, nil
}
