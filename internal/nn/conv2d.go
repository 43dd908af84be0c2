package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Conv2DConfig holds the hyperparameters of a Conv2D layer.
// Index 0 of each pair is the height axis, index 1 the width axis.
type Conv2DConfig struct {
	Filters int    // Number of output channels.
	Kernel  [2]int // Kernel size.
	Stride  [2]int // Stride; a zero entry means 1.
	Padding [2]int // Zero padding added to both sides.
	NoBias  bool   // Omit the per-filter bias.
}

func (cfg Conv2DConfig) withDefaults() Conv2DConfig {
	for i := range cfg.Stride {
		if cfg.Stride[i] == 0 {
			cfg.Stride[i] = 1
		}
	}
	return cfg
}

// Conv2D is a 2D convolutional layer.
//
// Performs convolution: output = Conv2D(input, weight) + bias
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [filters, in_channels, kernel_h, kernel_w]
// Bias shape:   [filters]
// Output shape: [batch, filters, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding_h - kernel_h) / stride_h + 1
//	out_w = (width + 2*padding_w - kernel_w) / stride_w + 1
//
// in_channels is taken from the first input shape.
//
// Example:
//
//	conv := nn.NewConv2D(nn.Conv2DConfig{
//	    Filters: 6,
//	    Kernel:  [2]int{5, 5},
//	    Padding: [2]int{2, 2},
//	}, backend)
//
//	input := tensor.Zeros[float32](tensor.Shape{32, 1, 28, 28}, backend)
//	output := conv.Forward(input) // [32, 6, 28, 28]
type Conv2D[B tensor.Backend] struct {
	cfg        Conv2DConfig
	inChannels int

	weight *Parameter[B] // [filters, in_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [filters] or nil

	backend B
}

// NewConv2D creates a new lazily initialised 2D convolutional layer.
//
// Initialization (on first input):
//   - Weights: Xavier/Glorot uniform initialization
//   - Bias: Zeros
//
// Panics on non-positive filters, kernel or stride, or negative padding.
func NewConv2D[B tensor.Backend](cfg Conv2DConfig, backend B) *Conv2D[B] {
	cfg = cfg.withDefaults()
	if cfg.Filters <= 0 {
		panic(fmt.Sprintf("conv2d: invalid filters %d", cfg.Filters))
	}
	for i := 0; i < 2; i++ {
		if cfg.Kernel[i] <= 0 {
			panic(fmt.Sprintf("conv2d: invalid kernel size %v", cfg.Kernel))
		}
		if cfg.Stride[i] <= 0 {
			panic(fmt.Sprintf("conv2d: invalid stride %v", cfg.Stride))
		}
		if cfg.Padding[i] < 0 {
			panic(fmt.Sprintf("conv2d: invalid padding %v", cfg.Padding))
		}
	}

	return &Conv2D[B]{cfg: cfg, backend: backend}
}

// Config returns the layer hyperparameters.
func (c *Conv2D[B]) Config() Conv2DConfig {
	return c.cfg
}

// Initialize allocates the weight and bias for the input's channel count.
func (c *Conv2D[B]) Initialize(input tensor.Shape) error {
	if _, err := c.OutputShape(input); err != nil {
		return err
	}
	if c.weight != nil {
		return nil
	}

	k := c.cfg.Kernel
	c.inChannels = input[1]

	// fan_in = in_channels * kernel_h * kernel_w
	// fan_out = filters * kernel_h * kernel_w
	fanIn := c.inChannels * k[0] * k[1]
	fanOut := c.cfg.Filters * k[0] * k[1]
	weightShape := tensor.Shape{c.cfg.Filters, c.inChannels, k[0], k[1]}
	c.weight = NewParameter("conv2d.weight", Xavier(fanIn, fanOut, weightShape, c.backend))

	if !c.cfg.NoBias {
		c.bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{c.cfg.Filters}, c.backend))
	}

	return nil
}

// OutputShape returns [batch, filters, out_h, out_w].
func (c *Conv2D[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if err := expectRank("conv2d", input, 4); err != nil {
		return nil, err
	}
	if c.weight != nil && input[1] != c.inChannels {
		return nil, errors.Errorf("conv2d: input channels %d != initialised channels %d", input[1], c.inChannels)
	}

	outH := windowOut(input[2], c.cfg.Kernel[0], c.cfg.Stride[0], c.cfg.Padding[0])
	outW := windowOut(input[3], c.cfg.Kernel[1], c.cfg.Stride[1], c.cfg.Padding[1])
	if outH <= 0 || outW <= 0 {
		return nil, errors.Errorf("conv2d: kernel %v does not fit input %v with padding %v",
			c.cfg.Kernel, input, c.cfg.Padding)
	}

	return tensor.Shape{input[0], c.cfg.Filters, outH, outW}, nil
}

// NumParameters returns filters*in_channels*kernel_h*kernel_w (+ filters with bias).
func (c *Conv2D[B]) NumParameters(input tensor.Shape) (int, error) {
	if _, err := c.OutputShape(input); err != nil {
		return 0, err
	}
	n := c.cfg.Filters * input[1] * c.cfg.Kernel[0] * c.cfg.Kernel[1]
	if !c.cfg.NoBias {
		n += c.cfg.Filters
	}
	return n, nil
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, filters, out_h, out_w].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	mustInitialize[B](c, input.Shape())

	outputRaw := c.backend.Conv2D(
		input.Raw(),
		c.weight.Tensor().Raw(),
		tensor.Conv2DParams{Stride: c.cfg.Stride, Padding: c.cfg.Padding},
	)
	output := tensor.New[float32](outputRaw, c.backend)

	if c.bias != nil {
		// [filters] -> [1, filters, 1, 1] for broadcasting.
		output = output.Add(c.bias.Tensor().Reshape(1, c.cfg.Filters, 1, 1))
	}

	return output
}

// Parameters returns the weight and, if present, the bias.
// Empty until the layer is initialised.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	switch {
	case c.weight == nil:
		return nil
	case c.bias == nil:
		return []*Parameter[B]{c.weight}
	default:
		return []*Parameter[B]{c.weight, c.bias}
	}
}

// Weight returns the weight parameter, or nil before initialisation.
func (c *Conv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter, or nil when absent or uninitialised.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(filters=%d, kernel=(%d, %d), stride=(%d, %d), padding=(%d, %d), bias=%v)",
		c.cfg.Filters,
		c.cfg.Kernel[0], c.cfg.Kernel[1],
		c.cfg.Stride[0], c.cfg.Stride[1],
		c.cfg.Padding[0], c.cfg.Padding[1],
		!c.cfg.NoBias)
}

// windowOut is the output extent of a sliding window along one axis.
func windowOut(size, kernel, stride, padding int) int {
	if size+2*padding < kernel {
		return 0
	}
	return (size+2*padding-kernel)/stride + 1
}

func expectRank(op string, input tensor.Shape, rank int) error {
	if len(input) != rank {
		return errors.Errorf("%s: expected %dD input, got %dD %v", op, rank, len(input), input)
	}
	if err := input.Validate(); err != nil {
		return errors.Wrap(err, op)
	}
	return nil
}

// mustInitialize initialises m for shape, panicking on incompatible input.
func mustInitialize[B tensor.Backend](m Module[B], shape tensor.Shape) {
	if err := m.Initialize(shape); err != nil {
		panic(err.Error())
	}
}
