package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/zoo/internal/tensor"
)

// Pool2DConfig holds the window of a pooling layer.
type Pool2DConfig struct {
	Kernel  [2]int // Window size.
	Stride  [2]int // Stride; a zero entry defaults to the kernel size.
	Padding [2]int // Zero padding added to both sides; must be smaller than the kernel.
}

func (cfg Pool2DConfig) withDefaults(op string) Pool2DConfig {
	for i := 0; i < 2; i++ {
		if cfg.Stride[i] == 0 {
			cfg.Stride[i] = cfg.Kernel[i]
		}
		if cfg.Kernel[i] <= 0 || cfg.Stride[i] <= 0 || cfg.Padding[i] < 0 || cfg.Padding[i] >= cfg.Kernel[i] {
			panic(fmt.Sprintf("%s: invalid window kernel=%v stride=%v padding=%v",
				op, cfg.Kernel, cfg.Stride, cfg.Padding))
		}
	}
	return cfg
}

func (cfg Pool2DConfig) params() tensor.Pool2DParams {
	return tensor.Pool2DParams{Kernel: cfg.Kernel, Stride: cfg.Stride, Padding: cfg.Padding}
}

func (cfg Pool2DConfig) String() string {
	return fmt.Sprintf("kernel=(%d, %d), stride=(%d, %d), padding=(%d, %d)",
		cfg.Kernel[0], cfg.Kernel[1], cfg.Stride[0], cfg.Stride[1], cfg.Padding[0], cfg.Padding[1])
}

// pool2d carries what max and average pooling share.
type pool2d[B tensor.Backend] struct {
	op  string
	cfg Pool2DConfig
}

func (p *pool2d[B]) Parameters() []*Parameter[B] { return nil }

func (p *pool2d[B]) NumParameters(input tensor.Shape) (int, error) {
	_, err := p.OutputShape(input)
	return 0, err
}

func (p *pool2d[B]) Initialize(input tensor.Shape) error {
	_, err := p.OutputShape(input)
	return err
}

// OutputShape returns [batch, channels, out_h, out_w].
func (p *pool2d[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if err := expectRank(p.op, input, 4); err != nil {
		return nil, err
	}

	outH := windowOut(input[2], p.cfg.Kernel[0], p.cfg.Stride[0], p.cfg.Padding[0])
	outW := windowOut(input[3], p.cfg.Kernel[1], p.cfg.Stride[1], p.cfg.Padding[1])
	if outH <= 0 || outW <= 0 {
		return nil, errors.Errorf("%s: window %v does not fit input %v", p.op, p.cfg.Kernel, input)
	}

	return tensor.Shape{input[0], input[1], outH, outW}, nil
}

func (p *pool2d[B]) check(input tensor.Shape) {
	if _, err := p.OutputShape(input); err != nil {
		panic(err.Error())
	}
}

// MaxPool2D applies 2D max pooling.
//
// Input:  [batch, channels, height, width]
// Output: [batch, channels, out_h, out_w]
//
// Example:
//
//	pool := nn.NewMaxPool2D[B](nn.Pool2DConfig{Kernel: [2]int{2, 2}})
//	output := pool.Forward(input) // [N, C, H/2, W/2]
type MaxPool2D[B tensor.Backend] struct {
	pool2d[B]
}

// NewMaxPool2D creates a max pooling layer. Panics on an invalid window.
func NewMaxPool2D[B tensor.Backend](cfg Pool2DConfig) *MaxPool2D[B] {
	return &MaxPool2D[B]{pool2d[B]{op: "maxpool2d", cfg: cfg.withDefaults("maxpool2d")}}
}

// Forward applies max pooling.
func (m *MaxPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	m.check(input.Shape())
	backend := input.Backend()
	return tensor.New[float32](backend.MaxPool2D(input.Raw(), m.cfg.params()), backend)
}

// String returns a string representation of the layer.
func (m *MaxPool2D[B]) String() string {
	return "MaxPool2D(" + m.cfg.String() + ")"
}

// AvgPool2D applies 2D average pooling.
//
// Padded positions count as zeros and every window divides by
// kernel_h * kernel_w.
type AvgPool2D[B tensor.Backend] struct {
	pool2d[B]
}

// NewAvgPool2D creates an average pooling layer. Panics on an invalid window.
func NewAvgPool2D[B tensor.Backend](cfg Pool2DConfig) *AvgPool2D[B] {
	return &AvgPool2D[B]{pool2d[B]{op: "avgpool2d", cfg: cfg.withDefaults("avgpool2d")}}
}

// Forward applies average pooling.
func (a *AvgPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	a.check(input.Shape())
	backend := input.Backend()
	return tensor.New[float32](backend.AvgPool2D(input.Raw(), a.cfg.params()), backend)
}

// String returns a string representation of the layer.
func (a *AvgPool2D[B]) String() string {
	return "AvgPool2D(" + a.cfg.String() + ")"
}

// GlobalAvgPool2D averages each channel over its whole spatial extent.
//
// Input:  [batch, channels, height, width]
// Output: [batch, channels, 1, 1]
type GlobalAvgPool2D[B tensor.Backend] struct {
	stateless[B]
}

// NewGlobalAvgPool2D creates a global average pooling layer.
func NewGlobalAvgPool2D[B tensor.Backend]() *GlobalAvgPool2D[B] {
	return &GlobalAvgPool2D[B]{stateless[B]{name: "GlobalAvgPool2D"}}
}

// OutputShape returns [batch, channels, 1, 1].
func (g *GlobalAvgPool2D[B]) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if err := expectRank("global_avgpool2d", input, 4); err != nil {
		return nil, err
	}
	return tensor.Shape{input[0], input[1], 1, 1}, nil
}

// Initialize validates the input shape.
func (g *GlobalAvgPool2D[B]) Initialize(input tensor.Shape) error {
	_, err := g.OutputShape(input)
	return err
}

// NumParameters is always zero.
func (g *GlobalAvgPool2D[B]) NumParameters(input tensor.Shape) (int, error) {
	_, err := g.OutputShape(input)
	return 0, err
}

// Forward pools with a window covering the full height and width.
func (g *GlobalAvgPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if _, err := g.OutputShape(shape); err != nil {
		panic(err.Error())
	}

	window := [2]int{shape[2], shape[3]}
	backend := input.Backend()
	out := backend.AvgPool2D(input.Raw(), tensor.Pool2DParams{Kernel: window, Stride: window})
	return tensor.New[float32](out, backend)
}
