package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/zoo/internal/parallel"
	"github.com/born-ml/zoo/internal/tensor"
)

// MaxPool2D performs 2D max pooling.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
//	out_height = (height + 2*pad_h - kernel_h) / stride_h + 1
//
// Padded positions never win the maximum.
//
// Example (2x2 pool, stride=2):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, p tensor.Pool2DParams) *tensor.RawTensor {
	return cpu.pool2d("maxpool2d", input, p, false)
}

// AvgPool2D performs 2D average pooling.
//
// Padded positions count as zeros and the divisor is always the full window
// area (kernel_h * kernel_w).
func (cpu *CPUBackend) AvgPool2D(input *tensor.RawTensor, p tensor.Pool2DParams) *tensor.RawTensor {
	return cpu.pool2d("avgpool2d", input, p, true)
}

func (cpu *CPUBackend) pool2d(op string, input *tensor.RawTensor, p tensor.Pool2DParams, average bool) *tensor.RawTensor {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got %dD", op, len(shape)))
	}
	for i := 0; i < 2; i++ {
		if p.Kernel[i] <= 0 || p.Stride[i] <= 0 || p.Padding[i] < 0 || p.Padding[i] >= p.Kernel[i] {
			panic(fmt.Sprintf("%s: invalid window kernel=%v stride=%v padding=%v", op, p.Kernel, p.Stride, p.Padding))
		}
		if size := shape[2+i]; size+2*p.Padding[i] < p.Kernel[i] {
			panic(fmt.Sprintf("%s: window %v does not fit padded input %dx%d (padding=%v)",
				op, p.Kernel, shape[2], shape[3], p.Padding))
		}
	}

	g := poolGeometry{n: shape[0], c: shape[1], h: shape[2], w: shape[3], params: p}
	hOut, wOut := g.outSize()
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("%s: invalid output dimensions %dx%d (kernel=%v, stride=%v, input=%dx%d)",
			op, hOut, wOut, p.Kernel, p.Stride, g.h, g.w))
	}

	output := cpu.alloc(op, tensor.Shape{g.n, g.c, hOut, wOut}, input.DType())

	switch input.DType() {
	case tensor.Float32:
		pool2d(output.AsFloat32(), input.AsFloat32(), g, average, cpu.par)
	case tensor.Float64:
		pool2d(output.AsFloat64(), input.AsFloat64(), g, average, cpu.par)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, input.DType()))
	}

	return output
}

type poolGeometry struct {
	n, c, h, w int
	params     tensor.Pool2DParams
}

func (g poolGeometry) outSize() (int, int) {
	k, s, pad := g.params.Kernel, g.params.Stride, g.params.Padding
	return (g.h+2*pad[0]-k[0])/s[0] + 1, (g.w+2*pad[1]-k[1])/s[1] + 1
}

func pool2d[T float32 | float64](out, in []T, g poolGeometry, average bool, cfg parallel.Config) {
	k, s, pad := g.params.Kernel, g.params.Stride, g.params.Padding
	hOut, wOut := g.outSize()
	area := T(k[0] * k[1])

	parallel.ForBatch(g.n, g.c, func(n, c int) {
		plane := (n*g.c + c) * g.h * g.w
		src := in[plane : plane+g.h*g.w]
		dst := out[(n*g.c+c)*hOut*wOut : (n*g.c+c+1)*hOut*wOut]

		for oh := 0; oh < hOut; oh++ {
			for ow := 0; ow < wOut; ow++ {
				var sum T
				best := T(math.Inf(-1))
				for kh := 0; kh < k[0]; kh++ {
					h := oh*s[0] - pad[0] + kh
					if h < 0 || h >= g.h {
						continue
					}
					for kw := 0; kw < k[1]; kw++ {
						w := ow*s[1] - pad[1] + kw
						if w < 0 || w >= g.w {
							continue
						}
						v := src[h*g.w+w]
						sum += v
						if v > best {
							best = v
						}
					}
				}
				if average {
					dst[oh*wOut+ow] = sum / area
				} else {
					dst[oh*wOut+ow] = best
				}
			}
		}
	}, cfg)
}
