package cpu

import (
	"fmt"

	"github.com/born-ml/zoo/internal/parallel"
	"github.com/born-ml/zoo/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
// where H_out = (H + 2*pad_h - K_h) / stride_h + 1 (same for width).
//
// Each image is unfolded into a [C_in*K_h*K_w, H_out*W_out] column matrix and
// multiplied by the kernel viewed as [C_out, C_in*K_h*K_w] with one GEMM.
// Images are processed in parallel.
//
// Reference: "High Performance Convolutional Neural Networks for Document Processing"
// (Chellapilla et al., 2006).
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, p tensor.Conv2DParams) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: dtype mismatch %s vs %s", input.DType(), kernel.DType()))
	}

	g := convGeometry{
		n: inputShape[0], c: inputShape[1], h: inputShape[2], w: inputShape[3],
		kh: kernelShape[2], kw: kernelShape[3],
		params: p,
	}
	cOut := kernelShape[0]

	if g.c != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", g.c, kernelShape[1]))
	}

	hOut, wOut := g.outSize()
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", hOut, wOut))
	}

	output := cpu.alloc("conv2d", tensor.Shape{g.n, cOut, hOut, wOut}, input.DType())
	cfg := cpu.par.WithMinChunk(1)

	switch input.DType() {
	case tensor.Float32:
		conv2d(output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), g, cOut, cfg)
	case tensor.Float64:
		conv2d(output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), g, cOut, cfg)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

type convGeometry struct {
	n, c, h, w int
	kh, kw     int
	params     tensor.Conv2DParams
}

func (g convGeometry) outSize() (int, int) {
	s, pad := g.params.Stride, g.params.Padding
	return (g.h+2*pad[0]-g.kh)/s[0] + 1, (g.w+2*pad[1]-g.kw)/s[1] + 1
}

func conv2d[T float32 | float64](out, in, kernel []T, g convGeometry, cOut int, cfg parallel.Config) {
	hOut, wOut := g.outSize()
	spatial := hOut * wOut
	colRows := g.c * g.kh * g.kw
	imageSize := g.c * g.h * g.w

	parallel.For(g.n, func(n int) {
		col := make([]T, colRows*spatial)
		im2col(col, in[n*imageSize:(n+1)*imageSize], g, hOut, wOut)
		gemm(false, cOut, spatial, colRows, kernel, col, out[n*cOut*spatial:(n+1)*cOut*spatial])
	}, cfg)
}

// im2col unfolds one [C, H, W] image into col, laid out as
// [C*K_h*K_w, H_out*W_out]. Positions falling into padding are zero.
func im2col[T float32 | float64](col, img []T, g convGeometry, hOut, wOut int) {
	stride, pad := g.params.Stride, g.params.Padding
	spatial := hOut * wOut

	row := 0
	for c := 0; c < g.c; c++ {
		plane := img[c*g.h*g.w : (c+1)*g.h*g.w]
		for kh := 0; kh < g.kh; kh++ {
			for kw := 0; kw < g.kw; kw++ {
				dst := col[row*spatial : (row+1)*spatial]
				for oh := 0; oh < hOut; oh++ {
					h := oh*stride[0] - pad[0] + kh
					for ow := 0; ow < wOut; ow++ {
						w := ow*stride[1] - pad[1] + kw
						if h >= 0 && h < g.h && w >= 0 && w < g.w {
							dst[oh*wOut+ow] = plane[h*g.w+w]
						} else {
							dst[oh*wOut+ow] = 0
						}
					}
				}
				row++
			}
		}
	}
}
