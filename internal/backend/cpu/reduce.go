package cpu

import (
	"fmt"

	"github.com/born-ml/zoo/internal/tensor"
)

// Sum computes the sum of all elements, returning a 0-D tensor of the same dtype.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.alloc("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sum(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sum(x.AsFloat64())
	case tensor.Int32:
		result.AsInt32()[0] = sum(x.AsInt32())
	case tensor.Int64:
		result.AsInt64()[0] = sum(x.AsInt64())
	case tensor.Uint8:
		result.AsUint8()[0] = sum(x.AsUint8())
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

func sum[T tensor.Numeric](data []T) T {
	var acc T
	for _, v := range data {
		acc += v
	}
	return acc
}

// reduceLayout splits a shape around dim into outer * size * inner.
func reduceLayout(shape tensor.Shape, dim int) (outer, size, inner int) {
	outer, inner = 1, 1
	for i := 0; i < dim; i++ {
		outer *= shape[i]
	}
	for i := dim + 1; i < len(shape); i++ {
		inner *= shape[i]
	}
	return outer, shape[dim], inner
}

// reducedShape removes dim from shape, or sets it to 1 when keepDim is true.
func reducedShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	out := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		switch {
		case i != dim:
			out = append(out, d)
		case keepDim:
			out = append(out, 1)
		}
	}
	return out
}

// MeanDim computes the mean along dim. Supports negative dims.
//
// Example:
//
//	x: [2, 3], MeanDim(x, -1, false) -> [2]
//	x: [2, 3], MeanDim(x, 0, true)   -> [1, 3]
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("mean_dim: cannot reduce a 0-D tensor")
	}
	dim = shape.NormalizeAxis(dim)

	result := cpu.alloc("mean_dim", reducedShape(shape, dim, keepDim), x.DType())
	outer, size, inner := reduceLayout(shape, dim)

	switch x.DType() {
	case tensor.Float32:
		meanDim(result.AsFloat32(), x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		meanDim(result.AsFloat64(), x.AsFloat64(), outer, size, inner)
	default:
		panic(fmt.Sprintf("mean_dim: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func meanDim[T float32 | float64](dst, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var acc T
			for s := 0; s < size; s++ {
				acc += src[(o*size+s)*inner+i]
			}
			dst[o*inner+i] = acc / T(size)
		}
	}
}

// Argmax returns int32 indices of the maximum values along dim.
// The reduced dimension is removed. Ties resolve to the first index.
//
// Example:
//
//	x: [[1, 5, 2], [7, 0, 7]], Argmax(x, 1) -> [1, 0]
func (cpu *CPUBackend) Argmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("argmax: cannot reduce a 0-D tensor")
	}
	dim = shape.NormalizeAxis(dim)

	result := cpu.alloc("argmax", reducedShape(shape, dim, false), tensor.Int32)
	dst := result.AsInt32()
	outer, size, inner := reduceLayout(shape, dim)

	switch x.DType() {
	case tensor.Float32:
		argmax(dst, x.AsFloat32(), outer, size, inner)
	case tensor.Float64:
		argmax(dst, x.AsFloat64(), outer, size, inner)
	case tensor.Int32:
		argmax(dst, x.AsInt32(), outer, size, inner)
	case tensor.Int64:
		argmax(dst, x.AsInt64(), outer, size, inner)
	case tensor.Uint8:
		argmax(dst, x.AsUint8(), outer, size, inner)
	default:
		panic(fmt.Sprintf("argmax: unsupported dtype %s", x.DType()))
	}

	return result
}

func argmax[T tensor.Numeric](dst []int32, src []T, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best := 0
			bestVal := src[o*size*inner+i]
			for s := 1; s < size; s++ {
				if v := src[(o*size+s)*inner+i]; v > bestVal {
					best, bestVal = s, v
				}
			}
			dst[o*inner+i] = int32(best) //nolint:gosec // axis sizes fit in int32
		}
	}
}
