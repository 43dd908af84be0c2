package cpu

import (
	"fmt"

	"github.com/born-ml/zoo/internal/tensor"
)

// Cast converts x to dtype.
//
// Values pass through float64: floats are truncated toward zero when cast to
// integers, booleans become 0/1, and any non-zero value becomes true.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	result := cpu.alloc("cast", x.Shape(), dtype)
	vals := toFloat64(x)

	switch dtype {
	case tensor.Float32:
		fromFloat64(result.AsFloat32(), vals)
	case tensor.Float64:
		copy(result.AsFloat64(), vals)
	case tensor.Int32:
		fromFloat64(result.AsInt32(), vals)
	case tensor.Int64:
		fromFloat64(result.AsInt64(), vals)
	case tensor.Uint8:
		fromFloat64(result.AsUint8(), vals)
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range vals {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}

	return result
}

// Equal compares a and b element-wise with broadcasting, returning a Bool tensor.
func (cpu *CPUBackend) Equal(a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("equal: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("equal: %v", err))
	}

	result := cpu.alloc("equal", outShape, tensor.Bool)

	switch a.DType() {
	case tensor.Float32:
		broadcastBinary(result, a, b, eq[float32])
	case tensor.Float64:
		broadcastBinary(result, a, b, eq[float64])
	case tensor.Int32:
		broadcastBinary(result, a, b, eq[int32])
	case tensor.Int64:
		broadcastBinary(result, a, b, eq[int64])
	case tensor.Uint8:
		broadcastBinary(result, a, b, eq[uint8])
	case tensor.Bool:
		broadcastBinary(result, a, b, eq[bool])
	}

	return result
}

func eq[T comparable](x, y T) bool {
	return x == y
}

// toFloat64 copies any tensor's values into a float64 slice.
func toFloat64(x *tensor.RawTensor) []float64 {
	switch x.DType() {
	case tensor.Float32:
		return widen(x.AsFloat32())
	case tensor.Float64:
		return append([]float64(nil), x.AsFloat64()...)
	case tensor.Int32:
		return widen(x.AsInt32())
	case tensor.Int64:
		return widen(x.AsInt64())
	case tensor.Uint8:
		return widen(x.AsUint8())
	case tensor.Bool:
		src := x.AsBool()
		out := make([]float64, len(src))
		for i, v := range src {
			if v {
				out[i] = 1
			}
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported dtype %s", x.DType()))
	}
}

func widen[T tensor.Numeric](src []T) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}

func fromFloat64[T tensor.Numeric](dst []T, src []float64) {
	for i, v := range src {
		dst[i] = T(v)
	}
}
