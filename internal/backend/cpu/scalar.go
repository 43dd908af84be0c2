package cpu

import (
	"fmt"

	"github.com/born-ml/zoo/internal/tensor"
)

// MulScalar multiplies every element by scalar.
// Integer tensors compute in float64 and truncate the result.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalarOp("mul_scalar", x, func(v float64) float64 { return v * scalar })
}

// AddScalar adds scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.scalarOp("add_scalar", x, func(v float64) float64 { return v + scalar })
}

func (cpu *CPUBackend) scalarOp(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		mapValues(result.AsFloat32(), x.AsFloat32(), f)
	case tensor.Float64:
		mapValues(result.AsFloat64(), x.AsFloat64(), f)
	case tensor.Int32:
		mapValues(result.AsInt32(), x.AsInt32(), f)
	case tensor.Int64:
		mapValues(result.AsInt64(), x.AsInt64(), f)
	case tensor.Uint8:
		mapValues(result.AsUint8(), x.AsUint8(), f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}

	return result
}
