package cpu

import (
	"fmt"

	"github.com/born-ml/zoo/internal/tensor"
)

// Reshape returns a tensor sharing t's storage with a new shape.
// The element count must not change.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// Transpose swaps the two axes of a 2D tensor, producing a contiguous copy.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: expected 2D tensor, got %dD", len(shape)))
	}
	rows, cols := shape[0], shape[1]

	result := cpu.alloc("transpose", tensor.Shape{cols, rows}, t.DType())

	// Operate on raw bytes so every dtype shares one kernel.
	elem := t.DType().Size()
	src, dst := t.Data(), result.Data()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			from := (r*cols + c) * elem
			to := (c*rows + r) * elem
			copy(dst[to:to+elem], src[from:from+elem])
		}
	}

	return result
}

// Cat concatenates tensors along dim.
//
// All tensors must share dtype and match in every dimension except dim.
// Supports negative dim indexing.
//
// Example:
//
//	a: [2, 3], b: [2, 5] -> Cat([a, b], 1) -> [2, 8]
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	first := tensors[0].Shape()
	if len(first) == 0 {
		panic("cat: cannot concatenate 0-D tensors")
	}
	dim = first.NormalizeAxis(dim)
	dtype := tensors[0].DType()

	outShape := first.Clone()
	outShape[dim] = 0
	for i, t := range tensors {
		s := t.Shape()
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		if len(s) != len(first) {
			panic(fmt.Sprintf("cat: tensor %d has rank %d, expected %d", i, len(s), len(first)))
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: tensor %d shape %v incompatible with %v along dim %d", i, s, first, d))
			}
		}
		outShape[dim] += s[dim]
	}

	result := cpu.alloc("cat", outShape, dtype)

	// Each tensor contributes one contiguous block of dim*inner elements per
	// outer index.
	elem := dtype.Size()
	outer, _, inner := reduceLayout(outShape, dim)
	dst := result.Data()
	rowBytes := outShape[dim] * inner * elem

	offset := 0
	for _, t := range tensors {
		block := t.Shape()[dim] * inner * elem
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*rowBytes+offset:o*rowBytes+offset+block], src[o*block:(o+1)*block])
		}
		offset += block
	}

	return result
}
