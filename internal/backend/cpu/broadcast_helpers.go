package cpu

import (
	"github.com/born-ml/zoo/internal/tensor"
)

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

// arith returns the scalar kernel for op.
func arith[T tensor.Numeric](op binaryOp) func(x, y T) T {
	switch op {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op")
	}
}

// broadcastBinary computes result = f(a, b) element-wise, broadcasting a and b
// to result's shape.
func broadcastBinary[T, R tensor.DType](result, a, b *tensor.RawTensor, f func(x, y T) R) {
	out := tensor.Values[R](result)
	av := tensor.Values[T](a)
	bv := tensor.Values[T](b)

	// Fast path: identical shapes need no index arithmetic.
	if a.Shape().Equal(b.Shape()) {
		for i := range out {
			out[i] = f(av[i], bv[i])
		}
		return
	}

	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)

	for i := range out {
		out[i] = f(av[computeFlatIndex(i, outStrides, aStrides)], bv[computeFlatIndex(i, outStrides, bStrides)])
	}
}

// computeBroadcastStridesForShape computes strides for reading a tensor of
// inShape as if it had outShape. Broadcast and padded dimensions get stride 0.
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	strides := make([]int, len(outShape))
	origStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)

	for i := range strides {
		inIdx := i - offset
		if inIdx >= 0 && inShape[inIdx] != 1 {
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex maps a flat output index to a flat input index.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flat := 0
	for i, s := range outStrides {
		coord := outIdx / s
		outIdx %= s
		flat += coord * inStrides[i]
	}
	return flat
}
