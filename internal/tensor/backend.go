package tensor

// Conv2DParams holds the spatial hyperparameters of a 2D convolution.
// Index 0 is the height axis, index 1 the width axis.
type Conv2DParams struct {
	Stride  [2]int
	Padding [2]int
}

// Pool2DParams holds the window, stride and zero padding of a 2D pooling op.
type Pool2DParams struct {
	Kernel  [2]int
	Stride  [2]int
	Padding [2]int
}

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: pure Go with gonum BLAS for the GEMM-shaped kernels
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies 2D tensors: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Convolution and pooling over [N, C, H, W] inputs.
	Conv2D(input, kernel *RawTensor, p Conv2DParams) *RawTensor
	MaxPool2D(input *RawTensor, p Pool2DParams) *RawTensor
	AvgPool2D(input *RawTensor, p Pool2DParams) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor) *RawTensor
	Cat(tensors []*RawTensor, dim int) *RawTensor

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar float64) *RawTensor
	AddScalar(x *RawTensor, scalar float64) *RawTensor

	// Activation functions.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor

	// Comparison (returns a Bool tensor).
	Equal(a, b *RawTensor) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor                            // total sum, scalar result
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // mean along dimension
	Argmax(x *RawTensor, dim int) *RawTensor                // int32 indices, dim removed

	// Cast converts to a different data type.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
