package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/zoo/internal/backend/cpu"
	"github.com/born-ml/zoo/internal/nn"
	"github.com/born-ml/zoo/internal/tensor"
)

type backendT = *cpu.CPUBackend

func fill(t *tensor.Tensor[float32, backendT], v float32) {
	data := t.Data()
	for i := range data {
		data[i] = v
	}
}

func TestParameter(t *testing.T) {
	backend := cpu.New()
	data, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	param := nn.NewParameter("test_param", data)
	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Nil(t, param.Grad())

	grad := tensor.Ones[float32](tensor.Shape{3}, backend)
	param.SetGrad(grad)
	assert.Same(t, grad, param.Grad())

	param.ZeroGrad()
	assert.Nil(t, param.Grad())
	assert.False(t, grad.Released(), "ZeroGrad keeps storage")

	param.SetGrad(grad)
	param.ReleaseGrad()
	assert.Nil(t, param.Grad())
	assert.True(t, grad.Released())
	assert.Panics(t, func() { grad.Data() })

	assert.NotPanics(t, param.ReleaseGrad, "releasing twice is a no-op")

	base := tensor.Ones[float32](tensor.Shape{3, 1}, backend)
	param.SetGrad(base.Reshape(3))
	param.ReleaseGrad()
	assert.True(t, base.Released(), "views share storage with their source")
	assert.Panics(t, func() { base.Data() })
}

func TestXavier_Bounds(t *testing.T) {
	w := nn.Xavier(2, 4, tensor.Shape{100}, cpu.New())
	bound := float32(1.0) // sqrt(6 / 6)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}

func TestConv2D_LazyInit(t *testing.T) {
	backend := cpu.New()
	conv := nn.NewConv2D(nn.Conv2DConfig{
		Filters: 4,
		Kernel:  [2]int{3, 3},
		Padding: [2]int{1, 1},
	}, backend)

	assert.Empty(t, conv.Parameters())
	assert.Equal(t, [2]int{1, 1}, conv.Config().Stride, "zero stride defaults to 1")

	output := conv.Forward(tensor.Randn[float32](tensor.Shape{2, 3, 8, 8}, backend))

	assert.Equal(t, tensor.Shape{2, 4, 8, 8}, output.Shape())
	require.Len(t, conv.Parameters(), 2)
	assert.Equal(t, tensor.Shape{4, 3, 3, 3}, conv.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{4}, conv.Bias().Tensor().Shape())
}

func TestConv2D_KnownValues(t *testing.T) {
	backend := cpu.New()
	conv := nn.NewConv2D(nn.Conv2DConfig{Filters: 2, Kernel: [2]int{3, 3}}, backend)
	require.NoError(t, conv.Initialize(tensor.Shape{1, 3, 4, 4}))

	fill(conv.Weight().Tensor(), 1)
	conv.Bias().Tensor().Data()[1] = 0.5

	output := conv.Forward(tensor.Ones[float32](tensor.Shape{1, 3, 4, 4}, backend))

	require.Equal(t, tensor.Shape{1, 2, 2, 2}, output.Shape())
	// 3 channels * 9 taps = 27, plus the bias.
	assert.Equal(t, []float32{27, 27, 27, 27, 27.5, 27.5, 27.5, 27.5}, output.Data())
}

func TestConv2D_ShapeInference(t *testing.T) {
	backend := cpu.New()
	conv := nn.NewConv2D(nn.Conv2DConfig{
		Filters: 96,
		Kernel:  [2]int{11, 11},
		Stride:  [2]int{4, 4},
		NoBias:  true,
	}, backend)

	out, err := conv.OutputShape(tensor.Shape{1, 1, 224, 224})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 96, 54, 54}, out)

	n, err := conv.NumParameters(tensor.Shape{1, 1, 224, 224})
	require.NoError(t, err)
	assert.Equal(t, 96*121, n)
	assert.Empty(t, conv.Parameters(), "shape inference does not allocate")

	_, err = conv.OutputShape(tensor.Shape{1, 224, 224})
	require.Error(t, err)
	_, err = conv.OutputShape(tensor.Shape{1, 1, 8, 8})
	require.Error(t, err, "kernel larger than input")
}

func TestConv2D_ChannelMismatchAfterInit(t *testing.T) {
	backend := cpu.New()
	conv := nn.NewConv2D(nn.Conv2DConfig{Filters: 2, Kernel: [2]int{1, 1}}, backend)
	require.NoError(t, conv.Initialize(tensor.Shape{1, 3, 2, 2}))

	require.Error(t, conv.Initialize(tensor.Shape{1, 4, 2, 2}))
	assert.Panics(t, func() {
		conv.Forward(tensor.Zeros[float32](tensor.Shape{1, 4, 2, 2}, backend))
	})
}

func TestConv2D_InvalidConfigPanics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { nn.NewConv2D(nn.Conv2DConfig{Kernel: [2]int{3, 3}}, backend) })
	assert.Panics(t, func() { nn.NewConv2D(nn.Conv2DConfig{Filters: 1}, backend) })
	assert.Panics(t, func() {
		nn.NewConv2D(nn.Conv2DConfig{Filters: 1, Kernel: [2]int{1, 1}, Padding: [2]int{-1, 0}}, backend)
	})
}

func TestLinear(t *testing.T) {
	backend := cpu.New()
	linear := nn.NewLinear(3, backend)

	input, err := tensor.FromSlice([]float32{1, 1, 2, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	require.NoError(t, linear.Initialize(input.Shape()))

	copy(linear.Weight().Tensor().Data(), []float32{1, 2, 3, 4, 5, 6})
	copy(linear.Bias().Tensor().Data(), []float32{0, 0, 1})

	output := linear.Forward(input)

	require.Equal(t, tensor.Shape{2, 3}, output.Shape())
	assert.Equal(t, []float32{3, 7, 12, 2, 6, 11}, output.Data())
}

func TestLinear_FlattensHigherRank(t *testing.T) {
	backend := cpu.New()
	linear := nn.NewLinear(10, backend)

	output := linear.Forward(tensor.Randn[float32](tensor.Shape{4, 16, 5, 5}, backend))

	assert.Equal(t, tensor.Shape{4, 10}, output.Shape())
	assert.Equal(t, tensor.Shape{10, 400}, linear.Weight().Tensor().Shape())

	n, err := linear.NumParameters(tensor.Shape{4, 16, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 4010, n)

	_, err = linear.OutputShape(tensor.Shape{4, 10})
	require.Error(t, err, "feature count fixed after init")
	assert.Panics(t, func() { nn.NewLinear(0, backend) })
}

func TestPooling(t *testing.T) {
	backend := cpu.New()
	input, err := tensor.FromSlice([]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, tensor.Shape{1, 1, 4, 4}, backend)
	require.NoError(t, err)

	maxPool := nn.NewMaxPool2D[backendT](nn.Pool2DConfig{Kernel: [2]int{2, 2}})
	assert.Equal(t, []float32{6, 8, 14, 16}, maxPool.Forward(input).Data())

	avgPool := nn.NewAvgPool2D[backendT](nn.Pool2DConfig{Kernel: [2]int{2, 2}})
	assert.Equal(t, []float32{3.5, 5.5, 11.5, 13.5}, avgPool.Forward(input).Data())

	out, err := nn.NewMaxPool2D[backendT](nn.Pool2DConfig{
		Kernel:  [2]int{3, 3},
		Stride:  [2]int{2, 2},
		Padding: [2]int{1, 1},
	}).OutputShape(tensor.Shape{1, 64, 112, 112})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 64, 56, 56}, out)

	assert.Empty(t, maxPool.Parameters())
	assert.Equal(t, "MaxPool2D(kernel=(2, 2), stride=(2, 2), padding=(0, 0))", maxPool.String())
	assert.Panics(t, func() { nn.NewAvgPool2D[backendT](nn.Pool2DConfig{}) })
	assert.Panics(t, func() {
		nn.NewMaxPool2D[backendT](nn.Pool2DConfig{Kernel: [2]int{1, 1}, Padding: [2]int{1, 1}})
	}, "padding must be smaller than the kernel")
	assert.Panics(t, func() {
		nn.NewAvgPool2D[backendT](nn.Pool2DConfig{Kernel: [2]int{3, 3}, Padding: [2]int{0, 3}})
	})
}

func TestGlobalAvgPool2D(t *testing.T) {
	backend := cpu.New()
	input, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{1, 2, 2, 2}, backend)
	require.NoError(t, err)

	output := nn.NewGlobalAvgPool2D[backendT]().Forward(input)

	assert.Equal(t, tensor.Shape{1, 2, 1, 1}, output.Shape())
	assert.Equal(t, []float32{2.5, 6.5}, output.Data())
}

func TestFlatten(t *testing.T) {
	backend := cpu.New()
	flatten := nn.NewFlatten[backendT]()

	out, err := flatten.OutputShape(tensor.Shape{8, 256, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{8, 6400}, out)

	assert.Equal(t, tensor.Shape{2, 12}, flatten.Forward(tensor.Zeros[float32](tensor.Shape{2, 3, 2, 2}, backend)).Shape())

	_, err = flatten.OutputShape(tensor.Shape{})
	require.Error(t, err)
}

func TestActivations(t *testing.T) {
	backend := cpu.New()
	input, err := tensor.FromSlice([]float32{-1, 0, 1}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 0, 1}, nn.NewReLU[backendT]().Forward(input).Data())
	assert.InDelta(t, 0.5, nn.NewSigmoid[backendT]().Forward(input).Data()[1], 1e-6)
	assert.InDelta(t, 0.7615942, nn.NewTanh[backendT]().Forward(input).Data()[2], 1e-6)

	relu := nn.NewReLU[backendT]()
	out, err := relu.OutputShape(tensor.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out)
	assert.Equal(t, "ReLU()", relu.String())
}

func TestDropout(t *testing.T) {
	backend := cpu.New()
	dropout := nn.NewDropout[backendT](0.5)
	input := tensor.Ones[float32](tensor.Shape{1000}, backend)

	assert.False(t, dropout.Training())
	assert.Same(t, input, dropout.Forward(input), "identity in inference mode")

	dropout.SetTraining(true)
	output := dropout.Forward(input)

	zeros := 0
	for _, v := range output.Data() {
		if v == 0 {
			zeros++
			continue
		}
		assert.InDelta(t, 2.0, v, 1e-6)
	}
	assert.Greater(t, zeros, 350)
	assert.Less(t, zeros, 650)

	assert.Panics(t, func() { nn.NewDropout[backendT](1) })
	assert.Panics(t, func() { nn.NewDropout[backendT](-0.1) })
}
