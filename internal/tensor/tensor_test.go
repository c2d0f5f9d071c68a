package tensor

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend satisfies Backend for creation tests that never dispatch kernels.
type stubBackend struct{}

func (stubBackend) Add(_, _ *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) Sub(_, _ *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) Mul(_, _ *RawTensor) *RawTensor                { panic("not implemented") }
func (stubBackend) MatMul(_, _ *RawTensor) *RawTensor             { panic("not implemented") }
func (stubBackend) Reshape(_ *RawTensor, _ Shape) *RawTensor      { panic("not implemented") }
func (stubBackend) Transpose(_ *RawTensor, _ ...int) *RawTensor   { panic("not implemented") }
func (stubBackend) MulScalar(_ *RawTensor, _ float64) *RawTensor  { panic("not implemented") }
func (stubBackend) Sum(_ *RawTensor) *RawTensor                   { panic("not implemented") }
func (stubBackend) SumDim(_ *RawTensor, _ int, _ bool) *RawTensor { panic("not implemented") }
func (stubBackend) Name() string                                  { return "stub" }
func (stubBackend) Device() Device                                { return CPU }

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, "unknown", DataType(42).String())
}

func TestShape(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.NoError(t, Shape{2, 1}.Validate())
	assert.True(t, Shape{4, 10}.Equal(Shape{4, 10}))
	assert.False(t, Shape{4, 10}.Equal(Shape{10, 4}))
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{4, 6}, Shape{4, 6}, Shape{4, 6}, false, false},
		{"bias row", Shape{4, 6}, Shape{1, 6}, Shape{4, 6}, true, false},
		{"column", Shape{4, 1}, Shape{4, 6}, Shape{4, 6}, true, false},
		{"scalar", Shape{}, Shape{4, 6}, Shape{4, 6}, true, false},
		{"rank pad", Shape{6}, Shape{4, 6}, Shape{4, 6}, true, false},
		{"mismatch", Shape{4, 6}, Shape{4, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestRawTensor(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 24, raw.ByteSize())

	raw.Fill(2.5)
	for _, v := range raw.AsFloat32() {
		assert.Equal(t, float32(2.5), v)
	}

	clone := raw.Clone()
	clone.AsFloat32()[0] = 7
	assert.Equal(t, float32(2.5), raw.AsFloat32()[0], "clone must not alias")

	view, err := raw.WithShape(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, view.Shape())
	assert.Equal(t, []int{2, 1}, view.Strides())

	_, err = raw.WithShape(Shape{4, 2})
	assert.Error(t, err)

	_, err = NewRaw(Shape{0}, Float32, CPU)
	assert.Error(t, err)

	assert.Panics(t, func() { raw.AsFloat64() })
}

func TestFromSliceAndRows(t *testing.T) {
	b := stubBackend{}

	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	require.NoError(t, err)
	assert.Equal(t, float32(6), x.At(1, 2))
	x.Set(9, 0, 1)
	assert.Equal(t, [][]float64{{1, 9, 3}, {4, 5, 6}}, x.Rows())

	_, err = FromSlice([]float32{1, 2}, Shape{3}, b)
	assert.Error(t, err)

	y, err := FromRows[float64]([][]float64{{1, 2}, {3, 4}}, b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, y.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, y.Data())

	_, err = FromRows[float32]([][]float64{{1, 2}, {3}}, b)
	assert.Error(t, err)
	_, err = FromRows[float32](nil, b)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	b := stubBackend{}

	ones := Ones[float32](Shape{2, 2}, b)
	assert.Equal(t, []float32{1, 1, 1, 1}, ones.Data())

	full := Full[float64](Shape{3}, 0.5, b)
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, full.Data())

	rng := rand.New(rand.NewPCG(7, 0)) //nolint:gosec // deterministic test data
	u := Uniform[float32](Shape{100}, -0.5, 0.5, rng, b)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}

	s, err := FromSlice([]float32{3}, Shape{}, b)
	require.NoError(t, err)
	assert.Equal(t, float32(3), s.Item())
	assert.Panics(t, func() { ones.Item() })
}
