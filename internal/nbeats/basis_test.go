package nbeats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/nbeats/internal/backend/cpu"
)

func TestLinearSpace(t *testing.T) {
	for _, length := range []int{1, 2, 3, 5, 10, 17} {
		for _, forecast := range []bool{true, false} {
			ts := LinearSpace(length, forecast)
			require.Len(t, ts, length)
			for i := 1; i < len(ts); i++ {
				assert.GreaterOrEqual(t, ts[i], ts[i-1], "length=%d forecast=%v", length, forecast)
			}
			if forecast {
				assert.Equal(t, 0.0, ts[0])
				if length > 1 {
					assert.InDelta(t, float64(length-1), ts[length-1], 1e-12)
				}
			} else {
				assert.Equal(t, -float64(length), ts[0])
				if length > 1 {
					assert.InDelta(t, 0.0, ts[length-1], 1e-12)
				}
			}
		}
	}

	assert.Equal(t, []float64{0, 1, 2, 3, 4}, LinearSpace(5, true))
	assert.Equal(t, []float64{-3, -1.5, 0}, LinearSpace(3, false))
	assert.Empty(t, LinearSpace(0, true))
}

func TestTrendBasis(t *testing.T) {
	ones, err := TrendBasis(1, 6, true)
	require.NoError(t, err)
	r, c := ones.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, mat.Row(nil, 0, ones))

	for _, forecast := range []bool{true, false} {
		two, err := TrendBasis(2, 7, forecast)
		require.NoError(t, err)
		assert.Equal(t, LinearSpace(7, forecast), mat.Row(nil, 1, two))
	}

	cubic, err := TrendBasis(4, 3, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 8}, mat.Row(nil, 3, cubic))
}

func TestSeasonalityBasis_ConstantRow(t *testing.T) {
	for _, length := range []int{2, 5, 8, 11} {
		s, err := SeasonalityBasis(3, length, true)
		require.NoError(t, err)
		row := mat.Row(nil, 0, s)
		cosLen := length / 2
		for j := 0; j < cosLen; j++ {
			assert.Equal(t, 1.0, row[j])
		}
		for j := cosLen; j < length; j++ {
			assert.Equal(t, 0.0, row[j])
		}
	}
}

func TestSeasonalityBasis_OddLengthHalves(t *testing.T) {
	for _, forecast := range []bool{true, false} {
		s, err := SeasonalityBasis(3, 5, forecast)
		require.NoError(t, err)
		_, c := s.Dims()
		require.Equal(t, 5, c)

		// cos half: 2 points over its own space, sin half: 3 points.
		tCos := LinearSpace(2, forecast)
		tSin := LinearSpace(3, forecast)
		for i := 0; i < 3; i++ {
			w := 2 * math.Pi * float64(i)
			for j, v := range tCos {
				assert.InDelta(t, math.Cos(w*v), s.At(i, j), 1e-12)
			}
			for j, v := range tSin {
				assert.InDelta(t, math.Sin(w*v), s.At(i, 2+j), 1e-12)
			}
		}
	}
}

func TestSeasonalityBasis_SinglePoint(t *testing.T) {
	s, err := SeasonalityBasis(2, 1, true)
	require.NoError(t, err)
	r, c := s.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
	// Only a sine point at t=0.
	assert.Equal(t, 0.0, s.At(0, 0))
	assert.Equal(t, 0.0, s.At(1, 0))
}

func TestBasis_InvalidDimensions(t *testing.T) {
	for _, fn := range []BasisFunc{TrendBasis, SeasonalityBasis} {
		_, err := fn(0, 5, true)
		assert.ErrorIs(t, err, ErrInvalidBasis)
		_, err = fn(3, 0, false)
		assert.ErrorIs(t, err, ErrInvalidBasis)
	}
}

func TestBasisCache(t *testing.T) {
	cache := NewBasisCache()

	a, err := cache.Get(Trend, 3, 10, false)
	require.NoError(t, err)
	b, err := cache.Get(Trend, 3, 10, false)
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := cache.Get(Trend, 3, 10, true)
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	_, err = cache.Get(Seasonality, 3, 10, false)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Len())

	_, err = cache.Get(Generic, 3, 10, false)
	assert.ErrorIs(t, err, ErrInvalidBasis)
	_, err = cache.Get(Trend, -1, 10, false)
	assert.ErrorIs(t, err, ErrInvalidBasis)
	assert.Equal(t, 3, cache.Len())
}

func TestBasisTensor(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	bt := basisTensor(m, cpu.New())
	assert.Equal(t, []int{2, 3}, []int(bt.Shape()))
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, bt.Data())
}
