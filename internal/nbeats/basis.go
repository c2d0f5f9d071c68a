package nbeats

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/nbeats/internal/tensor"
)

// BasisFunc builds a (p × length) basis matrix for one direction.
type BasisFunc func(p, length int, forecast bool) (*mat.Dense, error)

// LinearSpace returns length evenly spaced time coordinates.
//
// Forecast coordinates span [0, length-1], the steps after the forecast
// origin. Backcast coordinates span [-length, 0], the window leading up to
// it. A single point is the start of the range. Non-positive lengths give
// an empty slice.
func LinearSpace(length int, forecast bool) []float64 {
	if length <= 0 {
		return []float64{}
	}

	lo, hi := -float64(length), 0.0
	if forecast {
		lo, hi = 0, float64(length-1)
	}

	t := make([]float64, length)
	if length == 1 {
		t[0] = lo
		return t
	}
	return floats.Span(t, lo, hi)
}

// TrendBasis returns the polynomial basis whose row i is t^i.
// Row 0 is all ones and row 1 is the linear space itself.
func TrendBasis(p, length int, forecast bool) (*mat.Dense, error) {
	if err := checkBasis(p, length); err != nil {
		return nil, err
	}

	t := LinearSpace(length, forecast)
	basis := mat.NewDense(p, length, nil)
	for i := 0; i < p; i++ {
		for j, v := range t {
			basis.Set(i, j, math.Pow(v, float64(i)))
		}
	}
	return basis, nil
}

// SeasonalityBasis returns the Fourier basis for p harmonics.
//
// The window is split into a cosine half of ⌊length/2⌋ points followed by
// a sine half of ⌈length/2⌉ points, each over its own linear space. Row i
// holds cos(2π·i·t) on the first half and sin(2π·i·t) on the second.
func SeasonalityBasis(p, length int, forecast bool) (*mat.Dense, error) {
	if err := checkBasis(p, length); err != nil {
		return nil, err
	}

	cosLen := length / 2
	sinLen := length - cosLen
	tCos := LinearSpace(cosLen, forecast)
	tSin := LinearSpace(sinLen, forecast)

	basis := mat.NewDense(p, length, nil)
	for i := 0; i < p; i++ {
		w := 2 * math.Pi * float64(i)
		for j, v := range tCos {
			basis.Set(i, j, math.Cos(w*v))
		}
		for j, v := range tSin {
			basis.Set(i, cosLen+j, math.Sin(w*v))
		}
	}
	return basis, nil
}

func checkBasis(p, length int) error {
	if p <= 0 || length <= 0 {
		return fmt.Errorf("%w: p=%d length=%d", ErrInvalidBasis, p, length)
	}
	return nil
}

type basisKey struct {
	kind     BlockType
	p        int
	length   int
	forecast bool
}

// BasisCache memoizes basis matrices by (type, p, length, direction).
// It is safe for concurrent use. Cached matrices must not be modified.
type BasisCache struct {
	mu      sync.Mutex
	entries map[basisKey]*mat.Dense
}

// NewBasisCache creates an empty cache.
func NewBasisCache() *BasisCache {
	return &BasisCache{entries: make(map[basisKey]*mat.Dense)}
}

// Get returns the cached basis, building it on first use.
func (c *BasisCache) Get(kind BlockType, p, length int, forecast bool) (*mat.Dense, error) {
	fn := kind.Basis()
	if fn == nil {
		return nil, fmt.Errorf("%w: %s has no basis", ErrInvalidBasis, kind)
	}

	key := basisKey{kind: kind, p: p, length: length, forecast: forecast}
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.entries[key]; ok {
		return m, nil
	}
	m, err := fn(p, length, forecast)
	if err != nil {
		return nil, err
	}
	c.entries[key] = m
	return m, nil
}

// Len returns the number of cached matrices.
func (c *BasisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// basisTensor copies a basis matrix into a float32 tensor on backend.
func basisTensor[B tensor.Backend](m *mat.Dense, backend B) *tensor.Tensor[float32, B] {
	r, c := m.Dims()
	t := tensor.Zeros[float32](tensor.Shape{r, c}, backend)
	data := t.Data()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = float32(m.At(i, j))
		}
	}
	return t
}
