package nbeats

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/nbeats/internal/nn"
	"github.com/born-ml/nbeats/internal/tensor"
)

// hiddenLayers is the depth of the fully connected trunk of every block.
const hiddenLayers = 4

// BlockConfig describes a single block.
type BlockConfig struct {
	Type           BlockType
	Units          int // hidden width and theta dimensionality
	BackcastLength int
	ForecastLength int

	Name  string      // parameter name prefix, e.g. "stack0.block1"
	Rand  *rand.Rand  // weight initialization source
	Cache *BasisCache // shared basis cache; nil allocates a private one
}

// Validate checks the block configuration.
func (c BlockConfig) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return &ConfigError{Field: "Type", Reason: "unsupported block type", Err: err}
	}
	if c.Units <= 0 {
		return &ConfigError{Field: "Units", Reason: fmt.Sprintf("must be positive, got %d", c.Units)}
	}
	if c.BackcastLength <= 0 {
		return &ConfigError{Field: "BackcastLength", Reason: fmt.Sprintf("must be positive, got %d", c.BackcastLength)}
	}
	if c.ForecastLength <= 0 {
		return &ConfigError{Field: "ForecastLength", Reason: fmt.Sprintf("must be positive, got %d", c.ForecastLength)}
	}
	return nil
}

// Block maps an input window to a backcast and a forecast.
//
// The input runs through four ReLU dense layers of width Units, then two
// independent linear heads produce theta_b and theta_f. Generic blocks decode
// each theta with a learned linear layer; trend and seasonality blocks
// multiply theta by a fixed basis matrix.
type Block[B tensor.Backend] struct {
	cfg    BlockConfig
	fc     *nn.Sequential[B]
	hidden []*nn.Linear[B]
	thetaB *nn.Linear[B]
	thetaF *nn.Linear[B]

	// Generic decoders.
	backcastFC *nn.Linear[B]
	forecastFC *nn.Linear[B]

	// Basis decoders, [units, length]. Not trainable.
	backcastBasis *tensor.Tensor[float32, B]
	forecastBasis *tensor.Tensor[float32, B]
}

// NewBlock creates a block, validating the configuration first.
func NewBlock[B tensor.Backend](cfg BlockConfig, backend B) (*Block[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := func(layer string) nn.LinearOption {
		if cfg.Name == "" {
			return nn.WithName(layer)
		}
		return nn.WithName(cfg.Name + "." + layer)
	}
	rng := nn.WithRand(cfg.Rand)

	b := &Block[B]{cfg: cfg, fc: nn.NewSequential[B]()}
	in := cfg.BackcastLength
	for i := 0; i < hiddenLayers; i++ {
		l := nn.NewLinear(in, cfg.Units, backend, name(fmt.Sprintf("fc%d", i)), rng)
		b.hidden = append(b.hidden, l)
		b.fc.Add(l)
		b.fc.Add(nn.NewReLU[B]())
		in = cfg.Units
	}
	b.thetaB = nn.NewLinear(cfg.Units, cfg.Units, backend, name("theta_b"), rng)
	b.thetaF = nn.NewLinear(cfg.Units, cfg.Units, backend, name("theta_f"), rng)

	if cfg.Type == Generic {
		b.backcastFC = nn.NewLinear(cfg.Units, cfg.BackcastLength, backend, name("backcast"), rng)
		b.forecastFC = nn.NewLinear(cfg.Units, cfg.ForecastLength, backend, name("forecast"), rng)
		return b, nil
	}

	cache := cfg.Cache
	if cache == nil {
		cache = NewBasisCache()
	}
	back, err := cache.Get(cfg.Type, cfg.Units, cfg.BackcastLength, false)
	if err != nil {
		return nil, fmt.Errorf("backcast basis: %w", err)
	}
	fwd, err := cache.Get(cfg.Type, cfg.Units, cfg.ForecastLength, true)
	if err != nil {
		return nil, fmt.Errorf("forecast basis: %w", err)
	}
	b.backcastBasis = basisTensor(back, backend)
	b.forecastBasis = basisTensor(fwd, backend)
	return b, nil
}

// Forward returns (backcast, forecast) for x of shape [batch, BackcastLength].
//
// Panics on a shape mismatch; call Check first to get an error instead.
func (b *Block[B]) Forward(x *tensor.Tensor[float32, B]) (backcast, forecast *tensor.Tensor[float32, B]) {
	h := b.fc.Forward(x)
	thetaB := b.thetaB.Forward(h)
	thetaF := b.thetaF.Forward(h)

	if b.cfg.Type == Generic {
		return b.backcastFC.Forward(thetaB), b.forecastFC.Forward(thetaF)
	}
	return thetaB.MatMul(b.backcastBasis), thetaF.MatMul(b.forecastBasis)
}

// Check validates that x is [batch, BackcastLength] with batch > 0.
func (b *Block[B]) Check(x *tensor.Tensor[float32, B]) error {
	return checkInput(x.Shape(), b.cfg.BackcastLength)
}

// Parameters returns the trainable parameters in layer order.
func (b *Block[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, l := range b.Linears() {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Linears returns the dense layers in order: fc0..fc3, theta_b, theta_f and,
// for generic blocks, the backcast and forecast decoders.
func (b *Block[B]) Linears() []*nn.Linear[B] {
	layers := append([]*nn.Linear[B]{}, b.hidden...)
	layers = append(layers, b.thetaB, b.thetaF)
	if b.backcastFC != nil {
		layers = append(layers, b.backcastFC, b.forecastFC)
	}
	return layers
}

// Type returns the block type.
func (b *Block[B]) Type() BlockType {
	return b.cfg.Type
}

// BackcastBasis returns the backcast basis tensor, or nil for generic blocks.
func (b *Block[B]) BackcastBasis() *tensor.Tensor[float32, B] {
	return b.backcastBasis
}

// ForecastBasis returns the forecast basis tensor, or nil for generic blocks.
func (b *Block[B]) ForecastBasis() *tensor.Tensor[float32, B] {
	return b.forecastBasis
}

func checkInput(shape tensor.Shape, backcastLength int) error {
	if len(shape) != 2 || shape[0] <= 0 || shape[1] != backcastLength {
		return fmt.Errorf("%w: expected [batch, %d], got %v", ErrShapeMismatch, backcastLength, shape)
	}
	return nil
}
