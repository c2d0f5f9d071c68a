package nbeats

import (
	"fmt"
)

// Config describes a network.
type Config struct {
	BackcastLength int         // input window length
	ForecastLength int         // output window length
	NbLayers       int         // number of stacks; 0 means len(BlockTypes)
	NbBlocks       int         // blocks per stack
	Units          int         // hidden width and theta dimensionality (nb_thetas)
	BlockTypes     []BlockType // one per stack
	Seed           int64       // weight initialization seed
}

// DefaultConfig returns the reference configuration: three trend stacks of
// four blocks with three thetas, mapping 10 points to 5.
func DefaultConfig() Config {
	return Config{
		BackcastLength: 10,
		ForecastLength: 5,
		NbLayers:       3,
		NbBlocks:       4,
		Units:          3,
		BlockTypes:     []BlockType{Trend, Trend, Trend},
		Seed:           1,
	}
}

// Validate reports the first invalid field. All returned errors match
// ErrInvalidConfig; unknown block types also match ErrUnknownBlockType.
func (c Config) Validate() error {
	switch {
	case c.BackcastLength <= 0:
		return &ConfigError{Field: "BackcastLength", Reason: fmt.Sprintf("must be positive, got %d", c.BackcastLength)}
	case c.ForecastLength <= 0:
		return &ConfigError{Field: "ForecastLength", Reason: fmt.Sprintf("must be positive, got %d", c.ForecastLength)}
	case c.Units <= 0:
		return &ConfigError{Field: "Units", Reason: fmt.Sprintf("must be positive, got %d", c.Units)}
	case c.NbBlocks <= 0:
		return &ConfigError{Field: "NbBlocks", Reason: fmt.Sprintf("must be positive, got %d", c.NbBlocks)}
	case len(c.BlockTypes) == 0:
		return &ConfigError{Field: "BlockTypes", Reason: "at least one stack is required"}
	case c.NbLayers < 0:
		return &ConfigError{Field: "NbLayers", Reason: fmt.Sprintf("must not be negative, got %d", c.NbLayers)}
	case c.NbLayers != 0 && c.NbLayers != len(c.BlockTypes):
		return &ConfigError{
			Field:  "NbLayers",
			Reason: fmt.Sprintf("%d layers but %d block types", c.NbLayers, len(c.BlockTypes)),
		}
	}

	for i, bt := range c.BlockTypes {
		if err := bt.Validate(); err != nil {
			return &ConfigError{Field: fmt.Sprintf("BlockTypes[%d]", i), Reason: "unsupported block type", Err: err}
		}
	}
	return nil
}

// Layers returns the effective number of stacks.
func (c Config) Layers() int {
	if c.NbLayers == 0 {
		return len(c.BlockTypes)
	}
	return c.NbLayers
}
