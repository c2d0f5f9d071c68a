package nbeats

import (
	"fmt"
	"strings"
)

// BlockType selects how a block decodes its theta coefficients.
// The zero value is invalid so an unset type is caught by Validate.
type BlockType int

const (
	// Generic blocks decode theta with learned linear projections.
	Generic BlockType = iota + 1
	// Trend blocks project theta onto a polynomial basis.
	Trend
	// Seasonality blocks project theta onto a Fourier basis.
	Seasonality
)

// BlockTypes lists every valid block type.
var BlockTypes = []BlockType{Generic, Trend, Seasonality}

// String returns the lowercase block type name.
func (bt BlockType) String() string {
	switch bt {
	case Generic:
		return "generic"
	case Trend:
		return "trend"
	case Seasonality:
		return "seasonality"
	default:
		return fmt.Sprintf("BlockType(%d)", int(bt))
	}
}

// Validate returns ErrUnknownBlockType for values outside the enum.
func (bt BlockType) Validate() error {
	switch bt {
	case Generic, Trend, Seasonality:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownBlockType, int(bt))
	}
}

// Basis returns the basis generator for the type, or nil for Generic.
func (bt BlockType) Basis() BasisFunc {
	switch bt {
	case Trend:
		return TrendBasis
	case Seasonality:
		return SeasonalityBasis
	default:
		return nil
	}
}

// MarshalText implements encoding.TextMarshaler.
func (bt BlockType) MarshalText() ([]byte, error) {
	if err := bt.Validate(); err != nil {
		return nil, err
	}
	return []byte(bt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (bt *BlockType) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockType(string(text))
	if err != nil {
		return err
	}
	*bt = parsed
	return nil
}

// ParseBlockType parses a block type name, case-insensitively.
func ParseBlockType(name string) (BlockType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "generic":
		return Generic, nil
	case "trend":
		return Trend, nil
	case "seasonality":
		return Seasonality, nil
	default:
		return 0, fmt.Errorf("%w: %q (want generic, trend or seasonality)", ErrUnknownBlockType, name)
	}
}

// ParseBlockTypes parses a list of block type names.
func ParseBlockTypes(names []string) ([]BlockType, error) {
	types := make([]BlockType, 0, len(names))
	for i, name := range names {
		bt, err := ParseBlockType(name)
		if err != nil {
			return nil, fmt.Errorf("block type %d: %w", i, err)
		}
		types = append(types, bt)
	}
	return types, nil
}
