package nbeats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockType(t *testing.T) {
	tests := []struct {
		name string
		want BlockType
	}{
		{"generic", Generic},
		{"Trend", Trend},
		{" seasonality ", Seasonality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBlockType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, got.Validate())
		})
	}

	_, err := ParseBlockType("wavelet")
	assert.ErrorIs(t, err, ErrUnknownBlockType)

	assert.ErrorIs(t, BlockType(0).Validate(), ErrUnknownBlockType)
	assert.ErrorIs(t, BlockType(9).Validate(), ErrUnknownBlockType)
	assert.Equal(t, "BlockType(9)", BlockType(9).String())

	assert.Nil(t, Generic.Basis())
	assert.NotNil(t, Trend.Basis())
	assert.NotNil(t, Seasonality.Basis())
	assert.Len(t, BlockTypes, 3)
}

func TestBlockType_Text(t *testing.T) {
	text, err := Seasonality.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "seasonality", string(text))

	var bt BlockType
	require.NoError(t, bt.UnmarshalText([]byte("trend")))
	assert.Equal(t, Trend, bt)
	assert.Error(t, bt.UnmarshalText([]byte("nope")))

	_, err = BlockType(0).MarshalText()
	assert.Error(t, err)
}

func TestParseBlockTypes(t *testing.T) {
	types, err := ParseBlockTypes([]string{"trend", "seasonality"})
	require.NoError(t, err)
	assert.Equal(t, []BlockType{Trend, Seasonality}, types)

	_, err = ParseBlockTypes([]string{"trend", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownBlockType)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.BackcastLength)
	assert.Equal(t, 5, cfg.ForecastLength)
	assert.Equal(t, 3, cfg.Layers())
	assert.Equal(t, 4, cfg.NbBlocks)
	assert.Equal(t, 3, cfg.Units)
	assert.Equal(t, []BlockType{Trend, Trend, Trend}, cfg.BlockTypes)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		unknown bool
	}{
		{"zero backcast", func(c *Config) { c.BackcastLength = 0 }, "BackcastLength", false},
		{"negative forecast", func(c *Config) { c.ForecastLength = -1 }, "ForecastLength", false},
		{"zero units", func(c *Config) { c.Units = 0 }, "Units", false},
		{"zero blocks", func(c *Config) { c.NbBlocks = 0 }, "NbBlocks", false},
		{"no stacks", func(c *Config) { c.BlockTypes = nil; c.NbLayers = 0 }, "BlockTypes", false},
		{"layer mismatch", func(c *Config) { c.NbLayers = 2 }, "NbLayers", false},
		{"negative layers", func(c *Config) { c.NbLayers = -1 }, "NbLayers", false},
		{"unknown type", func(c *Config) { c.BlockTypes = []BlockType{Trend, 42, Trend} }, "BlockTypes[1]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, tt.unknown, errors.Is(err, ErrUnknownBlockType))

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfig_LayersDefaultsToBlockTypes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NbLayers = 0
	cfg.BlockTypes = []BlockType{Trend, Seasonality}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Layers())
}
