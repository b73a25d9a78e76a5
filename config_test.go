package cycleroute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, VEHICLE_BICYCLE, cfg.Vehicle)
	assert.Equal(t, DefaultCoefficients, cfg.Coefficients)
	assert.Equal(t, DefaultUnconnectedMultiplier, cfg.UnconnectedMultiplier)
	assert.Equal(t, "planar", cfg.Metric)
	assert.Equal(t, "highway", cfg.OSM.EntityName)

	options, err := cfg.ProcessorOptions()
	require.NoError(t, err)
	processor := NewProcessor(options...)
	assert.Equal(t, NewProcessor().String(), processor.String())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
vehicle: foot
coefficients: [1, 1.5, 4, 40]
metric: haversine
osm:
  tags: [footway, path]
`))
	require.NoError(t, err)
	assert.Equal(t, "foot", cfg.Vehicle)
	assert.Equal(t, []float64{1, 1.5, 4, 40}, cfg.Coefficients)
	assert.Equal(t, "haversine", cfg.Metric)
	// Omitted fields keep defaults
	assert.Equal(t, DefaultUnconnectedMultiplier, cfg.UnconnectedMultiplier)
	assert.Equal(t, DefaultTolerance, cfg.Tolerance)

	osmCfg := cfg.OsmConfiguration()
	assert.Equal(t, "highway", osmCfg.EntityName)
	assert.Equal(t, []string{"footway", "path"}, osmCfg.Tags)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte(`metric: manhattan`))
	assert.Error(t, err)

	_, err = ParseConfig([]byte(`unconnected_multiplier: 10`))
	assert.ErrorIs(t, err, ErrMultiplierTooSmall)

	_, err = ParseConfig([]byte(`coefficients: [1, 2]`))
	assert.ErrorIs(t, err, ErrInvalidCoefficients)

	_, err = ParseConfig([]byte(`coefficients: {`))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("workers: 3\n"), 0644))
	cfg, err := LoadConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
