package cycleroute

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents routing profile loaded from YAML file
type Config struct {
	Vehicle               string    `yaml:"vehicle"`
	Coefficients          []float64 `yaml:"coefficients"`
	UnconnectedMultiplier float64   `yaml:"unconnected_multiplier"`
	Metric                string    `yaml:"metric"`
	Workers               int       `yaml:"workers"`
	Tolerance             float64   `yaml:"tolerance"`
	OSM                   OSMConfig `yaml:"osm"`
}

// OSMConfig holds filter for OSM file loading
type OSMConfig struct {
	EntityName string   `yaml:"entity_name"`
	Tags       []string `yaml:"tags"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	coefficients := make([]float64, len(DefaultCoefficients))
	copy(coefficients, DefaultCoefficients)
	osmCfg := DefaultOsmConfiguration()
	return &Config{
		Vehicle:               VEHICLE_BICYCLE,
		Coefficients:          coefficients,
		UnconnectedMultiplier: DefaultUnconnectedMultiplier,
		Metric:                PlanarMetric{}.String(),
		Workers:               0,
		Tolerance:             DefaultTolerance,
		OSM: OSMConfig{
			EntityName: osmCfg.EntityName,
			Tags:       osmCfg.Tags,
		},
	}
}

// LoadConfig reads YAML file on top of DefaultConfig: omitted fields keep default values
func LoadConfig(fname string) (*Config, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read config")
	}
	return ParseConfig(b)
}

// ParseConfig decodes YAML document on top of DefaultConfig
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't decode config")
	}
	if _, err := cfg.ProcessorOptions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProcessorOptions converts configuration into options for NewProcessor
func (cfg *Config) ProcessorOptions() ([]func(*Processor), error) {
	metric, err := ParseMetric(cfg.Metric)
	if err != nil {
		return nil, errors.Wrap(err, "Bad metric")
	}
	if _, err := NewCoefficientCalculator(cfg.Coefficients); err != nil {
		return nil, err
	}
	if err := validateMultiplier(cfg.UnconnectedMultiplier, cfg.Coefficients); err != nil {
		return nil, err
	}
	return []func(*Processor){
		WithVehicle(cfg.Vehicle),
		WithCoefficients(cfg.Coefficients),
		WithUnconnectedMultiplier(cfg.UnconnectedMultiplier),
		WithMetric(metric),
		WithWorkers(cfg.Workers),
		WithTolerance(cfg.Tolerance),
	}, nil
}

// OsmConfiguration returns filter for LoadWaysFromOSM
func (cfg *Config) OsmConfiguration() *OsmConfiguration {
	entity := cfg.OSM.EntityName
	if entity == "" {
		entity = "highway"
	}
	return &OsmConfiguration{
		EntityName: entity,
		Tags:       cfg.OSM.Tags,
	}
}
