package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		BoxX: 20, BoxY: 20, BoxZ: 20,
		Temperature: 300,
		TimeStep:    0.001,
		TotalTime:   10,
		Particles:   50,
		GridRes:     8,
		Hotspots:    2,
		Epsilon:     0.1, Sigma: 1.0,
		CouplingK: 0.1, EmergenceK: 0.05, Cutoff: 5.0,
		ClusterCutoff:   3.0,
		MinAssemblySize: 2,
		FieldCadence:    10,
		AnalysisCadence: 100,
		HistoryCap:      100,
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		wreck func(*Config)
	}{
		{"zero box axis", func(c *Config) { c.BoxY = 0 }},
		{"negative box axis", func(c *Config) { c.BoxZ = -4 }},
		{"zero temperature", func(c *Config) { c.Temperature = 0 }},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }},
		{"zero total time", func(c *Config) { c.TotalTime = 0 }},
		{"zero particles", func(c *Config) { c.Particles = 0 }},
		{"grid res below 1", func(c *Config) { c.GridRes = 0 }},
		{"negative hotspots", func(c *Config) { c.Hotspots = -1 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"zero sigma", func(c *Config) { c.Sigma = 0 }},
		{"zero cutoff", func(c *Config) { c.Cutoff = 0 }},
		{"zero cluster cutoff", func(c *Config) { c.ClusterCutoff = 0 }},
		{"min assembly below 2", func(c *Config) { c.MinAssemblySize = 1 }},
		{"zero field cadence", func(c *Config) { c.FieldCadence = 0 }},
		{"zero analysis cadence", func(c *Config) { c.AnalysisCadence = 0 }},
		{"negative history cap", func(c *Config) { c.HistoryCap = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.wreck(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cerr *ConfigError
			assert.ErrorAs(t, err, &cerr)
			assert.NotEmpty(t, cerr.Field)
		})
	}
}

func TestReadConfigExampleFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "sim.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(ExampleConfigFile), 0644))

	cfg, err := ReadConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Particles)
	assert.Equal(t, 25, cfg.GridRes)
	assert.InDelta(t, 0.001, cfg.TimeStep, 1e-12)
	assert.InDelta(t, 5.0, cfg.Cutoff, 1e-12)
	assert.Equal(t, 10, cfg.FieldCadence)
	assert.Equal(t, 100, cfg.AnalysisCadence)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.cfg"))
	assert.Error(t, err)
}

func TestReadConfigInvalidValues(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "bad.cfg")
	require.NoError(t, os.WriteFile(fname, []byte(`[Simulation]
BoxX = -1
BoxY = 50
BoxZ = 50
Temperature = 300
TimeStep = 0.001
TotalTime = 100
Particles = 500
GridRes = 25
Hotspots = 3
Epsilon = 0.1
Sigma = 1.0
CouplingK = 0.1
EmergenceK = 0.05
Cutoff = 5.0
ClusterCutoff = 3.0
MinAssemblySize = 2
FieldCadence = 10
AnalysisCadence = 100
HistoryCap = 100
`), 0644))

	_, err := ReadConfig(fname)
	require.Error(t, err)

	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
}
