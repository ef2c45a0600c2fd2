/*package sim owns the simulation controller: configuration, the engine
with its step loop and cadences, step-boundary snapshots, and run
summaries.
*/
package sim

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// ExampleConfigFile documents every parameter of the [Simulation] section.
const ExampleConfigFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Dimensions of the periodic box, in nanometers.
BoxX = 50
BoxY = 50
BoxZ = 50

# Target temperature in Kelvin. Only used to seed the initial velocity
# magnitudes.
Temperature = 300

# Integration time step and total simulated duration, in picoseconds.
TimeStep  = 0.001
TotalTime = 100

# Number of particles created at initialization. The count is fixed for the
# whole run.
Particles = 500

# Cells per axis of the activation field grid.
GridRes = 25

# Number of Gaussian hotspots seeded into the initial field. May be zero.
Hotspots = 3

# Force model constants: Lennard-Jones well depth and length scale, the
# activation-coupling strength, the emergence strength, and the hard
# interaction cutoff (nm).
Epsilon    = 0.1
Sigma      = 1.0
CouplingK  = 0.1
EmergenceK = 0.05
Cutoff     = 5.0

# Distance below which two particles are linked during clustering (nm), and
# the smallest group that counts as an assembly.
ClusterCutoff   = 3.0
MinAssemblySize = 2

# Cadences, in integration steps: how often the field re-sources from the
# particles and how often the cluster/assembly/metrics passes run.
FieldCadence    = 10
AnalysisCadence = 100

# Maximum number of field source grids kept in history.
HistoryCap = 100

#######################
# Optional Parameters #
#######################

# RNG seed. 0 (the default) seeds from the clock.
# Seed = 12345

# Worker count for the force pass. 0 (the default) uses all logical cores.
# Workers = 4`

// Config holds every engine parameter. All required fields are validated at
// construction; see Validate.
type Config struct {
	BoxX, BoxY, BoxZ float64

	Temperature float64
	TimeStep    float64
	TotalTime   float64

	Particles int
	GridRes   int
	Hotspots  int

	Epsilon    float64
	Sigma      float64
	CouplingK  float64
	EmergenceK float64
	Cutoff     float64

	ClusterCutoff   float64
	MinAssemblySize int

	FieldCadence    int
	AnalysisCadence int
	HistoryCap      int

	// Optional.
	Seed    int64
	Workers int
}

// Wrapper names the gcfg section.
type Wrapper struct {
	Simulation Config
}

// DefaultWrapper returns a wrapper with the optional parameters at their
// defaults. Required parameters are left zero so Validate catches missing
// ones.
func DefaultWrapper() *Wrapper {
	return &Wrapper{Simulation: Config{Seed: 0, Workers: 0}}
}

// ReadConfig parses a gcfg configuration file and validates it.
func ReadConfig(fname string) (*Config, error) {
	wrap := DefaultWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	con := &wrap.Simulation
	if err := con.Validate(); err != nil {
		return nil, err
	}
	return con, nil
}

// ConfigError reports a rejected configuration field. It is only ever
// produced at construction, never mid-run.
type ConfigError struct {
	Field, Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

func (con *Config) ValidBox() bool {
	return con.BoxX > 0 && con.BoxY > 0 && con.BoxZ > 0
}
func (con *Config) ValidTemperature() bool { return con.Temperature > 0 }
func (con *Config) ValidTimeStep() bool    { return con.TimeStep > 0 }
func (con *Config) ValidTotalTime() bool   { return con.TotalTime > 0 }
func (con *Config) ValidParticles() bool   { return con.Particles > 0 }
func (con *Config) ValidGridRes() bool     { return con.GridRes >= 1 }
func (con *Config) ValidHotspots() bool    { return con.Hotspots >= 0 }
func (con *Config) ValidForceModel() bool {
	return con.Epsilon > 0 && con.Sigma > 0 && con.Cutoff > 0
}
func (con *Config) ValidClusterCutoff() bool { return con.ClusterCutoff > 0 }
func (con *Config) ValidMinAssemblySize() bool {
	return con.MinAssemblySize >= 2
}
func (con *Config) ValidCadences() bool {
	return con.FieldCadence >= 1 && con.AnalysisCadence >= 1
}
func (con *Config) ValidHistoryCap() bool { return con.HistoryCap >= 0 }
func (con *Config) ValidWorkers() bool    { return con.Workers >= 0 }

// Validate checks every parameter and returns a ConfigError naming the
// first offending field.
func (con *Config) Validate() error {
	switch {
	case !con.ValidBox():
		return &ConfigError{"BoxX/BoxY/BoxZ", "must all be positive"}
	case !con.ValidTemperature():
		return &ConfigError{"Temperature", "must be positive"}
	case !con.ValidTimeStep():
		return &ConfigError{"TimeStep", "must be positive"}
	case !con.ValidTotalTime():
		return &ConfigError{"TotalTime", "must be positive"}
	case !con.ValidParticles():
		return &ConfigError{"Particles", "must be a positive integer"}
	case !con.ValidGridRes():
		return &ConfigError{"GridRes", "must be at least 1"}
	case !con.ValidHotspots():
		return &ConfigError{"Hotspots", "must be non-negative"}
	case !con.ValidForceModel():
		return &ConfigError{"Epsilon/Sigma/Cutoff", "must all be positive"}
	case !con.ValidClusterCutoff():
		return &ConfigError{"ClusterCutoff", "must be positive"}
	case !con.ValidMinAssemblySize():
		return &ConfigError{"MinAssemblySize", "must be at least 2"}
	case !con.ValidCadences():
		return &ConfigError{"FieldCadence/AnalysisCadence", "must be at least 1"}
	case !con.ValidHistoryCap():
		return &ConfigError{"HistoryCap", "must be non-negative"}
	case !con.ValidWorkers():
		return &ConfigError{"Workers", "must be non-negative"}
	}
	return nil
}
