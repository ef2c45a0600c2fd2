package sim

import (
	"math"

	"github.com/nanoforge/nanosim/assembly"
	"github.com/nanoforge/nanosim/particle"
)

// Snapshot is an immutable step-boundary view of the whole system, for
// export and visualization collaborators. Nothing in it aliases live engine
// state.
type Snapshot struct {
	Step int64
	Time float64

	Particles []particle.Particle
	Field     []float64
	FieldRes  int

	Assemblies []assembly.Assembly
	Metrics    assembly.GlobalMetrics
	Report     SystemReport
}

// ActivationStats summarizes the particle activation distribution.
type ActivationStats struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// SystemReport breaks the system down by assembly lifecycle state and
// particle kind, with the activation distribution alongside.
type SystemReport struct {
	AssemblyStates map[string]int  `yaml:"assembly_states"`
	Kinds          map[string]int  `yaml:"kinds"`
	Activation     ActivationStats `yaml:"activation"`
}

// buildReport computes a SystemReport from the current assemblies and
// particles.
func buildReport(as []assembly.Assembly, ps []particle.Particle) SystemReport {
	r := SystemReport{
		AssemblyStates: map[string]int{},
		Kinds:          map[string]int{},
	}

	for i := range as {
		r.AssemblyStates[as[i].State.String()]++
	}
	for i := range ps {
		r.Kinds[ps[i].Kind.String()]++
	}

	if len(ps) == 0 {
		return r
	}

	mean, std := 0.0, 0.0
	min, max := math.Inf(1), math.Inf(-1)
	for i := range ps {
		a := ps[i].Activation
		mean += a
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	mean /= float64(len(ps))
	for i := range ps {
		d := ps[i].Activation - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(ps)))

	r.Activation = ActivationStats{Mean: mean, Std: std, Min: min, Max: max}
	return r
}
