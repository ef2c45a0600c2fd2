package assembly

import (
	"github.com/nanoforge/nanosim/particle"
)

// integrationEps keeps the information-integration ratio finite when the
// mean assembly activation is zero.
const integrationEps = 1e-10

// Emergence index weights.
const (
	weightSelfOrganization = 0.3
	weightAdaptiveBehavior = 0.3
	weightActivation       = 0.4
)

// GlobalMetrics is the scalar rollup over the current assembly set.
type GlobalMetrics struct {
	GlobalActivation       float64 `yaml:"global_activation"`
	InformationIntegration float64 `yaml:"information_integration"`
	EmergenceIndex         float64 `yaml:"emergence_index"`

	Particles  int `yaml:"particles"`
	Assemblies int `yaml:"assemblies"`
}

// Aggregate rolls per-assembly metrics into global scalars. With no
// assemblies the global activation falls back to the mean particle
// activation and the other metrics are zero; with no particles everything
// is zero.
func Aggregate(assemblies []Assembly, ps []particle.Particle) GlobalMetrics {
	m := GlobalMetrics{
		Particles:  len(ps),
		Assemblies: len(assemblies),
	}

	if len(assemblies) == 0 {
		if len(ps) > 0 {
			sum := 0.0
			for i := range ps {
				sum += ps[i].Activation
			}
			m.GlobalActivation = sum / float64(len(ps))
		}
		return m
	}

	// Size-weighted mean of assembly activation.
	weighted, totalSize := 0.0, 0
	for i := range assemblies {
		weighted += assemblies[i].Activation * float64(assemblies[i].Size)
		totalSize += assemblies[i].Size
	}
	if totalSize > 0 {
		m.GlobalActivation = weighted / float64(totalSize)
	}

	if len(assemblies) > 1 {
		acts := make([]float64, len(assemblies))
		for i := range assemblies {
			acts[i] = assemblies[i].Activation
		}
		mean, std := meanStd(acts)
		m.InformationIntegration = 1 - std/(mean+integrationEps)
	}

	sum := 0.0
	for i := range assemblies {
		a := &assemblies[i]
		sum += weightSelfOrganization*a.SelfOrganization +
			weightAdaptiveBehavior*a.AdaptiveBehavior +
			weightActivation*a.Activation
	}
	m.EmergenceIndex = sum / float64(len(assemblies))

	return m
}
