package assembly

import (
	"math"

	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

// State is the discrete lifecycle label of an assembly.
type State int

const (
	Dispersed State = iota
	Nucleating
	Growing
	Mature
	// Disassembling and Reconfiguring are declared lifecycle states that the
	// current threshold rules never produce. They are kept so the state set
	// stays closed for consumers; no transition rule targets them.
	Disassembling
	Reconfiguring
)

var stateNames = []string{
	"dispersed", "nucleating", "growing", "mature",
	"disassembling", "reconfiguring",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Lifecycle thresholds, applied in precedence order by classify.
const (
	nucleatingBelow = 5
	matureAbove     = 0.7
	growingAbove    = 0.5
)

// EmergenceMetrics is the named-scalar bundle exposed per assembly.
type EmergenceMetrics struct {
	StructuralComplexity float64 `yaml:"structural_complexity"`
	SpatialOrganization  float64 `yaml:"spatial_organization"`
	ActivationCoherence  float64 `yaml:"activation_coherence"`
	InformationDensity   float64 `yaml:"information_density"`
	CollectiveBehavior   float64 `yaml:"collective_behavior"`
}

// Assembly is a transient derived entity: one connected component and its
// statistics. Assemblies are recomputed from scratch each analysis pass and
// carry no identity across passes.
type Assembly struct {
	Members []int // particle IDs, ascending
	Size    int

	CenterOfMass geom.Vec

	MeanActivation float64
	Coherence      float64 // 1 - stddev of member activation
	// Activation is the assembly's combined level: mean * coherence.
	Activation float64

	InformationContent float64
	SelfOrganization   float64
	AdaptiveBehavior   float64

	State     State
	Emergence EmergenceMetrics
}

// Analyze computes the statistics and lifecycle state for one cluster,
// given as indices into ps.
func Analyze(ps []particle.Particle, members []int) Assembly {
	n := len(members)
	a := Assembly{
		Members: make([]int, n),
		Size:    n,
	}

	acts := make([]float64, n)
	for i, idx := range members {
		p := &ps[idx]
		a.Members[i] = p.ID
		a.CenterOfMass.AddSelf(p.Pos)
		acts[i] = p.Activation
	}
	a.CenterOfMass = a.CenterOfMass.Scale(1 / float64(n))

	meanAct, stdAct := meanStd(acts)
	a.MeanActivation = meanAct
	a.Coherence = 1 - stdAct
	a.Activation = meanAct * a.Coherence

	a.InformationContent = informationContent(ps, members)
	a.SelfOrganization = selfOrganization(ps, members)
	a.AdaptiveBehavior = adaptiveBehavior(ps, members)
	a.State = classify(n, a.SelfOrganization)

	a.Emergence = EmergenceMetrics{
		StructuralComplexity: float64(distinctKinds(ps, members)),
		SpatialOrganization:  a.SelfOrganization,
		ActivationCoherence:  a.Coherence,
		InformationDensity:   a.InformationContent,
		CollectiveBehavior:   a.AdaptiveBehavior,
	}

	return a
}

// AnalyzeAll runs Analyze over every cluster.
func AnalyzeAll(ps []particle.Particle, groups [][]int) []Assembly {
	out := make([]Assembly, len(groups))
	for i, g := range groups {
		out[i] = Analyze(ps, g)
	}
	return out
}

// classify applies the fixed thresholds in precedence order.
func classify(size int, selfOrg float64) State {
	switch {
	case size < nucleatingBelow:
		return Nucleating
	case selfOrg > matureAbove:
		return Mature
	case selfOrg > growingAbove:
		return Growing
	default:
		return Dispersed
	}
}

// informationContent is the kind diversity: distinct kinds / member count.
func informationContent(ps []particle.Particle, members []int) float64 {
	return float64(distinctKinds(ps, members)) / float64(len(members))
}

func distinctKinds(ps []particle.Particle, members []int) int {
	var seen [particle.KindCount]bool
	count := 0
	for _, idx := range members {
		k := ps[idx].Kind
		if !seen[k] {
			seen[k] = true
			count++
		}
	}
	return count
}

// selfOrganization is 1/(1 + stddev(pairwise dist)/mean(pairwise dist)).
// A cluster collapsed to a point has no spread to normalize against and
// counts as fully organized.
func selfOrganization(ps []particle.Particle, members []int) float64 {
	n := len(members)
	dists := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dists = append(dists, math.Sqrt(
				dist2(&ps[members[i]], &ps[members[j]])))
		}
	}

	mean, std := meanStd(dists)
	if mean == 0 {
		return 1
	}
	return 1 / (1 + std/mean)
}

// adaptiveBehavior is the velocity coherence: |mean velocity| over the mean
// speed, 0 when the members are at rest.
func adaptiveBehavior(ps []particle.Particle, members []int) float64 {
	var meanVel geom.Vec
	meanSpeed := 0.0
	for _, idx := range members {
		meanVel.AddSelf(ps[idx].Vel)
		meanSpeed += ps[idx].Vel.Norm()
	}
	n := float64(len(members))
	meanSpeed /= n

	if meanSpeed == 0 {
		return 0
	}
	return meanVel.Scale(1 / n).Norm() / meanSpeed
}

// meanStd returns the mean and population standard deviation.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	for _, x := range xs {
		d := x - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(xs)))
	return mean, std
}
