package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

func TestClassifyPrecedence(t *testing.T) {
	// Size wins first: small clusters are nucleating no matter how
	// organized they look.
	assert.Equal(t, Nucleating, classify(4, 0.75))
	assert.Equal(t, Nucleating, classify(2, 0.99))

	assert.Equal(t, Mature, classify(5, 0.75))
	assert.Equal(t, Growing, classify(5, 0.6))
	assert.Equal(t, Dispersed, classify(5, 0.5))
	assert.Equal(t, Dispersed, classify(10, 0.1))
}

func TestUnreachableStatesDeclared(t *testing.T) {
	// The closed state set includes the two states no rule produces.
	assert.Equal(t, "disassembling", Disassembling.String())
	assert.Equal(t, "reconfiguring", Reconfiguring.String())
}

func TestAnalyzeStatistics(t *testing.T) {
	ps := []particle.Particle{
		{ID: 0, Pos: geom.Vec{0, 0, 0}, Vel: geom.Vec{1, 0, 0},
			Kind: particle.Nanotube, Activation: 0.4},
		{ID: 1, Pos: geom.Vec{2, 0, 0}, Vel: geom.Vec{1, 0, 0},
			Kind: particle.Graphene, Activation: 0.6},
	}

	a := Analyze(ps, []int{0, 1})

	assert.Equal(t, []int{0, 1}, a.Members)
	assert.Equal(t, 2, a.Size)
	assert.Equal(t, geom.Vec{1, 0, 0}, a.CenterOfMass)

	assert.InDelta(t, 0.5, a.MeanActivation, 1e-12)
	assert.InDelta(t, 0.9, a.Coherence, 1e-12) // std of {0.4, 0.6} is 0.1
	assert.InDelta(t, 0.45, a.Activation, 1e-12)

	// Two distinct kinds over two members.
	assert.InDelta(t, 1.0, a.InformationContent, 1e-12)

	// A single pairwise distance has zero spread.
	assert.InDelta(t, 1.0, a.SelfOrganization, 1e-12)

	// Identical velocities are perfectly coherent.
	assert.InDelta(t, 1.0, a.AdaptiveBehavior, 1e-12)

	assert.Equal(t, Nucleating, a.State)

	assert.InDelta(t, 2.0, a.Emergence.StructuralComplexity, 1e-12)
	assert.InDelta(t, a.SelfOrganization, a.Emergence.SpatialOrganization, 1e-12)
	assert.InDelta(t, a.Coherence, a.Emergence.ActivationCoherence, 1e-12)
	assert.InDelta(t, a.InformationContent, a.Emergence.InformationDensity, 1e-12)
	assert.InDelta(t, a.AdaptiveBehavior, a.Emergence.CollectiveBehavior, 1e-12)
}

func TestAnalyzeRestingClusterHasZeroAdaptiveBehavior(t *testing.T) {
	ps := []particle.Particle{
		{ID: 0, Pos: geom.Vec{0, 0, 0}, Activation: 0.5},
		{ID: 1, Pos: geom.Vec{1, 0, 0}, Activation: 0.5},
		{ID: 2, Pos: geom.Vec{0, 1, 0}, Activation: 0.5},
	}

	a := Analyze(ps, []int{0, 1, 2})
	assert.Zero(t, a.AdaptiveBehavior, "zero mean speed must not divide")
}

func TestAnalyzeMatureRegularCluster(t *testing.T) {
	// Five particles evenly spaced on a line: the pairwise spread is low
	// enough to clear the mature threshold.
	ps := make([]particle.Particle, 5)
	for i := range ps {
		ps[i] = particle.Particle{
			ID:  i,
			Pos: geom.Vec{float64(i) * 0.5, 0, 0},
			Vel: geom.Vec{0.2, 0, 0}, Activation: 0.5,
		}
	}

	a := Analyze(ps, []int{0, 1, 2, 3, 4})
	require.Equal(t, 5, a.Size)
	assert.Greater(t, a.SelfOrganization, growingAbove)
	assert.Contains(t, []State{Growing, Mature}, a.State)
}

func TestAnalyzeAll(t *testing.T) {
	ps := []particle.Particle{
		{ID: 0, Pos: geom.Vec{0, 0, 0}, Activation: 0.3},
		{ID: 1, Pos: geom.Vec{1, 0, 0}, Activation: 0.3},
		{ID: 2, Pos: geom.Vec{20, 0, 0}, Activation: 0.7},
		{ID: 3, Pos: geom.Vec{21, 0, 0}, Activation: 0.7},
	}

	groups := Clusters(ps, 3.0, 2)
	require.Len(t, groups, 2)

	as := AnalyzeAll(ps, groups)
	require.Len(t, as, 2)
	assert.Equal(t, []int{0, 1}, as[0].Members)
	assert.Equal(t, []int{2, 3}, as[1].Members)
}
