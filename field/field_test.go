package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

func newTestField(res, hotspots, historyCap int) *Field {
	rng := rand.New(rand.NewSource(99))
	return New(res, geom.Box{50, 50, 50}, hotspots, historyCap, rng)
}

func TestNewFieldRange(t *testing.T) {
	f := newTestField(16, 3, 10)

	assert.Equal(t, 16, f.Res())
	for _, v := range f.Values() {
		assert.True(t, v >= 0 && v <= 1, "cell values stay in [0,1]")
	}
}

func TestSampleClamps(t *testing.T) {
	f := newTestField(8, 0, 10)

	// Inside, on the upper edge, and outside the box all resolve to a cell.
	for _, pos := range []geom.Vec{
		{25, 25, 25}, {50, 50, 50}, {-3, 60, 25},
	} {
		v := f.Sample(pos)
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestDepositRaisesLocalField(t *testing.T) {
	f := newTestField(16, 0, 10)

	p := particle.Particle{
		Pos:        geom.Vec{25, 25, 25},
		Size:       2.0,
		Activation: 1.0,
	}

	before := f.Sample(p.Pos)
	for i := 0; i < 10; i++ {
		f.Deposit([]particle.Particle{p})
	}
	after := f.Sample(p.Pos)

	assert.Greater(t, after, before,
		"repeated deposits must raise the field at the particle")
	for _, v := range f.Values() {
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestDepositHandlesEdgeParticles(t *testing.T) {
	f := newTestField(8, 0, 4)

	// A particle right at the box corner must not index out of bounds.
	p := particle.Particle{
		Pos:        geom.Vec{0, 0, 49.999},
		Size:       5.0,
		Activation: 0.8,
	}
	f.Deposit([]particle.Particle{p})

	for _, v := range f.Values() {
		assert.False(t, v < 0 || v > 1)
	}
}

func TestHistoryCap(t *testing.T) {
	f := newTestField(8, 0, 3)
	require.Zero(t, f.HistoryLen())

	p := particle.Particle{Pos: geom.Vec{25, 25, 25}, Size: 1, Activation: 0.5}
	for i := 0; i < 7; i++ {
		f.Deposit([]particle.Particle{p})
	}

	assert.Equal(t, 3, f.HistoryLen(), "history evicts past its cap")
}

func TestDepositEmptyStore(t *testing.T) {
	f := newTestField(8, 1, 4)

	before := f.Values()
	f.Deposit(nil)
	after := f.Values()

	// Blending against a zero source decays the field but stays in range.
	for i := range after {
		assert.True(t, after[i] <= before[i]+1e-12)
		assert.True(t, after[i] >= 0)
	}
	assert.Equal(t, 1, f.HistoryLen())
}
