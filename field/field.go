/*package field implements the activation field: a cubic scalar grid over
the simulation box that is sourced by particle activation, blended over
time, and sampled back into the particles. Grid values always stay in
[0, 1]. The field keeps a bounded history of recent source grids.
*/
package field

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

const (
	// alpha is the temporal smoothing factor used when blending a freshly
	// deposited source grid into the live grid.
	alpha = 0.1

	// hotspotAmp and hotspotFalloff shape the initial Gaussian hotspots.
	hotspotAmp     = 0.5
	hotspotFalloff = 50.0

	// baseAmp bounds the noise floor the grid is seeded with.
	baseAmp = 0.1

	// noiseScale stretches the Perlin lattice across the grid.
	noiseScale = 4.0
)

// Field is the live activation grid plus its history and the carried
// coherence parameters. It is owned and mutated exclusively by the
// simulation controller.
type Field struct {
	grid *geom.Grid
	box  geom.Box

	values  []float64
	scratch []float64

	history    [][]float64
	historyCap int

	// CoherenceLength and EntanglementDensity are configuration-carried
	// parameters; they do not enter the update rules.
	CoherenceLength     float64
	EntanglementDensity float64
}

// New builds a field of res cells per axis over box, seeded with low-level
// Perlin noise and the requested number of Gaussian hotspots.
func New(res int, box geom.Box, hotspots, historyCap int, rng *rand.Rand) *Field {
	f := &Field{
		grid:                geom.NewGrid(res),
		box:                 box,
		historyCap:          historyCap,
		CoherenceLength:     10.0,
		EntanglementDensity: 0.1,
	}
	f.values = make([]float64, f.grid.Volume)
	f.scratch = make([]float64, f.grid.Volume)

	noise := perlin.NewPerlin(2, 2, 3, rng.Int63())
	inv := 1.0 / float64(res)
	for idx := range f.values {
		x, y, z := f.grid.Coords(idx)
		n := noise.Noise3D(
			float64(x)*inv*noiseScale,
			float64(y)*inv*noiseScale,
			float64(z)*inv*noiseScale,
		)
		// Noise3D is roughly in [-1, 1]; fold it into [0, baseAmp].
		f.values[idx] = baseAmp * 0.5 * (1 + n)
	}

	for h := 0; h < hotspots; h++ {
		hx := rng.Intn(res)
		hy := rng.Intn(res)
		hz := rng.Intn(res)
		for idx := range f.values {
			x, y, z := f.grid.Coords(idx)
			dx, dy, dz := float64(x-hx), float64(y-hy), float64(z-hz)
			d2 := dx*dx + dy*dy + dz*dz
			f.values[idx] += hotspotAmp * math.Exp(-d2/hotspotFalloff)
		}
	}

	clip(f.values)
	return f
}

// Res returns the cell count per axis.
func (f *Field) Res() int { return f.grid.Cells }

// Sample returns the field value at the cell nearest to pos. Out-of-box
// positions clamp to the boundary cells.
func (f *Field) Sample(pos geom.Vec) float64 {
	return f.values[f.grid.IdxOf(pos, f.box)]
}

// Deposit rebuilds the source grid from the current particles and blends it
// into the live grid. Each particle contributes a Gaussian bump centered on
// its cell, weighted by its activation, with a deposit width set by its
// size. The source grid is recorded in the history.
func (f *Field) Deposit(ps []particle.Particle) {
	for i := range f.scratch {
		f.scratch[i] = 0
	}

	res := f.grid.Cells
	for i := range ps {
		p := &ps[i]
		cx, cy, cz := f.grid.CellOf(p.Pos, f.box)

		sigma := p.Size / 2
		if sigma <= 0 {
			continue
		}
		reach := int(math.Ceil(3 * sigma))
		if reach < 1 {
			reach = 1
		}

		x0, x1 := bound(cx-reach, res), bound(cx+reach, res)
		y0, y1 := bound(cy-reach, res), bound(cy+reach, res)
		z0, z1 := bound(cz-reach, res), bound(cz+reach, res)

		twoSigma2 := 2 * sigma * sigma
		for z := z0; z <= z1; z++ {
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					dx, dy, dz := float64(x-cx), float64(y-cy), float64(z-cz)
					d2 := dx*dx + dy*dy + dz*dz
					f.scratch[f.grid.Idx(x, y, z)] +=
						p.Activation * math.Exp(-d2/twoSigma2)
				}
			}
		}
	}

	clip(f.scratch)

	for i := range f.values {
		f.values[i] = (1-alpha)*f.values[i] + alpha*f.scratch[i]
	}

	f.pushHistory(f.scratch)
}

// pushHistory appends a copy of src and evicts the oldest entries past the
// cap.
func (f *Field) pushHistory(src []float64) {
	if f.historyCap <= 0 {
		return
	}
	snap := make([]float64, len(src))
	copy(snap, src)
	f.history = append(f.history, snap)
	if len(f.history) > f.historyCap {
		f.history = f.history[len(f.history)-f.historyCap:]
	}
}

// HistoryLen returns the number of retained source grids.
func (f *Field) HistoryLen() int { return len(f.history) }

// Values returns a copy of the live grid, for step-boundary snapshots.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.values))
	copy(out, f.values)
	return out
}

func clip(vs []float64) {
	for i, v := range vs {
		if v < 0 {
			vs[i] = 0
		} else if v > 1 {
			vs[i] = 1
		}
	}
}

func bound(i, cells int) int {
	if i < 0 {
		return 0
	}
	if i >= cells {
		return cells - 1
	}
	return i
}
