/*package force implements the pairwise force model: a Lennard-Jones term,
an activation-coupling term, and an emergence term, all applied below a hard
cutoff with minimum-image separations. Everything here is a pure function of
particle state; the package holds no mutable simulation state.
*/
package force

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nanoforge/nanosim/geom"
	"github.com/nanoforge/nanosim/particle"
)

const (
	// couplingThreshold gates the activation-coupling term. Pairs whose
	// activation product is at or below this contribute no coupling force.
	couplingThreshold = 0.1

	// minSeparation is the numeric guard: separations below this are clamped
	// before any division so the force stays finite.
	minSeparation = 1e-9
)

// Params holds the force-model constants. All are required; Valid reports
// whether they describe a usable model.
type Params struct {
	Epsilon float64 // Lennard-Jones well depth
	Sigma   float64 // Lennard-Jones zero-crossing distance
	// CouplingK scales the activation-coupling term (k1).
	CouplingK float64
	// EmergenceK scales the emergence term (k2).
	EmergenceK float64
	Cutoff     float64 // hard interaction cutoff, exclusive
}

func (p *Params) Valid() bool {
	return p.Epsilon > 0 && p.Sigma > 0 && p.Cutoff > 0
}

// Pair returns the force acting on a due to b, given the minimum-image
// separation vector dr pointing from a to b. The force on b is the exact
// negation. The second return value reports whether the numeric guard
// clamped a degenerate separation. Pairs at or beyond the cutoff return a
// zero vector.
func (p *Params) Pair(a, b *particle.Particle, dr geom.Vec) (geom.Vec, bool) {
	r := dr.Norm()
	if r >= p.Cutoff {
		return geom.Vec{}, false
	}

	guarded := false
	if r < minSeparation {
		r = minSeparation
		guarded = true
	}

	mag := p.lj(r) + p.coupling(a, b, r) + p.emergence(a, b, r)
	return dr.Scale(mag / r), guarded
}

// lj is the Lennard-Jones magnitude 24*eps*(2*(sig/r)^12 - (sig/r)^6)/r.
func (p *Params) lj(r float64) float64 {
	sr := p.Sigma / r
	sr3 := sr * sr * sr
	sr6 := sr3 * sr3
	sr12 := sr6 * sr6
	return 24 * p.Epsilon * (2*sr12 - sr6) / r
}

// coupling is the activation-mediated term, attractive for strongly
// activated pairs and absent otherwise.
func (p *Params) coupling(a, b *particle.Particle, r float64) float64 {
	prod := a.Activation * b.Activation
	if prod <= couplingThreshold {
		return 0
	}
	return -p.CouplingK * prod / (r * r)
}

// emergence promotes self-organization between structurally compatible
// particles.
func (p *Params) emergence(a, b *particle.Particle, r float64) float64 {
	return -p.EmergenceK * EmergenceFactor(a, b) / r
}

// EmergenceFactor is structural_match * size_ratio * (1 - |a_i - a_j|).
// Same-kind pairs match at 1.0, mixed pairs at 0.5.
func EmergenceFactor(a, b *particle.Particle) float64 {
	match := 0.5
	if a.Kind == b.Kind {
		match = 1.0
	}

	sizeRatio := a.Size / b.Size
	if a.Size > b.Size {
		sizeRatio = b.Size / a.Size
	}

	diff := a.Activation - b.Activation
	if diff < 0 {
		diff = -diff
	}

	return match * sizeRatio * (1 - diff)
}

// Accumulate sums the pair forces over every particle pair within the
// cutoff. The pass is the naive O(n^2) loop, partitioned across workers by
// striding the outer index; each worker writes into its own force buffer
// and the buffers are reduced at the end, so no locks are needed. It
// returns one force vector per particle and the number of numeric-guard
// hits.
func Accumulate(
	ps []particle.Particle, box geom.Box, params *Params, workers int,
) ([]geom.Vec, int) {
	n := len(ps)
	forces := make([]geom.Vec, n)
	if n < 2 {
		return forces, 0
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	bufs := make([][]geom.Vec, workers)
	guards := make([]int, workers)
	for w := range bufs {
		bufs[w] = make([]geom.Vec, n)
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			buf := bufs[w]
			for i := w; i < n; i += workers {
				for j := i + 1; j < n; j++ {
					dr := ps[i].Pos.MinImage(ps[j].Pos, box)
					f, guarded := params.Pair(&ps[i], &ps[j], dr)
					if guarded {
						guards[w]++
					}

					buf[i].AddSelf(f)
					buf[j].AddSelf(f.Scale(-1))
				}
			}
			return nil
		})
	}
	// Workers never fail; Wait is only a join point.
	_ = g.Wait()

	guardHits := 0
	for w := 0; w < workers; w++ {
		guardHits += guards[w]
		for i := range forces {
			forces[i].AddSelf(bufs[w][i])
		}
	}

	return forces, guardHits
}
