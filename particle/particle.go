/*package particle defines the particle data model: structure kinds, their
per-kind traits, and the mutable Store that owns all particle state for a
run. The Store does no physics; it only creates, holds, and hands out
particles.
*/
package particle

import (
	"math"
	"math/rand"

	"github.com/nanoforge/nanosim/geom"
)

// Kind labels the structure class of a particle. The set is closed; kind
// decides the particle's template traits at creation time.
type Kind int

const (
	Nanotube Kind = iota
	Graphene
	Fullerene
	QuantumDot
	MolecularMotor
	DNAOrigami
	ProteinCage
	Nanorobot

	KindCount
)

var kindNames = [KindCount]string{
	"nanotube", "graphene", "fullerene", "quantum_dot",
	"molecular_motor", "dna_origami", "protein_cage", "nanorobot",
}

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Traits is the closed set of kind-specific fields a particle can carry.
// Fields that do not apply to a kind are left at their zero value.
type Traits struct {
	Atoms, Bonds int
	Length       float64 // nanotubes
	Thickness    float64 // sheets
	Area         float64 // sheets
	BandGap      float64 // quantum dots
	Conductivity float64
	Symmetry     string
}

// Template bundles the diameter and traits assigned to new particles of a
// kind.
type Template struct {
	Diameter float64
	Traits   Traits
}

// templates mirrors the simulated structure table of the reference system.
// Masses are derived from atom counts at roughly 12 u per atom.
var templates = [KindCount]Template{
	Nanotube: {Diameter: 1.0, Traits: Traits{
		Atoms: 100, Bonds: 150, Length: 10.0, Conductivity: 0.9}},
	Graphene: {Diameter: 1.0, Traits: Traits{
		Atoms: 200, Bonds: 300, Thickness: 0.34, Area: 100.0,
		Conductivity: 0.95}},
	Fullerene: {Diameter: 0.7, Traits: Traits{
		Atoms: 60, Bonds: 90, Symmetry: "icosahedral"}},
	QuantumDot: {Diameter: 5.0, Traits: Traits{
		Atoms: 1000, BandGap: 2.0, Conductivity: 0.8}},
	MolecularMotor: {Diameter: 2.0, Traits: Traits{Atoms: 400, Bonds: 500}},
	DNAOrigami: {Diameter: 3.0, Traits: Traits{
		Atoms: 700, Bonds: 800, Symmetry: "lattice"}},
	ProteinCage: {Diameter: 2.5, Traits: Traits{
		Atoms: 500, Bonds: 600, Symmetry: "octahedral"}},
	Nanorobot: {Diameter: 4.0, Traits: Traits{
		Atoms: 1200, Bonds: 1500, Conductivity: 0.5}},
}

// TemplateFor returns the creation template of a kind.
func TemplateFor(k Kind) Template { return templates[k] }

// Particle is the full state of one simulated particle. Position and
// velocity are mutated by the integrator every step; Activation is mutated
// by the field feedback. Everything else is fixed at creation.
type Particle struct {
	ID   int
	Pos  geom.Vec
	Vel  geom.Vec
	Kind Kind

	Size   float64 // diameter-like, > 0
	Mass   float64 // > 0
	Charge float64

	// Activation is the excitation scalar, always in [0, 1].
	Activation float64

	Traits Traits
}

// ClampActivation forces the activation invariant after feedback updates.
func (p *Particle) ClampActivation() {
	if p.Activation < 0 {
		p.Activation = 0
	} else if p.Activation > 1 {
		p.Activation = 1
	}
}

// Store owns the particle slice for a run. The particle count is fixed for
// the lifetime of the store.
type Store struct {
	ps []Particle
}

// NewStore creates count particles with random positions inside box,
// Maxwell-Boltzmann-flavored velocities scaled by the target temperature
// (in Kelvin, normalized against 300 K), random kinds, and low initial
// activation.
func NewStore(count int, box geom.Box, temperature float64, rng *rand.Rand) *Store {
	vScale := math.Sqrt(temperature / 300.0)

	ps := make([]Particle, count)
	for i := range ps {
		kind := Kind(rng.Intn(int(KindCount)))
		tmpl := templates[kind]

		ps[i] = Particle{
			ID: i,
			Pos: geom.Vec{
				rng.Float64() * box[0],
				rng.Float64() * box[1],
				rng.Float64() * box[2],
			},
			Vel: geom.Vec{
				rng.NormFloat64() * vScale,
				rng.NormFloat64() * vScale,
				rng.NormFloat64() * vScale,
			},
			Kind:       kind,
			Size:       tmpl.Diameter,
			Mass:       float64(tmpl.Traits.Atoms) * 12.0,
			Charge:     rng.NormFloat64() * 0.1,
			Activation: rng.Float64() * 0.1,
			Traits:     tmpl.Traits,
		}
	}

	return &Store{ps: ps}
}

// Len returns the particle count.
func (s *Store) Len() int { return len(s.ps) }

// Particles returns the live particle slice. The caller may mutate it; the
// engine is the only component that does.
func (s *Store) Particles() []Particle { return s.ps }

// Clone returns a deep copy of the particle state, used for step-boundary
// snapshots.
func (s *Store) Clone() []Particle {
	out := make([]Particle, len(s.ps))
	copy(out, s.ps)
	return out
}
