/*package geom contains the small geometric primitives used by the
simulation: three dimensional vectors with value semantics and a flat-buffer
3D grid. All periodic-box logic lives here so that the physics packages
never reimplement wrapping rules.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Box is the extent of the periodic simulation box along each axis.
type Box [3]float64

// Add returns u + v.
func (u Vec) Add(v Vec) Vec {
	return Vec{u[0] + v[0], u[1] + v[1], u[2] + v[2]}
}

// Sub returns u - v without any periodic correction.
func (u Vec) Sub(v Vec) Vec {
	return Vec{u[0] - v[0], u[1] - v[1], u[2] - v[2]}
}

// Scale returns u scaled by a constant.
func (u Vec) Scale(s float64) Vec {
	return Vec{u[0] * s, u[1] * s, u[2] * s}
}

// AddSelf adds v to u in place.
func (u *Vec) AddSelf(v Vec) {
	u[0] += v[0]
	u[1] += v[1]
	u[2] += v[2]
}

// Dot returns the inner product of u and v.
func (u Vec) Dot(v Vec) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Norm returns the Euclidean length of u.
func (u Vec) Norm() float64 {
	return math.Sqrt(u.Dot(u))
}

// MinImage returns the shortest separation vector pointing from u to v
// across the periodic boundaries of box. Each component of the result lies
// in [-box[k]/2, box[k]/2).
func (u Vec) MinImage(v Vec, box Box) Vec {
	var dr Vec
	for k := 0; k < 3; k++ {
		d := v[k] - u[k]
		d -= box[k] * math.Round(d/box[k])
		dr[k] = d
	}
	return dr
}

// Wrap maps u into [0, box[k]) on each axis independently.
func (u Vec) Wrap(box Box) Vec {
	var w Vec
	for k := 0; k < 3; k++ {
		m := math.Mod(u[k], box[k])
		if m < 0 {
			m += box[k]
		}
		// Adding the width to a tiny negative remainder can round back up
		// to the width itself; keep the result strictly below it.
		if m >= box[k] {
			m = 0
		}
		w[k] = m
	}
	return w
}

// Dist returns the minimum-image distance between u and v.
func (u Vec) Dist(v Vec, box Box) float64 {
	return u.MinImage(v, box).Norm()
}

// Valid returns true if every component of the box is positive.
func (b Box) Valid() bool {
	return b[0] > 0 && b[1] > 0 && b[2] > 0
}

// Volume returns the volume of the box.
func (b Box) Volume() float64 {
	return b[0] * b[1] * b[2]
}
