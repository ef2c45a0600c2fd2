package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testEps = 1e-12

func TestMinImage(t *testing.T) {
	box := Box{100, 100, 100}

	u, v := Vec{1, 1, 1}, Vec{4, 1, 1}
	dr := u.MinImage(v, box)
	assert.InDelta(t, 3.0, dr[0], testEps, "direct separation")
	assert.InDelta(t, 0.0, dr[1], testEps)
	assert.InDelta(t, 0.0, dr[2], testEps)

	// Shorter to go across the wrap boundary.
	u, v = Vec{1, 50, 50}, Vec{99, 50, 50}
	dr = u.MinImage(v, box)
	assert.InDelta(t, -2.0, dr[0], testEps, "wrapped separation")

	assert.InDelta(t, 2.0, u.Dist(v, box), testEps)
}

func TestMinImageAntisymmetric(t *testing.T) {
	box := Box{40, 60, 80}
	u, v := Vec{39, 1, 70}, Vec{2, 59, 5}

	duv := u.MinImage(v, box)
	dvu := v.MinImage(u, box)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, -dvu[k], duv[k], testEps)
	}
}

func TestWrap(t *testing.T) {
	box := Box{10, 10, 10}

	w := Vec{12, -3, 10}.Wrap(box)
	assert.InDelta(t, 2.0, w[0], testEps)
	assert.InDelta(t, 7.0, w[1], testEps)
	assert.InDelta(t, 0.0, w[2], testEps)

	for k := 0; k < 3; k++ {
		assert.True(t, w[k] >= 0 && w[k] < box[k])
	}
}

func TestVecOps(t *testing.T) {
	u, v := Vec{1, 2, 3}, Vec{4, 5, 6}

	assert.Equal(t, Vec{5, 7, 9}, u.Add(v))
	assert.Equal(t, Vec{-3, -3, -3}, u.Sub(v))
	assert.Equal(t, Vec{2, 4, 6}, u.Scale(2))
	assert.InDelta(t, 32.0, u.Dot(v), testEps)
	assert.InDelta(t, math.Sqrt(14), u.Norm(), testEps)

	w := u
	w.AddSelf(v)
	assert.Equal(t, Vec{5, 7, 9}, w)
}

func TestGridRoundTrip(t *testing.T) {
	g := NewGrid(8)
	assert.Equal(t, 512, g.Volume)

	for idx := 0; idx < g.Volume; idx++ {
		x, y, z := g.Coords(idx)
		assert.True(t, g.BoundsCheck(x, y, z))
		assert.Equal(t, idx, g.Idx(x, y, z))
	}
}

func TestGridCellOfClamps(t *testing.T) {
	g := NewGrid(10)
	box := Box{100, 100, 100}

	x, y, z := g.CellOf(Vec{55, 5, 99.9}, box)
	assert.Equal(t, 5, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, 9, z)

	// Positions on or past the upper edge clamp to the last cell, negative
	// ones to the first.
	x, _, _ = g.CellOf(Vec{100, 0, 0}, box)
	assert.Equal(t, 9, x)
	x, _, _ = g.CellOf(Vec{-1, 0, 0}, box)
	assert.Equal(t, 0, x)
}
