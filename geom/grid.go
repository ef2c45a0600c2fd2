package geom

// Grid provides an interface for reasoning over a 1D slice as if it were a
// cubic 3D grid spanning a periodic box.
type Grid struct {
	Cells                int
	Length, Area, Volume int
}

// NewGrid returns a new Grid with the given number of cells per axis.
func NewGrid(cells int) *Grid {
	g := &Grid{}
	g.Init(cells)
	return g
}

// Init initializes a Grid instance.
func (g *Grid) Init(cells int) {
	g.Cells = cells
	g.Length = cells
	g.Area = cells * cells
	g.Volume = cells * cells * cells
}

// Idx returns the grid index corresponding to a set of cell coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return x + y*g.Length + z*g.Area
}

// Coords returns the x, y, z cell coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx % g.Length
	y = (idx % g.Area) / g.Length
	z = idx / g.Area
	return x, y, z
}

// BoundsCheck returns true if the given cell coordinates are within the grid.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < g.Cells && y < g.Cells && z < g.Cells
}

// CellOf maps a continuous position inside box to cell coordinates by linear
// scaling. Coordinates are clamped to the grid bounds, so positions slightly
// outside the box still resolve to a valid cell.
func (g *Grid) CellOf(pos Vec, box Box) (x, y, z int) {
	x = clampCell(int(pos[0]/box[0]*float64(g.Cells)), g.Cells)
	y = clampCell(int(pos[1]/box[1]*float64(g.Cells)), g.Cells)
	z = clampCell(int(pos[2]/box[2]*float64(g.Cells)), g.Cells)
	return x, y, z
}

// IdxOf maps a continuous position to the flat index of its nearest cell.
func (g *Grid) IdxOf(pos Vec, box Box) int {
	x, y, z := g.CellOf(pos, box)
	return g.Idx(x, y, z)
}

func clampCell(i, cells int) int {
	if i < 0 {
		return 0
	}
	if i >= cells {
		return cells - 1
	}
	return i
}
