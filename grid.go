package navicust

import "navicust.dev/core/pkg/bitmap"

// Grid is the runtime cell array: every cell holds Empty, Forbidden, or
// the ReqIdx of the requirement occupying it.
type Grid struct {
	cells  []int
	nrows  int
	ncols  int
	hasOOB bool
}

// NewGrid allocates a height x width grid. When hasOOB is set, the four
// corner cells are marked Forbidden and never written to again.
func NewGrid(height, width int, hasOOB bool) *Grid {
	cells := make([]int, height*width)
	for i := range cells {
		cells[i] = Empty
	}
	g := &Grid{cells: cells, nrows: height, ncols: width, hasOOB: hasOOB}
	if hasOOB && height > 0 && width > 0 {
		g.set(0, 0, Forbidden)
		g.set(0, width-1, Forbidden)
		g.set(height-1, 0, Forbidden)
		g.set(height-1, width-1, Forbidden)
	}
	return g
}

func (g *Grid) idx(row, col int) int { return row*g.ncols + col }

func (g *Grid) at(row, col int) int { return g.cells[g.idx(row, col)] }

func (g *Grid) set(row, col, v int) { g.cells[g.idx(row, col)] = v }

// Clone returns an independent copy of g, suitable for the search
// driver's copy-on-write recursion (spec.md §4.F, §5).
func (g *Grid) Clone() *Grid {
	cells := make([]int, len(g.cells))
	copy(cells, g.cells)
	return &Grid{cells: cells, nrows: g.nrows, ncols: g.ncols, hasOOB: g.hasOOB}
}

// Height returns the grid's row count.
func (g *Grid) Height() int { return g.nrows }

// Width returns the grid's column count.
func (g *Grid) Width() int { return g.ncols }

// At returns the value of the cell at (row, col): Empty, Forbidden, or a
// ReqIdx.
func (g *Grid) At(row, col int) int { return g.at(row, col) }

// IsOuterRing reports whether (row, col) lies on the outermost ring of
// the grid. Only meaningful when the grid has OOB enabled; called by the
// local and global admissibility checks, which guard on hasOOB
// themselves.
func (g *Grid) IsOuterRing(row, col int) bool {
	return row == 0 || col == 0 || row == g.nrows-1 || col == g.ncols-1
}

// Place stamps mask onto the grid at pos with mask[0,0] aligned to pos,
// assigning reqIdx to every true cell. It is all-or-nothing: on failure
// the grid is left unmodified. Place fails if any true cell of the mask
// would fall outside the grid, or if any true cell would overlap a
// non-Empty cell (another requirement, or a Forbidden corner).
func (g *Grid) Place(mask bitmap.Bitmap, pos Position, reqIdx int) bool {
	mh, mw := mask.NumRows(), mask.NumCols()

	// Pass 1: every true cell must project inside the grid and onto an
	// Empty cell. Nothing is mutated until both checks pass for the
	// whole mask.
	for my := 0; my < mh; my++ {
		gy := pos.Y + my
		for mx := 0; mx < mw; mx++ {
			if !mask.At(my, mx) {
				continue
			}
			gx := pos.X + mx
			if gy < 0 || gy >= g.nrows || gx < 0 || gx >= g.ncols {
				return false
			}
			if g.at(gy, gx) != Empty {
				return false
			}
		}
	}

	// Pass 2: commit.
	for my := 0; my < mh; my++ {
		gy := pos.Y + my
		for mx := 0; mx < mw; mx++ {
			if mask.At(my, mx) {
				g.set(gy, pos.X+mx, reqIdx)
			}
		}
	}

	return true
}

// Cells mapped to ReqIdx of a given requirement, collected by scanning
// the whole grid once. Used by local admissibility on the just-placed
// requirement; global admissibility does its own single scan instead.
func (g *Grid) cellsOf(reqIdx int) []Position {
	var out []Position
	for r := 0; r < g.nrows; r++ {
		for c := 0; c < g.ncols; c++ {
			if g.at(r, c) == reqIdx {
				out = append(out, Position{X: c, Y: r})
			}
		}
	}
	return out
}

// Fingerprint serializes the part-identity projection of the grid —
// each occupied cell mapped to requirements[reqIdx].PartIndex, sentinels
// left as -1 — as a compact byte string; the search checksums it into
// the key of its visited set (spec.md §4.F step 3, §9).
func (g *Grid) Fingerprint(requirements []Requirement) []byte {
	buf := make([]byte, len(g.cells))
	for i, v := range g.cells {
		if v >= 0 {
			buf[i] = byte(requirements[v].PartIndex)
		} else {
			buf[i] = 0xff
		}
	}
	return buf
}
