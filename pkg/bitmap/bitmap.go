// Package bitmap implements the 2D boolean-grid primitives that part
// silhouettes are built from: wrapping a flat buffer, slicing subarrays,
// rotating 90 degrees clockwise, and trimming to the smallest bounding box.
package bitmap

import "fmt"

// Bitmap is a row-major, fixed-size 2D grid of boolean cells.
type Bitmap struct {
	cells []bool
	nrows int
	ncols int
}

// From wraps a flat row-major buffer as an nrows x ncols bitmap. The
// buffer is not copied; callers that mutate it afterward will see the
// bitmap change underneath them.
func From(data []bool, nrows, ncols int) Bitmap {
	if len(data) != nrows*ncols {
		panic(fmt.Sprintf("bitmap: data has %d cells, want %d (%dx%d)", len(data), nrows*ncols, nrows, ncols))
	}
	return Bitmap{cells: data, nrows: nrows, ncols: ncols}
}

// NumRows returns the bitmap's height.
func (b Bitmap) NumRows() int { return b.nrows }

// NumCols returns the bitmap's width.
func (b Bitmap) NumCols() int { return b.ncols }

// At reports whether the cell at (row, col) is set.
func (b Bitmap) At(row, col int) bool {
	return b.cells[row*b.ncols+col]
}

// Count returns the number of set cells.
func (b Bitmap) Count() int {
	n := 0
	for _, v := range b.cells {
		if v {
			n++
		}
	}
	return n
}

// Copy returns an independent bitmap with the same cells.
func (b Bitmap) Copy() Bitmap {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return Bitmap{cells: cells, nrows: b.nrows, ncols: b.ncols}
}

// Row returns the cells of row i, left to right.
func (b Bitmap) Row(i int) []bool {
	return b.cells[i*b.ncols : (i+1)*b.ncols]
}

// Col returns the cells of column j, top to bottom.
func (b Bitmap) Col(j int) []bool {
	col := make([]bool, b.nrows)
	for i := range col {
		col[i] = b.At(i, j)
	}
	return col
}

// Subarray returns the nrows x ncols region whose top-left corner is
// (top, left). It panics if the region falls outside the bitmap.
func (b Bitmap) Subarray(top, left, nrows, ncols int) Bitmap {
	if top < 0 || left < 0 || top+nrows > b.nrows || left+ncols > b.ncols {
		panic(fmt.Sprintf("bitmap: subarray (%d,%d,%d,%d) out of bounds for %dx%d", top, left, nrows, ncols, b.nrows, b.ncols))
	}
	cells := make([]bool, nrows*ncols)
	for r := 0; r < nrows; r++ {
		copy(cells[r*ncols:(r+1)*ncols], b.Row(top+r)[left:left+ncols])
	}
	return Bitmap{cells: cells, nrows: nrows, ncols: ncols}
}

// Rot90 returns a 90-degree clockwise rotation of b, implemented as
// transpose-then-reverse-rows: the result has dimensions ncols x nrows.
func (b Bitmap) Rot90() Bitmap {
	out := make([]bool, b.nrows*b.ncols)
	outRows, outCols := b.ncols, b.nrows
	for r := 0; r < outRows; r++ {
		for c := 0; c < outCols; c++ {
			// out[r][c] = b[nrows-1-c][r], the standard CW rotation.
			out[r*outCols+c] = b.At(outCols-1-c, r)
		}
	}
	return Bitmap{cells: out, nrows: outRows, ncols: outCols}
}

// Trim returns the smallest subarray whose border rows and columns each
// contain at least one set cell. It is used only to canonicalize a
// rotation before fingerprinting, never to change where a mask's origin
// sits during placement. An all-false bitmap trims to a 0x0 result.
func (b Bitmap) Trim() Bitmap {
	top, bottom := -1, -1
	for r := 0; r < b.nrows; r++ {
		if rowHasSet(b.Row(r)) {
			if top == -1 {
				top = r
			}
			bottom = r
		}
	}
	if top == -1 {
		return Bitmap{cells: nil, nrows: 0, ncols: 0}
	}

	left, right := -1, -1
	for c := 0; c < b.ncols; c++ {
		for r := top; r <= bottom; r++ {
			if b.At(r, c) {
				if left == -1 {
					left = c
				}
				right = c
				break
			}
		}
	}

	return b.Subarray(top, left, bottom-top+1, right-left+1)
}

func rowHasSet(row []bool) bool {
	for _, v := range row {
		if v {
			return true
		}
	}
	return false
}

// Equal reports whether a and b have the same dimensions and cells.
func Equal(a, b Bitmap) bool {
	if a.nrows != b.nrows || a.ncols != b.ncols {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// Pack serializes the bitmap's cells into a compact byte string, one bit
// per cell, suitable for use as a map key when canonicalizing rotations
// during candidate generation (spec'd dedup of equivalent trimmed shapes).
func (b Bitmap) Pack() string {
	packed := make([]byte, (len(b.cells)+7)/8+2)
	packed[0] = byte(b.nrows)
	packed[1] = byte(b.ncols)
	for i, v := range b.cells {
		if v {
			packed[2+i/8] |= 1 << (uint(i) % 8)
		}
	}
	return string(packed)
}
