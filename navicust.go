// Package navicust enumerates valid placements of a multiset of
// polyomino-like parts onto a small rectangular grid, subject to
// structural and coloring constraints. It exposes two pure functions,
// Solve and PlaceAll; everything else in this package is their plumbing.
// The package performs no I/O, holds no locks, and sets no timeouts —
// callers that want a time budget wrap Solve's iterator in their own
// context.Context deadline.
package navicust

import "navicust.dev/core/pkg/bitmap"

// TriState is a three-valued constraint field: yes, no, or unspecified.
// Unspecified permits either value and is deliberately not represented
// as an optional bool, per the design notes in spec.md §9.
type TriState int

const (
	Unspecified TriState = iota
	Yes
	No
)

// Sentinel cell values for Grid.
const (
	Empty     = -1
	Forbidden = -2
)

// Part is an immutable part definition: a silhouette in two footprints,
// a color, and a type flag distinguishing "program" parts (must touch
// the command line) from "plus" parts (must not).
type Part struct {
	IsSolid          bool
	Color            int
	CompressedMask   bitmap.Bitmap
	UncompressedMask bitmap.Bitmap
}

// Constraint is a triple of tri-state fields governing one requirement.
type Constraint struct {
	Compressed    TriState
	OnCommandLine TriState
	Bugged        TriState
}

// Requirement identifies which part must appear, and under what
// constraint. Its position in the Requirements slice passed to Solve is
// its request index (ReqIdx), used as its identity throughout the search
// and in the emitted Solution.
type Requirement struct {
	PartIndex  int
	Constraint Constraint
}

// GridSettings describes the fixed geometry of the grid being solved.
type GridSettings struct {
	Height         int
	Width          int
	HasOOB         bool
	CommandLineRow int
}

// Position is the top-left offset of a mask over the grid. Either
// component may be negative.
type Position struct {
	X, Y int
}

// Location is a position plus a clockwise rotation count in {0,1,2,3}.
type Location struct {
	Position Position
	Rotation int
}

// Placement is the choice made for one requirement: where it sits, how
// it is rotated, and whether the compressed mask was used.
type Placement struct {
	Loc        Location
	Compressed bool
}

// Solution is an ordered sequence of placements, one per requirement, in
// the original requirement order (indexed by ReqIdx).
type Solution []Placement
