// Package candidates generates, for one requirement at a time, every
// (mask, position, rotation, compressed) placement that satisfies local
// admissibility — spec.md §4.C. The search driver asks this package for
// a requirement's candidate list once, up front, then sorts requirements
// by list size before recursing.
package candidates

import "navicust.dev/core/pkg/bitmap"

// Part is the subset of navicust.Part this package needs. It is
// duplicated here (rather than importing the root package) so that
// candidates has no import cycle back to the search driver that calls
// it; the root package's Part satisfies this shape structurally.
type Part struct {
	IsSolid          bool
	Color            int
	CompressedMask   bitmap.Bitmap
	UncompressedMask bitmap.Bitmap
}

// TriState mirrors navicust.TriState's three values.
type TriState int

const (
	Unspecified TriState = iota
	Yes
	No
)

// Constraint mirrors navicust.Constraint.
type Constraint struct {
	Compressed    TriState
	OnCommandLine TriState
	Bugged        TriState
}

// Settings mirrors navicust.GridSettings.
type Settings struct {
	Height         int
	Width          int
	HasOOB         bool
	CommandLineRow int
}

// Candidate is one legal placement: a position, a rotation, whether the
// compressed mask was used, and the (possibly rotated) mask itself, kept
// around so the search driver doesn't need to re-rotate it.
type Candidate struct {
	X, Y       int
	Rotation   int
	Compressed bool
	Mask       bitmap.Bitmap
}

// Stamp reports whether mask can be placed at (x, y) on an empty grid of
// the given settings without going out of bounds or overlapping a
// forbidden corner. Local admissibility (below) only ever runs once
// Stamp has already agreed the shape fits the geometry.
func Stamp(mask bitmap.Bitmap, x, y int, settings Settings) bool {
	mh, mw := mask.NumRows(), mask.NumCols()
	for my := 0; my < mh; my++ {
		gy := y + my
		for mx := 0; mx < mw; mx++ {
			if !mask.At(my, mx) {
				continue
			}
			gx := x + mx
			if gy < 0 || gy >= settings.Height || gx < 0 || gx >= settings.Width {
				return false
			}
			if settings.HasOOB && isForbiddenCorner(gy, gx, settings) {
				return false
			}
		}
	}
	return true
}

func isForbiddenCorner(row, col int, s Settings) bool {
	return (row == 0 || row == s.Height-1) && (col == 0 || col == s.Width-1)
}

// Gather enumerates every candidate for one part under one constraint
// (spec.md §4.C). spinnable reports whether the part's color may be
// rotated. Enumeration order — mask selection, then rotation ascending,
// then position row-major by (y, x) — is part of the contract: it
// determines solution emission order for a fixed requirement ordering.
func Gather(part Part, constraint Constraint, spinnable bool, settings Settings) []Candidate {
	var out []Candidate

	for _, variant := range maskVariants(part, constraint) {
		seenTrimmed := map[string]bool{}
		rotations := 1
		if spinnable {
			rotations = 4
		}

		mask := variant.mask
		for rot := 0; rot < rotations; rot++ {
			if rot > 0 {
				mask = mask.Rot90()
			}

			trimmedKey := mask.Trim().Pack()
			if seenTrimmed[trimmedKey] {
				continue
			}
			seenTrimmed[trimmedKey] = true

			out = append(out, gatherPositions(mask, rot, variant.compressed, part, constraint, settings)...)
		}
	}

	return out
}

func gatherPositions(mask bitmap.Bitmap, rotation int, compressed bool, part Part, constraint Constraint, settings Settings) []Candidate {
	var out []Candidate
	mh, mw := mask.NumRows(), mask.NumCols()

	for y := -mh + 1; y <= settings.Height-1; y++ {
		for x := -mw + 1; x <= settings.Width-1; x++ {
			if !Stamp(mask, x, y, settings) {
				continue
			}
			if !LocalAdmissible(mask, x, y, part.IsSolid, constraint, settings) {
				continue
			}
			out = append(out, Candidate{
				X: x, Y: y,
				Rotation:   rotation,
				Compressed: compressed,
				Mask:       mask,
			})
		}
	}

	return out
}

// LocalAdmissible runs spec.md §4.D against a single mask placed at
// (x, y), independent of any other requirement's placement: every check
// in §4.D depends only on which cells this one mask would occupy, never
// on neighboring cells, so it can be evaluated here before a real grid
// ever exists. The search driver re-runs the identical check (via the
// root package's own copy) against the cloned grid at recursion time —
// that second check is always true for a Candidate produced here, and
// exists to keep step 2 of §4.F an explicit, auditable part of the
// search loop rather than an invariant left implicit.
func LocalAdmissible(mask bitmap.Bitmap, x, y int, isSolid bool, constraint Constraint, settings Settings) bool {
	outOfBounds := false
	onCommandLine := false
	allOuterRing := settings.HasOOB

	mh, mw := mask.NumRows(), mask.NumCols()
	for my := 0; my < mh; my++ {
		gy := y + my
		for mx := 0; mx < mw; mx++ {
			if !mask.At(my, mx) {
				continue
			}
			gx := x + mx
			ring := gy == 0 || gx == 0 || gy == settings.Height-1 || gx == settings.Width-1
			if settings.HasOOB && ring {
				outOfBounds = true
			}
			if !ring {
				allOuterRing = false
			}
			if gy == settings.CommandLineRow {
				onCommandLine = true
			}
		}
	}

	if settings.HasOOB && allOuterRing {
		return false
	}
	if constraint.OnCommandLine == Yes && !onCommandLine {
		return false
	}

	buggedPre := outOfBounds || (isSolid != onCommandLine)
	if constraint.Bugged == No && buggedPre {
		return false
	}

	return true
}

type maskVariant struct {
	mask       bitmap.Bitmap
	compressed bool
}

// maskVariants implements spec.md §4.C step 1, including the corrected
// behavior called out in §9's design notes: when Compressed is
// Unspecified and the part's two masks differ, the second pass uses the
// uncompressed mask (not the compressed mask enumerated twice).
func maskVariants(part Part, constraint Constraint) []maskVariant {
	switch constraint.Compressed {
	case Yes:
		return []maskVariant{{mask: part.CompressedMask, compressed: true}}
	case No:
		return []maskVariant{{mask: part.UncompressedMask, compressed: false}}
	default:
		if bitmap.Equal(part.CompressedMask, part.UncompressedMask) {
			return []maskVariant{{mask: part.CompressedMask, compressed: true}}
		}
		return []maskVariant{
			{mask: part.CompressedMask, compressed: true},
			{mask: part.UncompressedMask, compressed: false},
		}
	}
}
