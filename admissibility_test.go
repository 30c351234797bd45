package navicust

import (
	"testing"

	"navicust.dev/core/pkg/bitmap"
)

func singleCell() bitmap.Bitmap {
	return bitmap.From([]bool{true}, 1, 1)
}

func TestLocalAdmissibleRejectsAllOuterRing(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5, HasOOB: true}
	parts := []Part{{IsSolid: true}}
	req := Requirement{PartIndex: 0}

	g := NewGrid(5, 5, true)
	if !g.Place(singleCell(), Position{X: 2, Y: 0}, 0) {
		t.Fatal("setup placement failed")
	}
	if localAdmissible(g, parts, req, 0, settings) {
		t.Fatal("a single placed cell entirely on the outer ring should fail local admissibility")
	}
}

func TestLocalAdmissibleAcceptsInterior(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5, HasOOB: true}
	parts := []Part{{IsSolid: true}}
	req := Requirement{PartIndex: 0}

	g := NewGrid(5, 5, true)
	g.Place(singleCell(), Position{X: 2, Y: 2}, 0)
	if !localAdmissible(g, parts, req, 0, settings) {
		t.Fatal("a placement entirely in the interior should pass local admissibility")
	}
}

func TestLocalAdmissibleOnCommandLine(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5, CommandLineRow: 3}
	parts := []Part{{IsSolid: true}}
	req := Requirement{PartIndex: 0, Constraint: Constraint{OnCommandLine: Yes}}

	g := NewGrid(5, 5, false)
	g.Place(singleCell(), Position{X: 2, Y: 1}, 0)
	if localAdmissible(g, parts, req, 0, settings) {
		t.Fatal("placement off the command line should fail when OnCommandLine=Yes")
	}

	g2 := NewGrid(5, 5, false)
	g2.Place(singleCell(), Position{X: 2, Y: 3}, 0)
	if !localAdmissible(g2, parts, req, 0, settings) {
		t.Fatal("placement on the command line row should pass")
	}
}

func TestLocalAdmissibleBuggedLowerBound(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5, CommandLineRow: 0}
	parts := []Part{{IsSolid: false}}
	req := Requirement{PartIndex: 0, Constraint: Constraint{Bugged: No}}

	// A non-solid ("plus") part placed on the command line row makes
	// isSolid != onCommandLine true, forcing buggedPre true and
	// violating Bugged=No.
	g := NewGrid(5, 5, false)
	g.Place(singleCell(), Position{X: 2, Y: 0}, 0)
	if localAdmissible(g, parts, req, 0, settings) {
		t.Fatal("a non-solid part placed on the command line is pre-bugged and should fail Bugged=No")
	}
}

func TestGlobalAdmissibleTouchingSameColor(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5}
	parts := []Part{
		{IsSolid: false, Color: 1},
		{IsSolid: false, Color: 1},
	}
	requirements := []Requirement{
		{PartIndex: 0, Constraint: Constraint{Bugged: No}},
		{PartIndex: 1, Constraint: Constraint{Bugged: No}},
	}

	g := NewGrid(5, 5, false)
	g.Place(singleCell(), Position{X: 1, Y: 1}, 0)
	g.Place(singleCell(), Position{X: 2, Y: 1}, 1)

	if globalAdmissible(g, parts, requirements, settings) {
		t.Fatal("two adjacent same-color parts should be bugged, violating Bugged=No")
	}
}

func TestGlobalAdmissibleAdjacentDifferentColorsNotBugged(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5}
	parts := []Part{
		{IsSolid: false, Color: 1},
		{IsSolid: false, Color: 2},
	}
	requirements := []Requirement{
		{PartIndex: 0, Constraint: Constraint{Bugged: No}},
		{PartIndex: 1, Constraint: Constraint{Bugged: No}},
	}

	g := NewGrid(5, 5, false)
	g.Place(singleCell(), Position{X: 1, Y: 1}, 0)
	g.Place(singleCell(), Position{X: 2, Y: 1}, 1)

	if !globalAdmissible(g, parts, requirements, settings) {
		t.Fatal("two adjacent different-color parts should not be bugged")
	}
}

func TestGlobalAdmissibleUnspecifiedBuggedAlwaysPasses(t *testing.T) {
	settings := GridSettings{Height: 5, Width: 5}
	parts := []Part{
		{IsSolid: true, Color: 1},
		{IsSolid: true, Color: 1},
	}
	requirements := []Requirement{
		{PartIndex: 0},
		{PartIndex: 1},
	}

	g := NewGrid(5, 5, false)
	g.Place(singleCell(), Position{X: 1, Y: 1}, 0)
	g.Place(singleCell(), Position{X: 2, Y: 1}, 1)

	if !globalAdmissible(g, parts, requirements, settings) {
		t.Fatal("an unspecified Bugged constraint should never fail the check")
	}
}
