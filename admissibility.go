package navicust

// localAdmissible runs the cheap, per-placement checks of spec.md §4.D
// immediately after a single requirement has been stamped onto a cloned
// grid. It cannot decide "not bugged" on its own, because same-color
// adjacency is unknowable until every part has landed — see
// globalAdmissible.
func localAdmissible(g *Grid, parts []Part, req Requirement, reqIdx int, settings GridSettings) bool {
	cells := g.cellsOf(reqIdx)

	outOfBounds := false
	onCommandLine := false
	allOuterRing := g.hasOOB
	for _, c := range cells {
		ring := g.IsOuterRing(c.Y, c.X)
		if g.hasOOB && ring {
			outOfBounds = true
		}
		if !ring {
			allOuterRing = false
		}
		if c.Y == settings.CommandLineRow {
			onCommandLine = true
		}
	}

	// 1. Not entirely OOB, when hasOOB is set: at least one cell must
	// lie in the interior.
	if g.hasOOB && allOuterRing {
		return false
	}

	// 2. Command-line requirement.
	if req.Constraint.OnCommandLine == Yes && !onCommandLine {
		return false
	}

	// 3. Bugged lower bound.
	isSolid := parts[req.PartIndex].IsSolid
	buggedPre := outOfBounds || (isSolid != onCommandLine)
	if req.Constraint.Bugged == No && buggedPre {
		return false
	}

	return true
}

// requirementSignals are the per-requirement facts global admissibility
// needs, gathered by a single pass over the finished grid.
type requirementSignals struct {
	outOfBounds   bool
	onCommandLine bool
	touchingSame  bool
}

// globalAdmissible runs spec.md §4.E once, at the leaf of the search,
// after every requirement has been placed.
func globalAdmissible(g *Grid, parts []Part, requirements []Requirement, settings GridSettings) bool {
	signals := make([]requirementSignals, len(requirements))

	for r := 0; r < g.nrows; r++ {
		for c := 0; c < g.ncols; c++ {
			reqIdx := g.at(r, c)
			if reqIdx < 0 {
				continue
			}
			s := &signals[reqIdx]
			if g.hasOOB && g.IsOuterRing(r, c) {
				s.outOfBounds = true
			}
			if r == settings.CommandLineRow {
				s.onCommandLine = true
			}
			if !s.touchingSame {
				s.touchingSame = hasSameColorNeighbor(g, parts, requirements, r, c, reqIdx)
			}
		}
	}

	for i, req := range requirements {
		s := signals[i]
		isSolid := parts[req.PartIndex].IsSolid
		buggedFinal := s.outOfBounds || (isSolid != s.onCommandLine) || s.touchingSame
		if req.Constraint.Bugged != Unspecified {
			want := req.Constraint.Bugged == Yes
			if buggedFinal != want {
				return false
			}
		}
	}

	return true
}

func hasSameColorNeighbor(g *Grid, parts []Part, requirements []Requirement, r, c, reqIdx int) bool {
	color := parts[requirements[reqIdx].PartIndex].Color
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= g.nrows || nc < 0 || nc >= g.ncols {
			continue
		}
		neighborReq := g.at(nr, nc)
		if neighborReq < 0 || neighborReq == reqIdx {
			continue
		}
		if parts[requirements[neighborReq].PartIndex].Color == color {
			return true
		}
	}
	return false
}
