package navicust

import (
	"hash/crc64"
	"iter"
	"sort"

	"navicust.dev/core/internal/candidates"
)

var fingerprintTable = crc64.MakeTable(crc64.ISO)

// Solve enumerates every Solution satisfying requirements against
// settings, as a lazy, restartable sequence (spec.md §4.F, §5, §6). The
// only suspension points are between successive solutions; a consumer
// cancels by simply stopping iteration (range-over-func's early return),
// since the core itself never touches a clock, a lock, or a file.
func Solve(parts []Part, requirements []Requirement, settings GridSettings, spinnableColors []bool) iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		if !feasible(parts, requirements, settings) {
			return
		}

		order := requirementOrder(parts, requirements, settings, spinnableColors)
		grid := NewGrid(settings.Height, settings.Width, settings.HasOOB)
		visited := make(map[uint64]bool)
		acc := make([]Placement, len(requirements))

		for sol := range search(0, grid, order, acc, parts, requirements, settings, visited) {
			if !yield(sol) {
				return
			}
		}
	}
}

// feasible runs the cheap, whole-search infeasibility pre-checks of
// spec.md §4.F. Any of them failing means Solve yields nothing at all.
func feasible(parts []Part, requirements []Requirement, settings GridSettings) bool {
	if settings.CommandLineRow > settings.Height {
		return false
	}

	mustBeOnCommandLine := 0
	for _, req := range requirements {
		if req.Constraint.OnCommandLine == Yes {
			mustBeOnCommandLine++
		}
	}
	if mustBeOnCommandLine > settings.Width {
		return false
	}

	totalCells := 0
	for _, req := range requirements {
		part := parts[req.PartIndex]
		mask := part.CompressedMask
		if req.Constraint.Compressed == No {
			mask = part.UncompressedMask
		}
		totalCells += mask.Count()
	}
	capacity := settings.Width * settings.Height
	if settings.HasOOB {
		capacity -= 4
	}
	return totalCells <= capacity
}

type orderedRequirement struct {
	reqIdx int
	cands  []candidates.Candidate
}

// requirementOrder computes the per-requirement candidate list
// (spec.md §4.C) and sorts requirements by (candidate-count ascending,
// original index ascending) — the placement order the search recurses
// in (spec.md §4.F).
func requirementOrder(parts []Part, requirements []Requirement, settings GridSettings, spinnableColors []bool) []orderedRequirement {
	cs := candidateSettings(settings)
	order := make([]orderedRequirement, len(requirements))
	for i, req := range requirements {
		part := parts[req.PartIndex]
		spinnable := part.Color < len(spinnableColors) && spinnableColors[part.Color]
		order[i] = orderedRequirement{
			reqIdx: i,
			cands:  candidates.Gather(candidatePart(part), candidateConstraint(req.Constraint), spinnable, cs),
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].cands) < len(order[j].cands)
	})

	return order
}

// search is the depth-first backtracking recursion of spec.md §4.F. acc
// is indexed by ReqIdx directly, so the solution it yields is already in
// original requirement order with no final sort needed.
func search(depth int, g *Grid, order []orderedRequirement, acc []Placement, parts []Part, requirements []Requirement, settings GridSettings, visited map[uint64]bool) iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		if depth == len(order) {
			if !globalAdmissible(g, parts, requirements, settings) {
				return
			}
			sol := make(Solution, len(acc))
			copy(sol, acc)
			yield(sol)
			return
		}

		entry := order[depth]
		req := requirements[entry.reqIdx]

		for _, cand := range entry.cands {
			pos := Position{X: cand.X, Y: cand.Y}

			cg := g.Clone()
			if !cg.Place(cand.Mask, pos, entry.reqIdx) {
				continue
			}
			if !localAdmissible(cg, parts, req, entry.reqIdx, settings) {
				continue
			}

			fp := cg.Fingerprint(requirements)
			h := crc64.Checksum(fp, fingerprintTable)
			if visited[h] {
				continue
			}
			visited[h] = true

			nextAcc := make([]Placement, len(acc))
			copy(nextAcc, acc)
			nextAcc[entry.reqIdx] = Placement{
				Loc:        Location{Position: pos, Rotation: cand.Rotation},
				Compressed: cand.Compressed,
			}

			for sol := range search(depth+1, cg, order, nextAcc, parts, requirements, settings, visited) {
				if !yield(sol) {
					return
				}
			}
		}
	}
}

func candidatePart(p Part) candidates.Part {
	return candidates.Part{
		IsSolid:          p.IsSolid,
		Color:            p.Color,
		CompressedMask:   p.CompressedMask,
		UncompressedMask: p.UncompressedMask,
	}
}

func candidateConstraint(c Constraint) candidates.Constraint {
	return candidates.Constraint{
		Compressed:    candidates.TriState(c.Compressed),
		OnCommandLine: candidates.TriState(c.OnCommandLine),
		Bugged:        candidates.TriState(c.Bugged),
	}
}

func candidateSettings(s GridSettings) candidates.Settings {
	return candidates.Settings{
		Height:         s.Height,
		Width:          s.Width,
		HasOOB:         s.HasOOB,
		CommandLineRow: s.CommandLineRow,
	}
}
