package navicust

// PlaceAllResult is the outcome of PlaceAll: either a per-cell ownership
// map, or the distinguished "invalid" outcome for a self-inconsistent
// solution (spec.md §4.G, §7 — placeAll never returns an error, only
// this sentinel).
type PlaceAllResult struct {
	Cells   []int
	Invalid bool
}

// PlaceAll re-stamps every placement in sol onto a fresh grid and
// returns the per-cell ownership map: cells[i] is the ReqIdx occupying
// cell i, or Empty. It fails closed — Invalid is set, Cells is nil — the
// moment any placement overlaps another or falls outside the grid.
func PlaceAll(parts []Part, requirements []Requirement, sol Solution, settings GridSettings) PlaceAllResult {
	g := NewGrid(settings.Height, settings.Width, settings.HasOOB)

	for reqIdx, placement := range sol {
		part := parts[requirements[reqIdx].PartIndex]

		mask := part.CompressedMask
		if !placement.Compressed {
			mask = part.UncompressedMask
		}
		for r := 0; r < placement.Loc.Rotation; r++ {
			mask = mask.Rot90()
		}

		if !g.Place(mask, placement.Loc.Position, reqIdx) {
			return PlaceAllResult{Invalid: true}
		}
	}

	cells := make([]int, len(g.cells))
	for i, v := range g.cells {
		if v < 0 {
			v = Empty
		}
		cells[i] = v
	}
	return PlaceAllResult{Cells: cells}
}
