// Package catalog decodes the JSON shape a NaviCust part/requirement
// catalog arrives in — over a file (cmd/navicustcli) or an HTTP request
// body (src/main.go) — into the navicust package's pure in-memory types.
// This is the "game-data JSON loading" spec.md names as an external
// collaborator: none of it lives in the core.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"navicust.dev/core/pkg/bitmap"

	"navicust.dev/core"
)

// Mask is the wire shape of a bitmap.Bitmap.
type Mask struct {
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Cells  []bool `json:"cells"`
}

func (m Mask) toBitmap() (bitmap.Bitmap, error) {
	if len(m.Cells) != m.Height*m.Width {
		return bitmap.Bitmap{}, fmt.Errorf("mask has %d cells, want %d (%dx%d)", len(m.Cells), m.Height*m.Width, m.Height, m.Width)
	}
	return bitmap.From(m.Cells, m.Height, m.Width), nil
}

// Part is the wire shape of navicust.Part.
type Part struct {
	IsSolid          bool `json:"isSolid"`
	Color            int  `json:"color"`
	CompressedMask   Mask `json:"compressedMask"`
	UncompressedMask Mask `json:"uncompressedMask"`
}

// Constraint is the wire shape of navicust.Constraint: each field is a
// tri-state rendered as an optional bool, absent meaning unspecified.
type Constraint struct {
	Compressed    *bool `json:"compressed,omitempty"`
	OnCommandLine *bool `json:"onCommandLine,omitempty"`
	Bugged        *bool `json:"bugged,omitempty"`
}

func triState(b *bool) navicust.TriState {
	if b == nil {
		return navicust.Unspecified
	}
	if *b {
		return navicust.Yes
	}
	return navicust.No
}

// Requirement is the wire shape of navicust.Requirement.
type Requirement struct {
	PartIndex  int        `json:"partIndex"`
	Constraint Constraint `json:"constraint"`
}

// GridSettings is the wire shape of navicust.GridSettings.
type GridSettings struct {
	Height         int  `json:"height"`
	Width          int  `json:"width"`
	HasOOB         bool `json:"hasOob"`
	CommandLineRow int  `json:"commandLineRow"`
}

// Request is the full wire payload: everything Solve needs to run once.
type Request struct {
	Parts           []Part        `json:"parts"`
	Requirements    []Requirement `json:"requirements"`
	GridSettings    GridSettings  `json:"gridSettings"`
	SpinnableColors []bool        `json:"spinnableColors"`
}

// Decode parses a Request from r and converts it to the navicust
// package's native types, validating mask shapes and part indices
// along the way.
func Decode(r io.Reader) ([]navicust.Part, []navicust.Requirement, navicust.GridSettings, []bool, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, nil, navicust.GridSettings{}, nil, fmt.Errorf("decode catalog: %w", err)
	}
	return Convert(req)
}

// Convert turns an already-decoded Request into the navicust package's
// native types, validating mask shapes and part indices along the way.
// Callers that build or patch a Request in memory (rather than reading
// it off the wire) use this directly instead of round-tripping through
// Decode.
func Convert(req Request) ([]navicust.Part, []navicust.Requirement, navicust.GridSettings, []bool, error) {
	parts := make([]navicust.Part, len(req.Parts))
	for i, p := range req.Parts {
		compressed, err := p.CompressedMask.toBitmap()
		if err != nil {
			return nil, nil, navicust.GridSettings{}, nil, fmt.Errorf("part %d compressed mask: %w", i, err)
		}
		uncompressed, err := p.UncompressedMask.toBitmap()
		if err != nil {
			return nil, nil, navicust.GridSettings{}, nil, fmt.Errorf("part %d uncompressed mask: %w", i, err)
		}
		parts[i] = navicust.Part{
			IsSolid:          p.IsSolid,
			Color:            p.Color,
			CompressedMask:   compressed,
			UncompressedMask: uncompressed,
		}
	}

	requirements := make([]navicust.Requirement, len(req.Requirements))
	for i, r := range req.Requirements {
		if r.PartIndex < 0 || r.PartIndex >= len(parts) {
			return nil, nil, navicust.GridSettings{}, nil, fmt.Errorf("requirement %d: part index %d out of range", i, r.PartIndex)
		}
		requirements[i] = navicust.Requirement{
			PartIndex: r.PartIndex,
			Constraint: navicust.Constraint{
				Compressed:    triState(r.Constraint.Compressed),
				OnCommandLine: triState(r.Constraint.OnCommandLine),
				Bugged:        triState(r.Constraint.Bugged),
			},
		}
	}

	settings := navicust.GridSettings{
		Height:         req.GridSettings.Height,
		Width:          req.GridSettings.Width,
		HasOOB:         req.GridSettings.HasOOB,
		CommandLineRow: req.GridSettings.CommandLineRow,
	}

	return parts, requirements, settings, req.SpinnableColors, nil
}
