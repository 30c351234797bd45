package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/api/iterator"

	"navicust.dev/core"
	"navicust.dev/core/internal/catalog"
)

var srvLog zerolog.Logger = zlog.With().Str("module", "solve").Logger()

// SolveRequest is the HTTP wire payload for the /solve endpoint: a
// catalog (see internal/catalog) plus how many solutions to return, and
// an optional navi ID to pull compressed-mask overrides for from the
// part-catalog table instead of the request body.
type SolveRequest struct {
	catalog.Request
	NaviID      string `json:"naviId"`
	MaxSolution int    `json:"maxSolutions"`
}

// SolveResponse reports either a list of per-cell ownership grids (one
// per solution, row-major, ReqIdx or navicust.Empty per cell) or an
// error.
type SolveResponse struct {
	Success bool    `json:"success"`
	Grids   [][]int `json:"grids"`
	Error   string  `json:"error,omitempty"`
}

// loadMaskOverrides looks up per-part compressed masks recorded for a
// specific navi in the part catalog table. execute replaces the
// compressedMask of each request part whose index has an override,
// whether or not the client sent one.
func loadMaskOverrides(ctx context.Context, naviID string) (map[int]catalog.Mask, error) {
	client, err := bigquery.NewClient(ctx, "navicust-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT part_index, height, width, cells FROM `navicust-x.PartCatalog.compressed_masks` WHERE navi_id = %q", naviID)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	overrides := map[int]catalog.Mask{}
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		partIndex, ok := row[0].(int64)
		if !ok {
			return nil, fmt.Errorf("row[0] is not an int64: %v", row[0])
		}
		height, ok := row[1].(int64)
		if !ok {
			return nil, fmt.Errorf("row[1] is not an int64: %v", row[1])
		}
		width, ok := row[2].(int64)
		if !ok {
			return nil, fmt.Errorf("row[2] is not an int64: %v", row[2])
		}
		cellsJSON, ok := row[3].(string)
		if !ok {
			return nil, fmt.Errorf("row[3] is not a string: %v", row[3])
		}
		var cells []bool
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("unmarshal cells for part %d: %w", partIndex, err)
		}

		overrides[int(partIndex)] = catalog.Mask{Height: int(height), Width: int(width), Cells: cells}
	}
	return overrides, nil
}

func execute(ctx context.Context, req SolveRequest) (grids [][]int, err error) {
	start := time.Now()
	srvLog.Info().
		Int("parts", len(req.Parts)).
		Int("requirements", len(req.Requirements)).
		Int("maxSolutions", req.MaxSolution).
		Msg("solve request received")

	defer func() {
		srvLog.Info().
			Int("solutions", len(grids)).
			Dur("elapsed", time.Since(start)).
			Msg("solve request finished")
	}()

	if req.MaxSolution <= 0 {
		req.MaxSolution = 1
	}
	if req.MaxSolution > 50 {
		return nil, fmt.Errorf("maxSolutions must be at most 50")
	}

	if req.NaviID != "" {
		overrides, err := loadMaskOverrides(ctx, req.NaviID)
		if err != nil {
			return nil, fmt.Errorf("loadMaskOverrides: %w", err)
		}
		for partIndex, mask := range overrides {
			if partIndex < 0 || partIndex >= len(req.Parts) {
				continue
			}
			req.Parts[partIndex].CompressedMask = mask
		}
	}

	parts, requirements, settings, spinnableColors, err := catalog.Convert(req.Request)
	if err != nil {
		return nil, fmt.Errorf("catalog.Convert: %w", err)
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
	}
	done := time.After(timeout)

	for sol := range navicust.Solve(parts, requirements, settings, spinnableColors) {
		select {
		case <-done:
			return grids, fmt.Errorf("search timed out after %v", timeout)
		default:
		}

		result := navicust.PlaceAll(parts, requirements, sol, settings)
		if result.Invalid {
			continue
		}
		grids = append(grids, result.Cells)
		if len(grids) >= req.MaxSolution {
			break
		}
	}

	return grids, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solve(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SolveResponse{Success: false, Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	grids, err := execute(r.Context(), req)

	response := SolveResponse{Success: err == nil, Grids: grids}
	if err != nil {
		response.Error = err.Error()
	} else if len(grids) == 0 {
		response.Error = "no solution exists for the given catalog"
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "internal server error"}`)
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve", solve)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
