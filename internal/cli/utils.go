// Package cli renders vector store query results for the command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/hyperjump/vecmem/internal/vector"
	"github.com/hyperjump/vecmem/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one tab-separated line per hit.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates s as an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
}

// Hit is one ranked result ready for display.
type Hit struct {
	Rank  int       `json:"rank"`
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label,omitempty"`
	Score float32   `json:"score"`
}

// QueryReport groups the hits answering one query.
type QueryReport struct {
	Query     string `json:"query"`
	K         int    `json:"k"`
	StoreSize int    `json:"store_size"`
	Hits      []Hit  `json:"hits"`
}

// NewReport builds a report from ranked results. labels maps stored IDs to the text they came
// from; missing labels are left blank.
func NewReport(query string, k, storeSize int, results []vector.Result, labels map[uuid.UUID]string) *QueryReport {
	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{Rank: i + 1, ID: r.ID, Label: labels[r.ID], Score: r.Score}
	}
	return &QueryReport{Query: query, K: k, StoreSize: storeSize, Hits: hits}
}

// WriteReports writes reports to w in the given format.
func WriteReports(w io.Writer, reports []*QueryReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case OutputCompact:
		for _, r := range reports {
			for _, h := range r.Hits {
				if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%.4f\t%s\n", r.Query, h.Rank, h.ID, h.Score, h.Label); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		for _, r := range reports {
			writeReportText(w, r)
		}
		return nil
	}
}

func writeReportText(w io.Writer, r *QueryReport) {
	header := color.New(color.FgCyan, color.Bold)
	score := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)

	header.Fprintf(w, "Top %d most similar vectors", len(r.Hits))
	fmt.Fprintf(w, " for %s (k=%d, %d stored):\n", utils.Truncate(r.Query, 40), r.K, r.StoreSize)
	if len(r.Hits) == 0 {
		gray.Fprintln(w, "  (no results)")
		return
	}
	for _, h := range r.Hits {
		fmt.Fprintf(w, "UUID: %s, Similarity: ", h.ID)
		score.Fprintf(w, "%.4f", h.Score)
		if h.Label != "" {
			gray.Fprintf(w, "  %s", utils.Truncate(h.Label, 40))
		}
		fmt.Fprintln(w)
	}
}
