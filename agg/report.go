package agg

import (
	"encoding/json"
	"fmt"
	"os"
)

// AggregateReport is the persisted result of one setup: every vector
// declaration seen, cross-repetition statistics per entity and signal,
// and the repetitions that contributed. It is written wholesale and
// overwritten wholesale when a setup is re-aggregated.
type AggregateReport struct {
	// VectorInfo maps vector id (as a string, matching the JSON layout
	// downstream tooling consumes) to [module path, signal name].
	VectorInfo         map[string][2]string                  `json:"vector_info"`
	NodeStats          map[EntityKey]map[string]CrossRepStat `json:"aggregated_node_stats"`
	Repetitions        []string                              `json:"repetitions"`
	DroppedRepetitions int                                   `json:"dropped_repetitions"`
}

// Save writes the report as indented JSON, replacing any existing file.
func (r *AggregateReport) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// LoadReport reads a report previously written by Save.
func LoadReport(path string) (*AggregateReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var report AggregateReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &report, nil
}
