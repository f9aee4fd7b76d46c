package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/flora-sim/vecstats/agg"
)

// ListRepetitions finds the repetitions of a setup directory. OMNeT++
// writes one numeric subdirectory per repetition (0, 1, 2, ...); each
// holds the run's vector and scalar files, possibly gzip-compressed.
// Non-numeric subdirectories (plots, analysis, exports) are ignored.
func ListRepetitions(setupDir string) ([]agg.RepetitionInput, error) {
	entries, err := os.ReadDir(setupDir)
	if err != nil {
		return nil, fmt.Errorf("reading setup dir: %w", err)
	}

	type repDir struct {
		n    int
		name string
	}
	var reps []repDir
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		reps = append(reps, repDir{n: n, name: e.Name()})
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i].n < reps[j].n })

	inputs := make([]agg.RepetitionInput, 0, len(reps))
	for _, rd := range reps {
		dir := filepath.Join(setupDir, rd.name)
		vecs, err := globResults(dir, "*.vec")
		if err != nil {
			return nil, err
		}
		scas, err := globResults(dir, "*.sca")
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, agg.RepetitionInput{
			ID:          rd.name,
			VectorFiles: vecs,
			ScalarFiles: scas,
		})
	}
	return inputs, nil
}

func globResults(dir, pattern string) ([]string, error) {
	plain, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	gz, err := filepath.Glob(filepath.Join(dir, pattern+".gz"))
	if err != nil {
		return nil, err
	}
	return append(plain, gz...), nil
}
