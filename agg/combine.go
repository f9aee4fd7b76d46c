package agg

import (
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// CrossRepStat summarizes one (entity, signal) pair across repetitions:
// the mean of the per-repetition means and their population standard
// deviation.
type CrossRepStat struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Combine folds the per-repetition aggregates of one setup into the final
// report. For each (entity, signal) pair it computes the mean of every
// repetition that actually sampled the pair, then the mean and population
// standard deviation of those per-repetition means. A repetition without
// the pair is excluded from that pair, not counted as zero; a pair no
// repetition sampled is omitted entirely. dropped records how many
// repetitions failed aggregation and were excluded upstream.
func Combine(reps []*RepetitionAggregate, dropped int) *AggregateReport {
	report := &AggregateReport{
		VectorInfo:         make(map[string][2]string),
		NodeStats:          make(map[EntityKey]map[string]CrossRepStat),
		Repetitions:        make([]string, 0, len(reps)),
		DroppedRepetitions: dropped,
	}

	pairs := make(map[EntityKey]map[string]struct{})
	for _, rep := range reps {
		report.Repetitions = append(report.Repetitions, rep.ID)
		for id, def := range rep.Definitions {
			report.VectorInfo[strconv.Itoa(id)] = [2]string{def.Module, def.Signal}
		}
		for key, signals := range rep.Entities {
			known, ok := pairs[key]
			if !ok {
				known = make(map[string]struct{})
				pairs[key] = known
			}
			for signal := range signals {
				known[signal] = struct{}{}
			}
		}
	}

	for key, signals := range pairs {
		for signal := range signals {
			means := repetitionMeans(reps, key, signal)
			if len(means) == 0 {
				continue
			}
			out, ok := report.NodeStats[key]
			if !ok {
				out = make(map[string]CrossRepStat)
				report.NodeStats[key] = out
			}
			out[signal] = CrossRepStat{
				Mean: stat.Mean(means, nil),
				Std:  stat.PopStdDev(means, nil),
			}
		}
	}
	return report
}

// repetitionMeans collects the per-repetition means of one (entity,
// signal) pair, skipping repetitions with no samples for it.
func repetitionMeans(reps []*RepetitionAggregate, key EntityKey, signal string) []float64 {
	var means []float64
	for _, rep := range reps {
		st, ok := rep.Entities[key][signal]
		if !ok {
			continue
		}
		if m, ok := st.Mean(); ok {
			means = append(means, m)
		}
	}
	return means
}
