package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flora-sim/vecstats/agg/vecfile"
)

func repWith(id string, key EntityKey, signal string, values ...float64) *RepetitionAggregate {
	rep := &RepetitionAggregate{
		ID:          id,
		Definitions: make(vecfile.DefinitionTable),
		Entities:    make(EntityStats),
		Vectors:     make(VectorStats),
	}
	for _, v := range values {
		rep.Entities.Observe(key, signal, v)
	}
	return rep
}

func TestCombine_MeanAndPopulationStd(t *testing.T) {
	// per-repetition means are 2.0, 4.0 and 6.0
	reps := []*RepetitionAggregate{
		repWith("0", "0", "x", 1.0, 3.0),
		repWith("1", "0", "x", 4.0),
		repWith("2", "0", "x", 2.0, 10.0),
	}

	report := Combine(reps, 0)

	cs, ok := report.NodeStats[EntityKey("0")]["x"]
	require.True(t, ok)
	assert.InDelta(t, 4.0, cs.Mean, 1e-12)
	// population std of {2, 4, 6} = sqrt(8/3)
	assert.InDelta(t, 1.6329931618554518, cs.Std, 1e-9)
	assert.Equal(t, []string{"0", "1", "2"}, report.Repetitions)
}

func TestCombine_MissingPairIsExcludedNotZero(t *testing.T) {
	// repetition 1 never sampled the pair; it must not drag the mean down
	reps := []*RepetitionAggregate{
		repWith("0", "3", "x", 2.0),
		repWith("1", "4", "y", 9.0),
		repWith("2", "3", "x", 6.0),
	}

	report := Combine(reps, 0)

	cs, ok := report.NodeStats[EntityKey("3")]["x"]
	require.True(t, ok)
	assert.InDelta(t, 4.0, cs.Mean, 1e-12)
	assert.InDelta(t, 2.0, cs.Std, 1e-12)
}

func TestCombine_ZeroCountPairsOmitted(t *testing.T) {
	rep := repWith("0", "1", "x", 5.0)
	// declared but never sampled: zero-count identity only
	_ = rep.Entities.stat("1", "unsampled")
	_ = rep.Entities.stat("2", "unsampled")

	report := Combine([]*RepetitionAggregate{rep}, 0)

	require.Contains(t, report.NodeStats, EntityKey("1"))
	assert.NotContains(t, report.NodeStats[EntityKey("1")], "unsampled")
	assert.NotContains(t, report.NodeStats, EntityKey("2"),
		"an entity with only zero-count pairs is absent from the report")
}

func TestCombine_SingleRepetitionHasZeroStd(t *testing.T) {
	report := Combine([]*RepetitionAggregate{repWith("0", "0", "x", 3.0, 5.0)}, 0)

	cs := report.NodeStats[EntityKey("0")]["x"]
	assert.InDelta(t, 4.0, cs.Mean, 1e-12)
	assert.InDelta(t, 0.0, cs.Std, 1e-12)
}

func TestCombine_VectorInfoAndDroppedCount(t *testing.T) {
	rep := repWith("0", "0", "x", 1.0)
	rep.Definitions[4] = vecfile.Definition{VectorID: 4, Module: "net.node[0].app", Signal: "x"}

	report := Combine([]*RepetitionAggregate{rep}, 2)

	assert.Equal(t, 2, report.DroppedRepetitions)
	require.Contains(t, report.VectorInfo, "4")
	assert.Equal(t, [2]string{"net.node[0].app", "x"}, report.VectorInfo["4"])
}

func TestCombine_NoRepetitions(t *testing.T) {
	report := Combine(nil, 3)

	assert.Empty(t, report.NodeStats)
	assert.Empty(t, report.Repetitions)
	assert.Equal(t, 3, report.DroppedRepetitions)
}
