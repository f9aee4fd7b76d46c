package agg

import "math"

// RunningStat is the accumulator for one-pass, order-independent
// aggregation of sampled values. Merging two accumulators for the same
// subject gives the same result as observing all their values in one
// sequential scan, which is what makes chunked scanning exact.
//
// The zero-count identity is {0, 0, +Inf, -Inf}; merging it into any stat
// leaves that stat unchanged. Use NewRunningStat, not the struct zero value.
type RunningStat struct {
	Count uint64  `json:"count"`
	Sum   float64 `json:"sum"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// NewRunningStat returns the identity element of the merge operation.
func NewRunningStat() *RunningStat {
	return &RunningStat{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Observe folds one sampled value into the accumulator.
func (s *RunningStat) Observe(v float64) {
	s.Count++
	s.Sum += v
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
}

// Merge folds other into s. Merging is associative and commutative, so
// chunk partials can be combined in any grouping and order.
func (s *RunningStat) Merge(other *RunningStat) {
	s.Count += other.Count
	s.Sum += other.Sum
	if other.Min < s.Min {
		s.Min = other.Min
	}
	if other.Max > s.Max {
		s.Max = other.Max
	}
}

// Mean returns Sum/Count. ok is false when nothing has been observed.
func (s *RunningStat) Mean() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}
	return s.Sum / float64(s.Count), true
}

// EntityKey identifies one statistical subject derived from a module path:
// a plain node index ("3") or a gateway sharing the same index ("GW3").
// The prefix keeps gateway 3 and node 3 from merging into one subject.
type EntityKey string

// EntityStats maps entity -> signal name -> accumulated stats.
type EntityStats map[EntityKey]map[string]*RunningStat

// stat returns the accumulator for (key, signal), creating the identity
// element on first touch.
func (es EntityStats) stat(key EntityKey, signal string) *RunningStat {
	signals, ok := es[key]
	if !ok {
		signals = make(map[string]*RunningStat)
		es[key] = signals
	}
	st, ok := signals[signal]
	if !ok {
		st = NewRunningStat()
		signals[signal] = st
	}
	return st
}

// Observe folds one value into the (entity, signal) accumulator.
func (es EntityStats) Observe(key EntityKey, signal string, v float64) {
	es.stat(key, signal).Observe(v)
}

// Merge folds all of other's accumulators into es.
func (es EntityStats) Merge(other EntityStats) {
	for key, signals := range other {
		for signal, st := range signals {
			es.stat(key, signal).Merge(st)
		}
	}
}

// VectorStats maps raw vector id -> accumulated stats. This is the
// file-level view, kept independent of entity classification so dropped
// modules are still visible when debugging a trace.
type VectorStats map[int]*RunningStat

// Observe folds one value into the accumulator for vector id.
func (vs VectorStats) Observe(id int, v float64) {
	st, ok := vs[id]
	if !ok {
		st = NewRunningStat()
		vs[id] = st
	}
	st.Observe(v)
}

// Merge folds all of other's accumulators into vs.
func (vs VectorStats) Merge(other VectorStats) {
	for id, st := range other {
		mine, ok := vs[id]
		if !ok {
			mine = NewRunningStat()
			vs[id] = mine
		}
		mine.Merge(st)
	}
}

// SkipCounts tallies lines excluded from aggregation, by reason. Skipping
// is the intended response to noisy simulator output and never aborts a
// scan; the counts make a suspiciously lossy run visible in the logs.
type SkipCounts struct {
	Malformed     uint64 // format or numeric conversion failure
	UnknownVector uint64 // sample referenced an undeclared vector id
	Unclassified  uint64 // module path matched no recognized entity pattern
}

// Add folds other's tallies into s.
func (s *SkipCounts) Add(other SkipCounts) {
	s.Malformed += other.Malformed
	s.UnknownVector += other.UnknownVector
	s.Unclassified += other.Unclassified
}

// Total returns the number of skipped lines across all reasons.
func (s SkipCounts) Total() uint64 {
	return s.Malformed + s.UnknownVector + s.Unclassified
}
