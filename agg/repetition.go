package agg

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/flora-sim/vecstats/agg/vecfile"
)

// RepetitionInput names the result files of one simulation repetition.
type RepetitionInput struct {
	ID          string
	VectorFiles []string
	ScalarFiles []string
}

// RepetitionAggregate holds one repetition's per-entity statistics together
// with the vector declarations that produced them. It is built fresh per
// repetition and discarded after cross-repetition combination.
type RepetitionAggregate struct {
	ID          string
	Definitions vecfile.DefinitionTable
	Entities    EntityStats
	Vectors     VectorStats
	Skips       SkipCounts
}

// Aggregator runs chunked, parallel aggregation over trace files. It
// carries all configuration explicitly; no package-level state is
// consulted, so independent Aggregators can run side by side.
type Aggregator struct {
	cfg        Config
	classifier *Classifier
}

// NewAggregator builds an Aggregator, filling unset or non-positive
// Config fields from DefaultConfig.
func NewAggregator(cfg Config) *Aggregator {
	cfg = cfg.withDefaults()
	return &Aggregator{cfg: cfg, classifier: NewClassifier(cfg.GatewayMarkers)}
}

// AggregateRepetition scans all of one repetition's result files and
// reduces them to a single RepetitionAggregate. Vector files are split
// into byte ranges and scanned by a bounded worker pool. Any worker error
// fails the whole repetition: a partial scan must never be reported as a
// complete aggregate.
func (a *Aggregator) AggregateRepetition(ctx context.Context, in RepetitionInput) (*RepetitionAggregate, error) {
	rep := &RepetitionAggregate{
		ID:          in.ID,
		Definitions: make(vecfile.DefinitionTable),
		Entities:    make(EntityStats),
		Vectors:     make(VectorStats),
	}
	for _, path := range in.VectorFiles {
		if err := a.foldVectorFile(ctx, rep, path); err != nil {
			return nil, err
		}
	}
	for _, path := range in.ScalarFiles {
		if err := a.foldScalarFile(rep, path); err != nil {
			return nil, err
		}
	}
	a.seedDefinedSignals(rep)
	if total := rep.Skips.Total(); total > 0 {
		logrus.Warnf("repetition %s: skipped %d lines (%d malformed, %d unknown vector id, %d unclassifiable module)",
			in.ID, total, rep.Skips.Malformed, rep.Skips.UnknownVector, rep.Skips.Unclassified)
	}
	return rep, nil
}

func (a *Aggregator) foldVectorFile(ctx context.Context, rep *RepetitionAggregate, path string) error {
	defs, err := a.readDefinitions(path)
	if err != nil {
		return err
	}
	for id, def := range defs {
		rep.Definitions[id] = def
	}

	var p *partial
	if vecfile.IsCompressed(path) {
		p, err = a.scanCompressed(path, defs)
	} else {
		p, err = a.scanChunked(ctx, path, defs)
	}
	if err != nil {
		return err
	}
	rep.Entities.Merge(p.entities)
	rep.Vectors.Merge(p.vectors)
	rep.Skips.Add(p.skips)
	return nil
}

// readDefinitions is the first pass over a vector file: collect every
// declaration so the scan workers share one immutable lookup table.
func (a *Aggregator) readDefinitions(path string) (vecfile.DefinitionTable, error) {
	r, err := vecfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()
	defs, err := vecfile.ScanDefinitions(r)
	if err != nil {
		return nil, fmt.Errorf("reading definitions from %s: %w", path, err)
	}
	return defs, nil
}

func (a *Aggregator) scanCompressed(path string, defs vecfile.DefinitionTable) (*partial, error) {
	r, err := vecfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()
	p, err := a.scanAll(r, defs)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return p, nil
}

// scanChunked splits the file into byte ranges and scans them with a
// bounded pool of workers. The fold of worker partials is the only
// synchronization point and runs on the calling goroutine.
func (a *Aggregator) scanChunked(ctx context.Context, path string, defs vecfile.DefinitionTable) (*partial, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	ranges := SplitRanges(info.Size(), a.cfg.ChunkSizeBytes)
	merged := newPartial()
	if len(ranges) == 0 {
		return merged, nil
	}

	workers := a.cfg.MaxWorkers
	if workers > len(ranges) {
		workers = len(ranges)
	}

	partials := make([]*partial, len(ranges))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rng := range ranges {
		i, rng := i, rng
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := a.scanRange(path, defs, rng)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, p := range partials {
		merged.merge(p)
	}
	logrus.Debugf("%s: merged %d chunk partials (%d workers)", path, len(ranges), workers)
	return merged, nil
}

// seedDefinedSignals inserts the zero-count identity for every declared
// (entity, signal) pair that received no samples, so a definitions-only
// file still yields an aggregate naming all its signals.
func (a *Aggregator) seedDefinedSignals(rep *RepetitionAggregate) {
	for _, def := range rep.Definitions {
		key, ok := a.classifier.Classify(def.Module)
		if !ok {
			continue
		}
		_ = rep.Entities.stat(key, def.Signal)
	}
}
