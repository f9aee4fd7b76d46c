package agg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flora-sim/vecstats/agg/vecfile"
)

const readBufferBytes = 1 << 20

// partial holds one worker's accumulators. Workers never share state;
// the merge step folds partials after every worker has returned.
type partial struct {
	entities EntityStats
	vectors  VectorStats
	skips    SkipCounts
}

func newPartial() *partial {
	return &partial{
		entities: make(EntityStats),
		vectors:  make(VectorStats),
	}
}

func (p *partial) merge(other *partial) {
	p.entities.Merge(other.entities)
	p.vectors.Merge(other.vectors)
	p.skips.Add(other.skips)
}

// scanRange scans one byte range of the trace file at path, folding every
// sample line whose first byte lies inside the range. Two rules make the
// partition exact no matter where range boundaries fall:
//
//   - a range starting past byte 0 begins reading one byte early: the
//     bytes up to and including the first line terminator are discarded.
//     When byte Start-1 is itself a terminator this discards nothing of
//     the range, so a line starting exactly at Start is kept; otherwise
//     the discarded line started in the previous range and is its to
//     process.
//   - the line in flight when the read position reaches End is consumed
//     in full, even if it extends past End; a line starting at End is
//     left for the next range.
//
// Every line is therefore processed by exactly one worker: the one whose
// range contains the line's first byte.
func (a *Aggregator) scanRange(path string, defs vecfile.DefinitionTable, rng ByteRange) (*partial, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	seekTo := rng.Start
	if rng.Start != 0 {
		seekTo = rng.Start - 1
	}
	if _, err := f.Seek(seekTo, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to %d in %s: %w", seekTo, path, err)
	}

	p := newPartial()
	r := bufio.NewReaderSize(f, readBufferBytes)
	pos := seekTo
	if rng.Start != 0 {
		skipped, err := r.ReadString('\n')
		pos += int64(len(skipped))
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	for pos < rng.End {
		line, err := r.ReadString('\n')
		pos += int64(len(line))
		if line != "" {
			a.foldLine(p, defs, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return p, nil
}

// scanAll scans an entire stream sequentially. Used for compressed inputs,
// which cannot be seeked into byte ranges. It reads lines the same way
// scanRange does, with no length cap, so a compressed file aggregates
// identically to its plain copy.
func (a *Aggregator) scanAll(r io.Reader, defs vecfile.DefinitionTable) (*partial, error) {
	p := newPartial()
	br := bufio.NewReaderSize(r, readBufferBytes)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			a.foldLine(p, defs, line)
		}
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scanning trace: %w", err)
		}
	}
}

// foldLine classifies one line and folds its value into the partial.
// Invalid bytes are dropped before field parsing; every decode failure
// that remains skips the line and bumps a counter. Scanning never aborts
// on content.
func (a *Aggregator) foldLine(p *partial, defs vecfile.DefinitionTable, line string) {
	line = vecfile.SanitizeLine(strings.TrimRight(line, "\r\n"))
	if !vecfile.IsSampleLine(line) {
		// declarations, version/attr headers and blank lines
		return
	}
	sample, ok := vecfile.ParseSample(line)
	if !ok {
		p.skips.Malformed++
		return
	}
	def, ok := defs[sample.VectorID]
	if !ok {
		p.skips.UnknownVector++
		return
	}
	p.vectors.Observe(sample.VectorID, sample.Value)
	key, ok := a.classifier.Classify(def.Module)
	if !ok {
		p.skips.Unclassified++
		return
	}
	p.entities.Observe(key, def.Signal, sample.Value)
}
