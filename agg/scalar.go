package agg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/flora-sim/vecstats/agg/vecfile"
)

// foldScalarFile folds every scalar record into the repetition as a
// one-sample observation, so scalars and vector samples share one stats
// model. Scalar files are small; they are always scanned sequentially.
func (a *Aggregator) foldScalarFile(rep *RepetitionAggregate, path string) error {
	r, err := vecfile.Open(path)
	if err != nil {
		return fmt.Errorf("opening scalars %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			a.foldScalarLine(rep, line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scanning scalars %s: %w", path, err)
		}
	}
}

func (a *Aggregator) foldScalarLine(rep *RepetitionAggregate, line string) {
	line = vecfile.SanitizeLine(strings.TrimRight(line, "\r\n"))
	if !vecfile.IsScalarLine(line) {
		return
	}
	scalar, ok := vecfile.ParseScalar(line)
	if !ok {
		rep.Skips.Malformed++
		return
	}
	key, ok := a.classifier.Classify(scalar.Module)
	if !ok {
		rep.Skips.Unclassified++
		return
	}
	rep.Entities.Observe(key, scalar.Name, scalar.Value)
}
