// Package vecfile decodes OMNeT++ result files: output vector files (.vec)
// holding vector declarations and sampled values, and output scalar files
// (.sca) holding single recorded scalars.
// This package has no dependencies on agg/; it parses single lines into
// pure data types.
//
// Parsing is deliberately lenient. Simulator output is noisy: runs get
// killed, disks fill up, and header lines vary between OMNeT++ versions.
// A line that cannot be decoded is reported as not-ok rather than as an
// error, so callers can count and skip it without aborting the scan. Lines
// are decoded best-effort: SanitizeLine drops bytes that are not valid
// UTF-8, so a corrupt byte costs at most the field it lands in, never the
// whole line.
package vecfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefinitionKeyword starts every vector declaration line.
const DefinitionKeyword = "vector"

// ScalarKeyword starts every scalar record line.
const ScalarKeyword = "scalar"

// Definition declares a vector: which module emitted it and under which
// signal name its samples are recorded.
type Definition struct {
	VectorID int
	Module   string
	Signal   string
}

// Sample is one recorded value of a declared vector. Time is decoded for
// validation but not retained by the aggregation layer.
type Sample struct {
	VectorID int
	Time     float64
	Value    float64
}

// Scalar is one recorded value from an output scalar file.
type Scalar struct {
	Module string
	Name   string
	Value  float64
}

// DefinitionTable maps vector id to its declaration. When a file redefines
// an id, the later declaration wins.
type DefinitionTable map[int]Definition

// SanitizeLine drops bytes that are not valid UTF-8. Simulators get
// killed mid-write; the salvageable fields of a partially corrupt line
// still count.
func SanitizeLine(line string) string {
	return strings.ToValidUTF8(line, "")
}

// IsDefinitionLine reports whether line is a vector declaration.
func IsDefinitionLine(line string) bool {
	return strings.HasPrefix(line, DefinitionKeyword+" ")
}

// IsScalarLine reports whether line is a scalar record.
func IsScalarLine(line string) bool {
	return strings.HasPrefix(line, ScalarKeyword+" ")
}

// IsSampleLine reports whether line can be a sample: sample lines start
// with the vector id, so the first byte is a digit.
func IsSampleLine(line string) bool {
	return len(line) > 0 && line[0] >= '0' && line[0] <= '9'
}

// ParseDefinition decodes a "vector <id> <module> <signal>" line.
// ok is false for short or malformed lines.
func ParseDefinition(line string) (Definition, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != DefinitionKeyword {
		return Definition{}, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return Definition{}, false
	}
	return Definition{VectorID: id, Module: fields[2], Signal: fields[3]}, true
}

// ParseSample decodes a "<id> <event> <time> <value>" sample line.
// ok is false when any numeric field fails to convert.
func ParseSample(line string) (Sample, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Sample{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Sample{}, false
	}
	t, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Sample{}, false
	}
	v, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Sample{}, false
	}
	return Sample{VectorID: id, Time: t, Value: v}, true
}

// ParseScalar decodes a "scalar <module> <name> <value>" line.
func ParseScalar(line string) (Scalar, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != ScalarKeyword {
		return Scalar{}, false
	}
	v, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Scalar{}, false
	}
	return Scalar{Module: fields[1], Name: fields[2], Value: v}, true
}

// ScanDefinitions reads every vector declaration from r. Non-definition
// and malformed lines are ignored; a later declaration of the same id
// replaces the earlier one. Line length is unbounded.
func ScanDefinitions(r io.Reader) (DefinitionTable, error) {
	table := make(DefinitionTable)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = SanitizeLine(strings.TrimRight(line, "\r\n"))
			if IsDefinitionLine(line) {
				if def, ok := ParseDefinition(line); ok {
					table[def.VectorID] = def
				}
			}
		}
		if err == io.EOF {
			return table, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scanning definitions: %w", err)
		}
	}
}
