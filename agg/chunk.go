package agg

// ByteRange is a half-open [Start, End) slice of a file. Ranges produced
// by SplitRanges are byte-offset suggestions only: they need not begin or
// end on a line boundary. Line ownership is resolved by the scan rule in
// scanRange: a line belongs to the range containing its first byte.
type ByteRange struct {
	Start int64
	End   int64
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int64 {
	return r.End - r.Start
}

// SplitRanges partitions [0, fileSize) into contiguous ranges of at most
// chunkSize bytes each. An empty file yields no ranges; chunkSize <= 0
// yields a single range covering the whole file.
func SplitRanges(fileSize, chunkSize int64) []ByteRange {
	if fileSize <= 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = fileSize
	}
	ranges := make([]ByteRange, 0, fileSize/chunkSize+1)
	for start := int64(0); start < fileSize; start += chunkSize {
		end := start + chunkSize
		if end > fileSize {
			end = fileSize
		}
		ranges = append(ranges, ByteRange{Start: start, End: end})
	}
	return ranges
}
