// Package chunk partitions permutation replicates into fixed-size batches.
//
// Batches are the unit of parallel work and of seed derivation in phenotype
// permutation, so the partition depends only on the total and the batch size,
// never on the number of workers.
package chunk

// Range is a half-open interval [Start, End) of replicate indices.
type Range struct {
	Index int
	Start int
	End   int
}

// Len returns the number of replicates in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split partitions [0, total) into consecutive ranges of at most size.
// A non-positive size yields a single range.
func Split(total, size int) []Range {
	if total <= 0 {
		return nil
	}
	if size <= 0 || size > total {
		size = total
	}

	ranges := make([]Range, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		end := start + size
		if end > total {
			end = total
		}
		ranges = append(ranges, Range{Index: len(ranges), Start: start, End: end})
	}
	return ranges
}
