package space

// Range is a contiguous run of indices [Start, Start+Count) owned by exactly
// one worker.
type Range struct {
	Start uint64
	Count uint64
}

// End returns the first index past the range.
func (r Range) End() uint64 {
	return r.Start + r.Count
}

// Partition splits [offset, effectiveTotal) into at most workers contiguous
// ranges. The split is as even as possible: the first remaining%workers
// ranges carry one extra element. When there are fewer elements than
// workers, each produced range holds exactly one element, so a worker is
// never spawned with zero work. An exhausted range (offset >= effectiveTotal)
// partitions to nil.
func Partition(offset, effectiveTotal uint64, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	if offset >= effectiveTotal {
		return nil
	}
	remaining := effectiveTotal - offset

	share := remaining / uint64(workers)
	extra := remaining % uint64(workers)
	if share == 0 {
		workers = int(remaining)
		share = 1
		extra = 0
	}

	ranges := make([]Range, 0, workers)
	start := offset
	for i := 0; i < workers; i++ {
		count := share
		if extra > 0 {
			count++
			extra--
		}
		ranges = append(ranges, Range{Start: start, Count: count})
		start += count
	}
	return ranges
}
