package export

// SampleIndices deterministically selects the ordered subset of source
// frame indices to render.
//
// Indices are built as 0, stride, 2*stride, ... up to totalCount-1. When
// cap > 0 the sequence is truncated to the first cap entries. The final
// source index is then appended unconditionally if it is not already the
// last element, so the finished chart state is always represented. The
// result is therefore at most cap+1 entries long and strictly increasing.
//
// Pure function of its inputs: identical inputs always yield identical
// output.
//
// Degenerate case: totalCount == 0 yields [0] rather than an empty
// sequence. Callers that cannot render index 0 must reject empty frame
// lists before sampling; see NewPipeline.
func SampleIndices(totalCount, stride, cap int) []int {
	if stride < 1 {
		stride = 1
	}

	var indices []int
	for i := 0; i < totalCount; i += stride {
		indices = append(indices, i)
	}
	if cap > 0 && len(indices) > cap {
		indices = indices[:cap]
	}

	if len(indices) == 0 {
		indices = []int{0}
	}
	if last := totalCount - 1; last >= 0 && indices[len(indices)-1] != last {
		indices = append(indices, last)
	}
	return indices
}
