package buffer

// Range is a selection span of Len clusters starting at Start.
type Range struct {
	Start int
	Len   int
}

// End returns the exclusive end offset of r.
func (r Range) End() int { return r.Start + r.Len }

func (r Range) IsEmpty() bool { return r.Len <= 0 }

// Contains reports whether index addresses a cluster covered by r.
func (r Range) Contains(index int) bool {
	return index >= r.Start && index < r.End()
}

// ClampRange clamps r into a document of n clusters.
//
// The returned Range always satisfies:
// - 0 <= Start <= n
// - 0 <= Len and Start+Len <= n
func ClampRange(r Range, n int) Range {
	if n < 0 {
		n = 0
	}
	start := clampInt(r.Start, 0, n)
	end := r.Start + r.Len
	if r.Len < 0 {
		end = start
	}
	end = clampInt(end, start, n)
	return Range{Start: start, Len: end - start}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
