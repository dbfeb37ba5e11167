package core

import "sort"

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of src that shares no memory with it.
// A nil src yields nil.
func Clone(src []float64) []float64 {
	if src == nil {
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Linspace returns n evenly spaced samples from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// DeleteIndices returns buf without the elements at the given indices.
// Indices may be unsorted or repeated; out-of-range indices are ignored.
// The result reuses buf's backing array.
func DeleteIndices(buf []float64, indices []int) []float64 {
	if len(indices) == 0 {
		return buf
	}

	drop := SortedUnique(indices)
	out := buf[:0]
	next := 0
	for i, v := range buf {
		for next < len(drop) && drop[next] < i {
			next++
		}
		if next < len(drop) && drop[next] == i {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SortedUnique returns the ascending, de-duplicated copy of indices.
func SortedUnique(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	out := make([]int, len(indices))
	copy(out, indices)
	sort.Ints(out)

	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
