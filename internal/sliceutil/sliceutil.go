// Package sliceutil has generic slice helpers missing from package slices.
package sliceutil

// Filter returns the elements of s for which keep returns true.
func Filter[S ~[]E, E any](s S, keep func(E) bool) []E {
	result := make([]E, 0, len(s))

	for _, e := range s {
		if keep(e) {
			result = append(result, e)
		}
	}

	return result
}

// Map returns the results of applying f to every element of s.
func Map[S ~[]E, E any, R any](s S, f func(E) R) []R {
	result := make([]R, len(s))
	for i, e := range s {
		result[i] = f(e)
	}

	return result
}

// Unique returns s without repeated elements, keeping the first occurrence
// of each.
func Unique[S ~[]E, E comparable](s S) []E {
	seen := make(map[E]struct{}, len(s))
	result := make([]E, 0, len(s))

	for _, e := range s {
		if _, ok := seen[e]; ok {
			continue
		}

		seen[e] = struct{}{}
		result = append(result, e)
	}

	return result
}
