// Package collection holds the slice helpers the in-memory store uses to
// answer the same questions the Mongo pipelines do:
//
//	rows := collection.FlatMap(payments, func(p models.Payment) []models.MenuItem { ... })
//	byCat := collection.GroupBy(rows, func(m models.MenuItem) string { return m.Category })
//	revenue := collection.Sum(payments, func(p models.Payment) float64 { return p.Price })
package collection

// Number is anything Sum can add.
type Number interface {
	~int | ~int64 | ~float64
}

// FlatMap maps each element to a slice and concatenates the results.
// An element mapped to an empty slice contributes nothing.
func FlatMap[T, R any](s []T, fn func(T) []R) []R {
	var out []R
	for _, v := range s {
		out = append(out, fn(v)...)
	}
	return out
}

// Filter returns the elements of s that match fn. The result is never nil,
// so it encodes as [] rather than null.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := []T{}
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reject is the inverse of Filter.
func Reject[T any](s []T, fn func(T) bool) []T {
	return Filter(s, func(v T) bool { return !fn(v) })
}

// Index returns the position of the first element matching fn, or -1.
func Index[T any](s []T, fn func(T) bool) int {
	for i, v := range s {
		if fn(v) {
			return i
		}
	}
	return -1
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	if i := Index(s, fn); i >= 0 {
		return s[i], true
	}
	var zero T
	return zero, false
}

// GroupBy partitions s by the key returned by fn.
func GroupBy[T any, K comparable](s []T, fn func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, v := range s {
		k := fn(v)
		out[k] = append(out[k], v)
	}
	return out
}

// KeyBy indexes s by the key returned by fn. Later elements win.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// Sum adds up fn(v) over s. An empty s sums to zero.
func Sum[T any, N Number](s []T, fn func(T) N) N {
	var total N
	for _, v := range s {
		total += fn(v)
	}
	return total
}
