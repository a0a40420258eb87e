package spancoll

import "slices"

// indexOf finds the first position of v within vs.
// A nil eq means native equality, which takes the slices.Index fast path
// instead of calling through a comparer on every slot.
func indexOf[T comparable](vs []T, v T, eq Comparer[T]) int {
	if eq == nil {
		return slices.Index(vs, v)
	}
	for i := range vs {
		if eq(vs[i], v) {
			return i
		}
	}
	return -1
}

// lastIndexOf finds the last position of v within vs.
func lastIndexOf[T comparable](vs []T, v T, eq Comparer[T]) int {
	if eq == nil {
		for i := len(vs) - 1; 0 <= i; i-- {
			if vs[i] == v {
				return i
			}
		}
		return -1
	}
	for i := len(vs) - 1; 0 <= i; i-- {
		if eq(vs[i], v) {
			return i
		}
	}
	return -1
}

func indexWhere[T any](vs []T, pred func(T) bool) int {
	for i := range vs {
		if pred(vs[i]) {
			return i
		}
	}
	return -1
}

func lastIndexWhere[T any](vs []T, pred func(T) bool) int {
	for i := len(vs) - 1; 0 <= i; i-- {
		if pred(vs[i]) {
			return i
		}
	}
	return -1
}
