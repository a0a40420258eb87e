// Package mathkit provides overflow-aware integer arithmetic helpers.
package mathkit

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

func MaxInt[T constraints.Signed]() T {
	var zero T
	typeSizeInBits := 8 * unsafe.Sizeof(zero)
	// for signed integers this is all bits set except the sign bit
	return T((1 << (typeSizeInBits - 1)) - 1)
}

func MinInt[T constraints.Signed]() T {
	var zero T
	typeSizeInBits := 8 * unsafe.Sizeof(zero)
	return T(-1 << (typeSizeInBits - 1))
}

// SumInt adds two signed integers,
// reporting false instead of wrapping around when the sum would overflow.
func SumInt[INT constraints.Signed](a, b INT) (INT, bool) {
	if CanIntSumOverflow(a, b) {
		var zero INT
		return zero, false
	}
	return a + b, true
}

func CanIntSumOverflow[INT constraints.Signed](a, b INT) bool {
	less, more := a, b
	if more < less {
		less, more = more, less
	}
	switch {
	case 0 < less && 0 < more:
		maxLess := MaxInt[INT]() - more
		return maxLess < less // positive overflow
	case less < 0 && more < 0:
		minMore := MinInt[INT]() - less
		return more < minMore // negative overflow
	default:
		// mixed signs cannot overflow,
		// even MinInt plus MaxInt only ends up near zero
		return false
	}
}

// MulInt multiplies two signed integers,
// reporting false instead of wrapping around when the product would overflow.
func MulInt[INT constraints.Signed](x, y INT) (INT, bool) {
	if CanIntMulOverflow(x, y) {
		var zero INT
		return zero, false
	}
	return x * y, true
}

func CanIntMulOverflow[INT constraints.Signed](x, y INT) bool {
	if x == 0 || y == 0 {
		return false
	}
	var max uint64
	if isMulResPositive(x, y) {
		max = AbsInt(MaxInt[INT]())
	} else {
		max = AbsInt(MinInt[INT]())
	}
	return max/AbsInt(x) < AbsInt(y)
}

func isMulResPositive[INT constraints.Signed](x, y INT) bool {
	switch {
	case x < 0 && 0 < y: // - * + == -
		return false
	case 0 < x && y < 0: // + * - == -
		return false
	default:
		return true
	}
}

func AbsInt[N constraints.Signed](n N) uint64 {
	if n == MinInt[N]() {
		// overflows into MaxInt, then +1 equals the absolute MinInt
		return uint64(n-1) + 1
	}
	if n < 0 {
		n = -n
	}
	return uint64(n)
}
