package spancoll

// bitset is the dedup tracker used by single-pass set-algebra scans.
// It is sized to a fixed snapshot of the left-hand count at the start of a
// pass and is never resized mid-pass.
type bitset []uint64

func makeBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) has(i int) bool {
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}
