package stm

import "unsafe"

// bloomFilter is a single-word (64-bit) Bloom filter over addresses already
// present in a transaction's write set. It is purely an accelerator for the
// common "definitely not written" case in writeSet.find: write-set
// membership is exact, so every positive (including false positives) still
// falls through to the linear scan there. This mirrors stm_wbctl.h's
// USE_BLOOM_FILTER path, which ORs a per-address filter bit into
// tx->w_set.bloom on every write and ANDs against it before bothering to
// scan.
type bloomFilter uint64

func filterBits(addr *Word) bloomFilter {
	h := uint64(uintptr(unsafe.Pointer(addr)))
	// Two bits derived from different shifts of the same hash, spreading
	// load across the 64-bit filter without a second hash function.
	b1 := (h >> 3) & 63
	b2 := (h >> 11) & 63
	return bloomFilter(1<<b1 | 1<<b2)
}

func (f *bloomFilter) add(addr *Word) {
	*f |= filterBits(addr)
}

// maybeContains reports whether addr might be in the set the filter was
// built from. False means "definitely not"; true means "maybe, go check."
func (f bloomFilter) maybeContains(addr *Word) bool {
	bits := filterBits(addr)
	return f&bits == bits
}

func (f *bloomFilter) reset() {
	*f = 0
}
