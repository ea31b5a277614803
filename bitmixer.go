package automaton

const (
	// Golden ratio bit mixers.
	PHI_C32 = uint32(0x9e3779b9)
	PHI_C64 = uint64(0x9e3779b97f4a7c15)
)

func mix(key int) int {
	return mix32(key)
}

// mix32 is the 32 bit finalisation step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// mixInto folds v into the running hash h.
func mixInto(h uint64, v int) uint64 {
	h ^= uint64(uint32(mix32(v))) + PHI_C64 + (h << 6) + (h >> 2)
	return h
}
