package automaton

// grow extends s to size elements, filling the new slots with fill.
func grow[T any](s []T, size int, fill T) []T {
	if len(s) >= size {
		return s
	}
	add := size - len(s)
	for i := 0; i < add; i++ {
		s = append(s, fill)
	}
	return s
}
