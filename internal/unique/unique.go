package unique

// By removes items whose key was already seen. The first occurrence of a key
// wins and the relative order of the kept items is preserved.
func By[T any, K comparable](items []T, key func(T) K) []T {
	if len(items) < 2 {
		return items
	}

	seen := make(map[K]bool, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}

	return out
}
