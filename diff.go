package seqz

// applyEdit turns list into items with a single Replace covering only the
// span between their common prefix and common suffix. It reports whether
// the list changed.
func applyEdit[T any](list *List[T], items []T, equal func(a, b T) bool) bool {
	old := list.items

	prefix := 0
	for prefix < len(old) && prefix < len(items) && equal(old[prefix], items[prefix]) {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(items)-prefix &&
		equal(old[len(old)-1-suffix], items[len(items)-1-suffix]) {
		suffix++
	}
	if prefix+suffix == len(old) && prefix+suffix == len(items) {
		return false
	}

	_ = list.Replace(prefix, len(old)-suffix, items[prefix:len(items)-suffix]...) //nolint:errcheck // bounds derived from list
	return true
}
