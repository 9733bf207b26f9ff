package session

// MergeByID reconciles an ordered sequence of records by identity:
// exactly one record per distinct id, value taken from the last
// occurrence, slot taken from the first. With the prepend-most-recent
// convention a freshly created record stays first and wins over any
// stale duplicate further down. Idempotent.
func MergeByID[T any](items []T, id func(T) int) []T {
	slot := make(map[int]int, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		key := id(item)
		if at, seen := slot[key]; seen {
			out[at] = item
			continue
		}
		slot[key] = len(out)
		out = append(out, item)
	}

	return out
}
