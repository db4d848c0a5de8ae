// Package analytics aggregates the interaction log for display and export.
package analytics

import "sort"

type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountBy groups items by key and orders the groups by count descending.
// Equal counts keep the order in which their key was first seen.
func CountBy[T any](items []T, key func(T) string) []Count {
	index := make(map[string]int)
	out := make([]Count, 0)
	for _, it := range items {
		k := key(it)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Count{Key: k, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns at most n leading counts; n <= 0 returns all of them.
func Top(counts []Count, n int) []Count {
	if n <= 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}
