// Package mocks provides in-memory stores for tests. Each store keeps records
// in insertion order and enforces the same unique keys as the real backends.
// Setting Err makes every call fail with it.
package mocks

import (
	"slices"
	"strings"
	"time"
)

// newestFirst orders items by creation time, latest first. Items created at
// the same instant keep reverse insertion order.
func newestFirst[T any](items []T, created func(T) time.Time) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b T) int {
		return created(b).Compare(created(a))
	})
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
