package model

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"git.home.luguber.info/inful/blogbuilder/internal/posts"
)

// DateLayout is the Go layout matching the "YYYY MM DD" post date format.
const DateLayout = posts.DateLayout

// ParseDate parses a post date. The first three numeric fields are read as
// year, month and day, so "2023 06 01", "2023-06-01" and "2023/6/1" are all
// accepted. Out-of-range values such as "2023 02 30" are rejected.
func ParseDate(s string) (time.Time, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if len(fields) < 3 || len(fields[0]) != 4 {
		return time.Time{}, false
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, false
		}
		parts[i] = n
	}

	t := time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
	if t.Year() != parts[0] || int(t.Month()) != parts[1] || t.Day() != parts[2] {
		return time.Time{}, false
	}
	return t, true
}

// CompareNewestFirst orders two date strings newest first. It returns 0 when
// either date does not parse, so callers never rank an undated post.
func CompareNewestFirst(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	if !okA || !okB {
		return 0
	}
	return tb.Compare(ta)
}

// CompareOldestFirst is the inverse of CompareNewestFirst.
func CompareOldestFirst(a, b string) int {
	return -CompareNewestFirst(a, b)
}

// SortEntriesNewestFirst sorts entries in place. Entries with valid dates are
// put in descending order among the positions they occupy; entries with
// invalid dates stay where they are. Ties keep their relative order.
func SortEntriesNewestFirst(entries []DateEntry) {
	sortByDate(entries, func(e DateEntry) string { return e.Date }, CompareNewestFirst)
}

// SortNewestFirst returns a copy of list ordered newest first using the same
// rules as SortEntriesNewestFirst.
func SortNewestFirst(list []*posts.Post) []*posts.Post {
	out := slices.Clone(list)
	sortByDate(out, postDate, CompareNewestFirst)
	return out
}

// SortOldestFirst returns a copy of list ordered oldest first.
func SortOldestFirst(list []*posts.Post) []*posts.Post {
	out := slices.Clone(list)
	sortByDate(out, postDate, CompareOldestFirst)
	return out
}

func postDate(p *posts.Post) string {
	if p == nil {
		return ""
	}
	return p.Date
}

// sortByDate reorders only the elements with a valid date. The comparator
// treats invalid dates as equal to everything, which is not a strict weak
// ordering, so invalid elements are pinned to their slots instead of being
// handed to the sort.
func sortByDate[T any](items []T, date func(T) string, cmp func(a, b string) int) {
	var slots []int
	var valid []T
	for i, item := range items {
		if _, ok := ParseDate(date(item)); ok {
			slots = append(slots, i)
			valid = append(valid, item)
		}
	}

	slices.SortStableFunc(valid, func(a, b T) int { return cmp(date(a), date(b)) })

	for i, slot := range slots {
		items[slot] = valid[i]
	}
}

// FormatPostDate formats the post date with a Go time layout. A post whose
// date does not parse is returned unchanged.
func FormatPostDate(p *posts.Post, layout string) string {
	if p == nil {
		return ""
	}
	t, ok := ParseDate(p.Date)
	if !ok {
		return p.Date
	}
	return t.Format(layout)
}
