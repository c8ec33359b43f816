package model

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"git.home.luguber.info/inful/blogbuilder/internal/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{in: "2023 06 01", valid: true, want: "2023-06-01"},
		{in: "2023-06-01", valid: true, want: "2023-06-01"},
		{in: "2023 6 1", valid: true, want: "2023-06-01"},
		{in: "2024 02 29", valid: true, want: "2024-02-29"},
		{in: "2023 02 29", valid: false},
		{in: "2023 13 01", valid: false},
		{in: "23 01 01", valid: false},
		{in: "2023 01", valid: false},
		{in: "", valid: false},
		{in: "yesterday", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			require.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Negative(t, CompareNewestFirst("2023 06 01", "2023 01 01"))
	assert.Positive(t, CompareNewestFirst("2023 01 01", "2023 06 01"))
	assert.Zero(t, CompareNewestFirst("2023 01 01", "2023 01 01"))
	assert.Zero(t, CompareNewestFirst("garbage", "2023 01 01"))
	assert.Zero(t, CompareNewestFirst("2023 01 01", ""))

	assert.Positive(t, CompareOldestFirst("2023 06 01", "2023 01 01"))
	assert.Zero(t, CompareOldestFirst("", ""))
}

func TestSortEntriesNewestFirst_InvalidDatesKeepTheirSlots(t *testing.T) {
	entries := []DateEntry{
		{Date: "2020 01 01"},
		{Date: "not a date"},
		{Date: "2022 01 01"},
		{Date: ""},
		{Date: "2021 01 01"},
	}

	SortEntriesNewestFirst(entries)

	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Date
	}
	assert.Equal(t, []string{"2022 01 01", "not a date", "2021 01 01", "", "2020 01 01"}, got)
}

func TestSortEntriesNewestFirst_Property(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))

	for round := range 200 {
		n := rng.IntN(20)
		entries := make([]DateEntry, n)
		for i := range entries {
			entries[i] = DateEntry{Date: randomDate(rng), Post: &posts.Post{ID: fmt.Sprintf("p%d", i)}}
		}
		before := make([]DateEntry, n)
		copy(before, entries)

		SortEntriesNewestFirst(entries)

		require.Len(t, entries, n)
		var prev *DateEntry
		for i := range entries {
			if _, ok := ParseDate(entries[i].Date); !ok {
				assert.Equal(t, before[i], entries[i], "round %d: invalid entry moved", round)
				continue
			}
			if prev != nil {
				assert.LessOrEqual(t, CompareNewestFirst(prev.Date, entries[i].Date), 0, "round %d", round)
			}
			prev = &entries[i]
		}
		assert.ElementsMatch(t, before, entries)
	}
}

func TestSortNewestAndOldestFirst_ReturnCopies(t *testing.T) {
	in := []*posts.Post{
		{ID: "a", Date: "2020 01 01"},
		{ID: "b", Date: "2022 01 01"},
		{ID: "c", Date: "2021 01 01"},
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(SortNewestFirst(in)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(SortOldestFirst(in)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
}

func TestFormatPostDate(t *testing.T) {
	assert.Equal(t, "June 1, 2023", FormatPostDate(&posts.Post{Date: "2023 06 01"}, "January 2, 2006"))
	assert.Equal(t, "someday", FormatPostDate(&posts.Post{Date: "someday"}, "January 2, 2006"))
	assert.Empty(t, FormatPostDate(nil, DateLayout))
}

func randomDate(rng *rand.Rand) string {
	switch rng.IntN(5) {
	case 0:
		return ""
	case 1:
		return "draft"
	default:
		return fmt.Sprintf("%04d %02d %02d", 2000+rng.IntN(5), 1+rng.IntN(12), 1+rng.IntN(28))
	}
}
