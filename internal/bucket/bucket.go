// Package bucket assigns thoughts to whole-day, week or month age buckets
// relative to an analysis' reference instant.
//
// Ages are returned as fresh slices parallel to Context.Thoughts and never
// written back onto the thoughts, so analyses at different granularities
// cannot observe each other's buckets.
package bucket

import (
	"math"
	"sort"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// Granularity is the width of one age bucket.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
)

// Seconds returns the bucket width in seconds. A month is 30 days.
func (g Granularity) Seconds() float64 {
	switch g {
	case Week:
		return 7 * 86400
	case Month:
		return 30 * 86400
	default:
		return 86400
	}
}

func (g Granularity) String() string {
	switch g {
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return "day"
	}
}

// ParseGranularity accepts "day", "week" and "month".
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "day":
		return Day, true
	case "week":
		return Week, true
	case "month":
		return Month, true
	}
	return 0, false
}

// Age returns floor((now - t) / width) for a single thought.
func Age(ctx *thought.Context, t thought.Thought, g Granularity) int {
	return int(math.Floor(ctx.Now.Sub(t.Timestamp).Seconds() / g.Seconds()))
}

// Ages returns the bucket index of every thought, parallel to ctx.Thoughts.
func Ages(ctx *thought.Context, g Granularity) []int {
	ages := make([]int, len(ctx.Thoughts))
	for i, t := range ctx.Thoughts {
		ages[i] = Age(ctx, t, g)
	}
	return ages
}

// MaxAge returns the largest age, or ErrNoData for no ages.
func MaxAge(ages []int) (int, error) {
	if len(ages) == 0 {
		return 0, thought.ErrNoData
	}
	m := ages[0]
	for _, a := range ages[1:] {
		if a > m {
			m = a
		}
	}
	return m, nil
}

// Counts returns a zero-filled histogram of ages from 0 to max(ages).
func Counts(ages []int) ([]int, error) {
	m, err := MaxAge(ages)
	if err != nil {
		return nil, err
	}
	counts := make([]int, m+1)
	for _, a := range ages {
		counts[a]++
	}
	return counts, nil
}

// Groups maps a bucket age to the thoughts in it.
type Groups struct {
	Members map[int][]thought.Thought
	Max     int
}

// Group buckets the collection at granularity g.
func Group(ctx *thought.Context, g Granularity) (Groups, error) {
	return GroupThoughts(ctx, ctx.Thoughts, g)
}

// GroupThoughts buckets a subset of a context's thoughts.
func GroupThoughts(ctx *thought.Context, thoughts []thought.Thought, g Granularity) (Groups, error) {
	if len(thoughts) == 0 {
		return Groups{}, thought.ErrNoData
	}
	out := Groups{Members: make(map[int][]thought.Thought)}
	for _, t := range thoughts {
		a := Age(ctx, t, g)
		out.Members[a] = append(out.Members[a], t)
		if a > out.Max {
			out.Max = a
		}
	}
	return out, nil
}

// NonEmpty returns the occupied ages in ascending order.
func (g Groups) NonEmpty() []int {
	ages := make([]int, 0, len(g.Members))
	for a := range g.Members {
		ages = append(ages, a)
	}
	sort.Ints(ages)
	return ages
}
