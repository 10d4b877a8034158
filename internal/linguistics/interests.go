package linguistics

import (
	"sort"
	"strings"
	"time"

	"github.com/nidhogg/ideoscope/internal/textstat"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// minOccurrences is the count a keyword must exceed to become an interest.
const minOccurrences = 2

// Interest is one keyword's lifetime in the conceptarium, as a span of
// calendar days.
type Interest struct {
	Keyword string    `json:"keyword"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Count   int       `json:"count"`
}

// Interests extracts keywords seen more than twice across all text
// thoughts and reports, for each, the day it first and last appeared and
// how many thoughts mention it. A keyword that lives within a single day
// spans to the next day. Rows are ordered by start day, then keyword.
func Interests(ctx *thought.Context) ([]Interest, error) {
	texts := ctx.TextThoughts()
	if len(texts) == 0 {
		return nil, thought.ErrNoData
	}
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].Timestamp.Before(texts[j].Timestamp)
	})

	lowered := make([]string, len(texts))
	parts := make([]string, len(texts))
	for i, t := range texts {
		lowered[i] = strings.ToLower(t.Content)
		parts[i] = t.Content
	}

	var out []Interest
	for _, kw := range textstat.FrequentKeyPhrases(strings.Join(parts, " "), minOccurrences) {
		var first, last time.Time
		count := 0
		for i, content := range lowered {
			if !strings.Contains(content, kw) {
				continue
			}
			if count == 0 {
				first = texts[i].Timestamp
			}
			last = texts[i].Timestamp
			count++
		}
		if count == 0 {
			// Singularized keyword absent from every raw text ("mice").
			continue
		}
		start := dayOf(first, ctx.Location)
		end := dayOf(last, ctx.Location)
		if end.Equal(start) {
			end = start.AddDate(0, 0, 1)
		}
		out = append(out, Interest{Keyword: kw, Start: start, End: end, Count: count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out, nil
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}
