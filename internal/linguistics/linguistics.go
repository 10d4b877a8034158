// Package linguistics scores the text thoughts of a conceptarium over time:
// conciseness, readability, objectivity, sentiment and recurring interests.
package linguistics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/memetics"
	"github.com/nidhogg/ideoscope/internal/textstat"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// Metric names one linguistic measure.
type Metric string

const (
	Conciseness Metric = "conciseness"
	Readability Metric = "readability"
	Objectivity Metric = "objectivity"
	Sentiment   Metric = "sentiment"
)

// Metrics lists every Metric in display order.
var Metrics = []Metric{Conciseness, Readability, Objectivity, Sentiment}

// ParseMetric maps a name to a Metric.
func ParseMetric(s string) (Metric, bool) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// PerWeek computes metric m for every week bucket that holds text
// thoughts, most recent first. Conciseness averages per-thought reading
// time; the other metrics score the bucket's texts joined with spaces.
// Buckets whose joined text cannot be scored are omitted.
func PerWeek(ctx *thought.Context, m Metric) ([]memetics.AgeValue, error) {
	texts := ctx.TextThoughts()
	if len(texts) == 0 {
		return nil, thought.ErrNoData
	}
	groups, err := bucket.GroupThoughts(ctx, texts, bucket.Week)
	if err != nil {
		return nil, err
	}

	var out []memetics.AgeValue
	for _, age := range groups.NonEmpty() {
		members := groups.Members[age]
		var v float64
		if m == Conciseness {
			v = meanReadingTime(members)
		} else {
			v, err = Score(m, joined(members))
			if errors.Is(err, textstat.ErrInsufficientText) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("week %d: %w", age, err)
			}
		}
		out = append(out, memetics.AgeValue{Age: age, Value: v})
	}
	return out, nil
}

// OverPastMonth computes metric m for each text thought younger than one
// month bucket, for distribution plots. Thoughts whose text cannot be
// scored are skipped.
func OverPastMonth(ctx *thought.Context, m Metric) ([]float64, error) {
	var out []float64
	for _, t := range ctx.TextThoughts() {
		if bucket.Age(ctx, t, bucket.Month) >= 1 {
			continue
		}
		v, err := Score(m, t.Content)
		if errors.Is(err, textstat.ErrInsufficientText) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, thought.ErrNoData
	}
	return out, nil
}

// Score evaluates metric m on a single text span.
func Score(m Metric, text string) (float64, error) {
	switch m {
	case Conciseness:
		return textstat.ReadingTimeSeconds(text), nil
	case Readability:
		return textstat.Readability(text)
	case Objectivity:
		s, err := textstat.Sentiment(text)
		if err != nil {
			return 0, err
		}
		return s.Objectivity(), nil
	case Sentiment:
		s, err := textstat.Sentiment(text)
		if err != nil {
			return 0, err
		}
		return s.Polarity, nil
	default:
		return 0, fmt.Errorf("unknown linguistic metric %q", m)
	}
}

func meanReadingTime(thoughts []thought.Thought) float64 {
	var sum float64
	for _, t := range thoughts {
		sum += textstat.ReadingTimeSeconds(t.Content)
	}
	return sum / float64(len(thoughts))
}

func joined(thoughts []thought.Thought) string {
	parts := make([]string, len(thoughts))
	for i, t := range thoughts {
		parts[i] = t.Content
	}
	return strings.Join(parts, " ")
}
