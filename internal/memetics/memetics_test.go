package memetics

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/thought"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func mk(id string, ago time.Duration, m thought.Modality, activation float64, emb ...float64) thought.Thought {
	return thought.Thought{
		ID:         id,
		Timestamp:  now.Add(-ago),
		Modality:   m,
		Embedding:  emb,
		Activation: activation,
	}
}

func mustContext(t *testing.T, thoughts []thought.Thought) *thought.Context {
	t.Helper()
	ctx, err := thought.NewContext(thoughts, now, time.UTC)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

// threeWeeks spreads 10 thoughts over weeks 0, 1 and 2 (4, 3, 3 thoughts).
func threeWeeks(t *testing.T) *thought.Context {
	t.Helper()
	return mustContext(t, []thought.Thought{
		mk("a", 1*day, thought.Text, 1, 1, 0, 0, 0.1),
		mk("b", 2*day, thought.Text, 2, 0.9, 0.2, 0, 0),
		mk("c", 3*day, thought.Image, 3, 1, 0.1, 0.1, 0),
		mk("d", 4*day, thought.Text, 4, 0.8, 0, 0.3, 0),
		mk("e", 8*day, thought.Text, 5, 0, 1, 0, 0.1),
		mk("f", 9*day, thought.Image, 6, 0.1, 0.9, 0, 0),
		mk("g", 10*day, thought.Text, 7, 0, 1, 0.2, 0),
		mk("h", 15*day, thought.Text, 8, 0, 0, 1, 0.1),
		mk("i", 16*day, thought.Text, 9, 0, 0.1, 0.9, 0),
		mk("j", 17*day, thought.Image, 10, 0.2, 0, 1, 0),
	})
}

func TestDailyBirthRate(t *testing.T) {
	ctx := mustContext(t, []thought.Thought{
		mk("a", time.Hour, thought.Text, 1, 1),
		mk("b", 2*time.Hour, thought.Text, 1, 1),
		mk("c", 3*day+time.Hour, thought.Text, 1, 1),
	})
	rate, err := DailyBirthRate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rate, []int{2, 0, 0, 1}) {
		t.Errorf("got %v, want [2 0 0 1]", rate)
	}

	pop, _ := PopulationPerDay(ctx)
	if !reflect.DeepEqual(pop, []int{3, 1, 1, 1}) {
		t.Errorf("population %v, want [3 1 1 1]", pop)
	}
}

func TestBirthRateWindows(t *testing.T) {
	ctx := threeWeeks(t)
	rate, _ := DailyBirthRate(ctx)

	week, err := BirthRateOverPast(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0
	for _, v := range rate[:7] {
		sum += v
	}
	if week.Value != float64(sum) {
		t.Errorf("week value %g, want %d", week.Value, sum)
	}
	// days 0-6 hold a-d, days 7-13 hold e-g.
	if week.Value != 4 || week.Change != 1 {
		t.Errorf("got %+v, want value 4 change 1", week)
	}

	all, err := BirthRates(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all["year"].Value != 10 || all["year"].Change != 10 {
		t.Errorf("year %+v", all["year"])
	}
	if all["day"].Value != 0 {
		t.Errorf("day %+v", all["day"])
	}
}

func TestPopulationNonIncreasing(t *testing.T) {
	pop, err := PopulationPerDay(threeWeeks(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pop[0] != 10 {
		t.Errorf("population at age 0 is %d, want 10", pop[0])
	}
	for k := 1; k < len(pop); k++ {
		if pop[k] > pop[k-1] {
			t.Fatalf("population grows with age at %d: %v", k, pop)
		}
	}
}

func TestVariabilityPerWeek(t *testing.T) {
	rows, err := VariabilityPer(threeWeeks(t), bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Age != i {
			t.Errorf("row %d has age %d", i, r.Age)
		}
		if r.Value <= 0 || r.Value > 100 {
			t.Errorf("row %d variability %g out of range", i, r.Value)
		}
	}
}

func TestVariabilityOmitsSingletons(t *testing.T) {
	ctx := mustContext(t, []thought.Thought{
		mk("a", 1*day, thought.Text, 1, 1, 0),
		mk("b", 2*day, thought.Text, 1, 0, 1),
		mk("c", 9*day, thought.Text, 1, 1, 1),
		mk("d", 22*day, thought.Text, 1, 1, 0),
		mk("e", 23*day, thought.Text, 1, 1, 0),
	})
	rows, err := VariabilityPer(ctx, bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[0].Age != 0 || rows[1].Age != 3 {
		t.Fatalf("got %+v, want ages 0 and 3", rows)
	}
	// Orthogonal pair: centroid at 45 degrees, distance 1-cos(45) each.
	want := (1 - math.Sqrt2/2) * 100
	if math.Abs(rows[0].Value-want) > 1e-9 {
		t.Errorf("got %g, want %g", rows[0].Value, want)
	}
	if rows[1].Value != 0 {
		t.Errorf("identical embeddings should have zero variability, got %g", rows[1].Value)
	}

	d, err := VariabilityOverPast(ctx, bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.HasChange || math.Abs(d.Change-want) > 1e-9 {
		t.Errorf("got %+v", d)
	}

	month, err := VariabilityOverPast(ctx, bucket.Month)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if month.HasChange {
		t.Errorf("single monthly bucket should have no change, got %+v", month)
	}
}

func TestAggregateAndFittestVariability(t *testing.T) {
	ctx := threeWeeks(t)
	agg, err := AggregateVariability(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg <= 0 {
		t.Errorf("aggregate variability %g, want > 0", agg)
	}
	if _, err := VariabilityOfFittest(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := mustContext(t, nil)
	if _, err := AggregateVariability(empty); !errors.Is(err, thought.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
	if _, err := VariabilityPer(empty, bucket.Week); !errors.Is(err, thought.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestFittestIsDescending(t *testing.T) {
	fit := Fittest(threeWeeks(t))
	// ceil(10 * 0.25) = 3: the highest activations are j, i, h.
	var ids []string
	for _, f := range fit {
		ids = append(ids, f.ID)
	}
	if !reflect.DeepEqual(ids, []string{"j", "i", "h"}) {
		t.Errorf("got %v, want [j i h]", ids)
	}
}

func TestPopulationPyramid(t *testing.T) {
	p, err := PopulationPyramid(threeWeeks(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// j (image, week 2), i and h (text, week 2).
	if !reflect.DeepEqual(p.Text, []int{0, 0, 2}) {
		t.Errorf("text %v, want [0 0 2]", p.Text)
	}
	if !reflect.DeepEqual(p.Image, []int{0, 0, 1}) {
		t.Errorf("image %v, want [0 0 1]", p.Image)
	}

	textOnly := mustContext(t, []thought.Thought{mk("a", day, thought.Text, 1, 1)})
	p, _ = PopulationPyramid(textOnly)
	if len(p.Image) != 0 || !reflect.DeepEqual(p.Text, []int{1}) {
		t.Errorf("got %+v", p)
	}
}

func TestDriftPerWeek(t *testing.T) {
	drift, err := DriftPer(threeWeeks(t), bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drift) != 2 {
		t.Fatalf("got %d values, want 2", len(drift))
	}
	for _, d := range drift {
		if d <= 0 {
			t.Errorf("drift %g, want > 0 between distinct topics", d)
		}
	}
}

func TestDriftSkipsEmptyBuckets(t *testing.T) {
	ctx := mustContext(t, []thought.Thought{
		mk("a", 1*day, thought.Text, 1, 1, 0),
		mk("b", 30*day, thought.Text, 1, 0, 1),
	})
	drift, err := DriftPer(ctx, bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drift) != 1 || math.Abs(drift[0]-100) > 1e-9 {
		t.Errorf("got %v, want [100]", drift)
	}

	pct, err := DriftPercentOfMax(ctx, bucket.Week)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(pct.Value-100) > 1e-9 || pct.HasChange {
		t.Errorf("got %+v", pct)
	}

	single := mustContext(t, []thought.Thought{mk("a", day, thought.Text, 1, 1)})
	if _, err := DriftOverPast(single, bucket.Week); !errors.Is(err, thought.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestFitnessStats(t *testing.T) {
	ctx := threeWeeks(t) // activations 1..10
	s, err := Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Mean != 5.5 {
		t.Errorf("mean %g, want 5.5", s.Mean)
	}
	// numpy: percentile([1..10], 25) = 3.25, 75 = 7.75
	if math.Abs(s.InterquartileRange-4.5) > 1e-12 {
		t.Errorf("iqr %g, want 4.5", s.InterquartileRange)
	}
	// values in [3.25, 7.75]: 4 5 6 7
	if math.Abs(s.InterquartileMean-5.5) > 1e-12 {
		t.Errorf("iqm %g, want 5.5", s.InterquartileMean)
	}
	if s.MemeticLoad == nil || math.Abs(*s.MemeticLoad-0.45) > 1e-12 {
		t.Errorf("memetic load %v, want 0.45", s.MemeticLoad)
	}
}

func TestFitnessStatsAllZero(t *testing.T) {
	ctx := mustContext(t, []thought.Thought{
		mk("a", day, thought.Text, 0, 1, 0),
		mk("b", 2*day, thought.Text, 0, 0, 1),
	})
	s, err := Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.MemeticLoad != nil {
		t.Errorf("memetic load should be omitted, got %g", *s.MemeticLoad)
	}
	if s.Mean != 0 || s.InterquartileMean != 0 || s.InterquartileRange != 0 {
		t.Errorf("got %+v, want zero scalars", s)
	}
}

func TestMemeticLoad(t *testing.T) {
	if load, _ := MemeticLoad([]float64{2, 2, 2}); load != 0 {
		t.Errorf("equal fitness should have zero load, got %g", load)
	}
	load, _ := MemeticLoad([]float64{0, 0, 0, 100})
	if load < 0 || load >= 1 {
		t.Errorf("load %g outside [0, 1)", load)
	}
	if _, err := MemeticLoad([]float64{0, 0}); !errors.Is(err, ErrDegenerateFitness) {
		t.Errorf("expected ErrDegenerateFitness, got %v", err)
	}
	if _, err := MemeticLoad(nil); !errors.Is(err, thought.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	cases := []struct{ p, want float64 }{
		{0, 1}, {25, 1.75}, {50, 2.5}, {75, 3.25}, {100, 4},
	}
	for _, c := range cases {
		if got := Percentile(sorted, c.p); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Percentile(%g) = %g, want %g", c.p, got, c.want)
		}
	}
	iqm, _ := Interquartile([]float64{1, 3})
	if iqm != 2 {
		t.Errorf("two-sample iqm %g, want 2", iqm)
	}
}
