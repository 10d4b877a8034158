// Package memetics measures how a conceptarium grows and shifts: birth
// rate, population, variability, drift and fitness.
package memetics

import (
	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/thought"
)

// Delta is a windowed value paired with its change against the preceding
// window of the same length. HasChange is false when there is no
// preceding window to compare against.
type Delta struct {
	Value     float64 `json:"value"`
	Change    float64 `json:"change"`
	HasChange bool    `json:"has_change"`
}

// DailyBirthRate returns the number of thoughts created per day bucket,
// index 0 being the most recent day, zero-filled up to the oldest thought.
func DailyBirthRate(ctx *thought.Context) ([]int, error) {
	return bucket.Counts(bucket.Ages(ctx, bucket.Day))
}

// BirthRateOverPast sums births over the last days days and compares them
// to the days before that. Days past the oldest thought count as zero.
func BirthRateOverPast(ctx *thought.Context, days int) (Delta, error) {
	rate, err := DailyBirthRate(ctx)
	if err != nil {
		return Delta{}, err
	}
	current := window(rate, 0, days)
	previous := window(rate, days, 2*days)
	return Delta{
		Value:     float64(current),
		Change:    float64(current - previous),
		HasChange: true,
	}, nil
}

// BirthRates returns the day, week, month and year windows.
func BirthRates(ctx *thought.Context) (map[string]Delta, error) {
	out := make(map[string]Delta, 4)
	for name, days := range map[string]int{"day": 1, "week": 7, "month": 30, "year": 365} {
		d, err := BirthRateOverPast(ctx, days)
		if err != nil {
			return nil, err
		}
		out[name] = d
	}
	return out, nil
}

// PopulationPerDay returns, for every day age k, how many thoughts are at
// least k days old.
func PopulationPerDay(ctx *thought.Context) ([]int, error) {
	rate, err := DailyBirthRate(ctx)
	if err != nil {
		return nil, err
	}
	pop := make([]int, len(rate))
	sum := 0
	for k := len(rate) - 1; k >= 0; k-- {
		sum += rate[k]
		pop[k] = sum
	}
	return pop, nil
}

func window(series []int, from, to int) int {
	sum := 0
	for i := from; i < to && i < len(series); i++ {
		sum += series[i]
	}
	return sum
}
