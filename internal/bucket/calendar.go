package bucket

import (
	"fmt"
	"sort"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// WeekdayLabels is the canonical Monday-first weekday order.
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Moment is the wall-clock placement of one thought.
type Moment struct {
	Weekday string `json:"weekday"`
	Time    string `json:"time"` // HH:MM
	Hour    int    `json:"hour"`
}

// Count is one bar of a categorical histogram.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Cell is one cell of the weekday x hour histogram.
type Cell struct {
	Weekday string `json:"weekday"`
	Hour    int    `json:"hour"`
	Count   int    `json:"count"`
}

// Moments places every thought on the week in ctx.Location.
func Moments(ctx *thought.Context) []Moment {
	out := make([]Moment, len(ctx.Thoughts))
	for i, t := range ctx.Thoughts {
		local := t.Timestamp.In(ctx.Location)
		out[i] = Moment{
			Weekday: local.Format("Mon"),
			Time:    local.Format("15:04"),
			Hour:    local.Hour(),
		}
	}
	return out
}

// ByWeekday counts thoughts per weekday, Monday first, zero-filled.
func ByWeekday(ctx *thought.Context) []Count {
	counts := make(map[string]int)
	for _, m := range Moments(ctx) {
		counts[m.Weekday]++
	}
	out := make([]Count, len(WeekdayLabels))
	for i, d := range WeekdayLabels {
		out[i] = Count{Label: d, Count: counts[d]}
	}
	return out
}

// ByHour counts thoughts per wall-clock hour, zero-filled over 00..23.
func ByHour(ctx *thought.Context) []Count {
	var counts [24]int
	for _, m := range Moments(ctx) {
		counts[m.Hour]++
	}
	out := make([]Count, 24)
	for h, c := range counts {
		out[h] = Count{Label: fmt.Sprintf("%02d:00", h), Count: c}
	}
	return out
}

// ByWeekdayAndHour counts thoughts per occupied (weekday, hour) cell,
// ordered by weekday then hour.
func ByWeekdayAndHour(ctx *thought.Context) []Cell {
	type key struct {
		day  int
		hour int
	}
	dayIndex := make(map[string]int, len(WeekdayLabels))
	for i, d := range WeekdayLabels {
		dayIndex[d] = i
	}
	counts := make(map[key]int)
	for _, m := range Moments(ctx) {
		counts[key{dayIndex[m.Weekday], m.Hour}]++
	}
	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].hour < keys[j].hour
	})
	out := make([]Cell, len(keys))
	for i, k := range keys {
		out[i] = Cell{Weekday: WeekdayLabels[k.day], Hour: k.hour, Count: counts[k]}
	}
	return out
}
