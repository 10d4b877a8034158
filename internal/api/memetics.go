package api

import (
	"net/http"
	"time"

	"github.com/nidhogg/ideoscope/internal/bucket"
	"github.com/nidhogg/ideoscope/internal/memetics"
	"github.com/nidhogg/ideoscope/internal/thought"
)

func (h *Handler) birthRate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	daily, err := memetics.DailyBirthRate(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	windows, err := memetics.BirthRates(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"daily": daily, "windows": windows})
}

func (h *Handler) population(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	pop, err := memetics.PopulationPerDay(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"per_day": pop})
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if s.Context.Len() == 0 {
		h.writeError(w, r, thought.ErrNoData)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weekday":      bucket.ByWeekday(s.Context),
		"hour":         bucket.ByHour(s.Context),
		"weekday_hour": bucket.ByWeekdayAndHour(s.Context),
		"timezone":     s.Context.Location.String(),
	})
}

// thoughtView is a thought without its embedding.
type thoughtView struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Modality   thought.Modality `json:"modality"`
	Content    string           `json:"content,omitempty"`
	Activation float64          `json:"activation"`
}

func (h *Handler) fittest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	fit := memetics.Fittest(s.Context)
	out := make([]thoughtView, len(fit))
	for i, t := range fit {
		out[i] = thoughtView{ID: t.ID, Timestamp: t.Timestamp, Modality: t.Modality, Content: t.Content, Activation: t.Activation}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) pyramid(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	p, err := memetics.PopulationPyramid(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) variability(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	g, err := granularity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	series, err := memetics.VariabilityPer(s.Context, g)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := map[string]any{"granularity": g.String(), "series": series}
	// Summary tiles are omitted rather than failing the whole panel.
	if d, err := memetics.VariabilityOverPast(s.Context, g); err == nil {
		resp["over_past"] = d
	}
	if v, err := memetics.AggregateVariability(s.Context); err == nil {
		resp["aggregate"] = v
	}
	if v, err := memetics.VariabilityOfFittest(s.Context); err == nil {
		resp["fittest"] = v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) drift(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	g, err := granularity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	series, err := memetics.DriftPer(s.Context, g)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := map[string]any{"granularity": g.String(), "series": series}
	if d, err := memetics.DriftOverPast(s.Context, g); err == nil {
		resp["over_past"] = d
	}
	if d, err := memetics.DriftPercentOfMax(s.Context, g); err == nil {
		resp["percent_of_max"] = d
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) fitness(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	values, err := memetics.Fitness(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := memetics.Stats(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values, "stats": stats})
}
