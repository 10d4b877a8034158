package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nidhogg/ideoscope/internal/linguistics"
)

// linguistic serves one metric, per week (?window=week, the default) or as
// the distribution over the past month (?window=month).
func (h *Handler) linguistic(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "metric")
	m, ok := linguistics.ParseMetric(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown metric %q", name)})
		return
	}

	switch window := r.URL.Query().Get("window"); window {
	case "", "week":
		series, err := linguistics.PerWeek(s.Context, m)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"metric": m, "window": "week", "series": series})
	case "month":
		values, err := linguistics.OverPastMonth(s.Context, m)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"metric": m, "window": "month", "values": values})
	default:
		h.writeError(w, r, badRequest(fmt.Errorf("unknown window %q", window)))
	}
}

func (h *Handler) interests(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rows, err := linguistics.Interests(s.Context)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
