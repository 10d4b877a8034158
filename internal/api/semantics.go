package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/semantics"
)

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	dims, err := intParam(r, "dims", 2)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if dims != 2 && dims != 3 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dims must be 2 or 3"})
		return
	}
	points, err := semantics.Project(s.Context, dims, h.opts.Projection)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (h *Handler) spectrum(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	n, err := intParam(r, "components", semantics.SpectrumComponents)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ratios, err := semantics.EnergySpectrum(s.Context, n)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"explained_variance": ratios})
}

// volume serves the explored volume and, when anything is explored, the
// discovery projections derived from it.
func (h *Handler) volume(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.volumeMu.Lock()
	entry, cached := h.volumes[s.ID]
	h.volumeMu.Unlock()

	v := entry.volume
	if !cached || !entry.fetched.Equal(s.Context.Now) {
		var err error
		v, err = semantics.ExploredVolume(r.Context(), s.Context, h.opts.Volume)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.volumeMu.Lock()
		h.volumes[s.ID] = volumeEntry{fetched: s.Context.Now, volume: v}
		h.volumeMu.Unlock()
		h.logger.Info("explored volume estimated",
			zap.String("session", s.ID),
			zap.Int("probes", v.Probes),
			zap.Float64("explored", v.Explored))
	}

	resp := map[string]any{"volume": v}
	if d, err := semantics.Discover(s.Context, v); err == nil {
		resp["discovery"] = d
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) forgetVolume(id string) {
	h.volumeMu.Lock()
	delete(h.volumes, id)
	h.volumeMu.Unlock()
}
