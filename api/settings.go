package api

import (
	"net/http"

	"prompt-collector/prompt"
)

func (h *handler) getToggles(w http.ResponseWriter, r *http.Request) {
	toggles, err := h.prompts.Toggles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggles)
}

// putToggles updates whichever of the two flags the body names.
func (h *handler) putToggles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Buffer     *bool `json:"bufferToggleState"`
		Collection *bool `json:"collectionToggleState"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	ctx := r.Context()
	if req.Buffer != nil {
		if err := h.prompts.SetBufferToggleState(ctx, *req.Buffer); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Collection != nil {
		if err := h.prompts.SetCollectionToggleState(ctx, *req.Collection); err != nil {
			writeError(w, err)
			return
		}
	}
	h.getToggles(w, r)
}

type themeResponse struct {
	Theme    prompt.Theme `json:"theme"`
	Explicit bool         `json:"explicit"`
}

func (h *handler) getTheme(w http.ResponseWriter, r *http.Request) {
	theme, explicit, err := h.prompts.Theme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !explicit {
		theme = prompt.SystemTheme(h.systemDark)
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme, Explicit: explicit})
}

func (h *handler) putTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme prompt.Theme `json:"theme"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.SetTheme(r.Context(), req.Theme); err != nil {
		writeError(w, err)
		return
	}
	h.getTheme(w, r)
}

// clearTheme forgets the stored choice so the system preference applies again.
func (h *handler) clearTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.prompts.ClearTheme(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.getTheme(w, r)
}
