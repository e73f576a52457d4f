package api

import (
	"net/http"

	"prompt-collector/prompt"
)

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	st, err := h.prompts.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !st.ThemeExplicit {
		st.Theme = prompt.SystemTheme(h.systemDark)
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	results, err := h.prompts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
