package api

import (
	"net/http"

	"prompt-collector/prompt"
)

type activeResponse struct {
	Index      int               `json:"index"`
	Collection prompt.Collection `json:"collection"`
}

func (h *handler) getActive(w http.ResponseWriter, r *http.Request) {
	c, idx, err := h.prompts.ActiveCollection(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activeResponse{Index: idx, Collection: c})
}

// setActive takes {"index": n} to activate a collection or {"index": null} to
// clear the selection.
func (h *handler) setActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.SetActiveCollectionIndex(r.Context(), req.Index); err != nil {
		writeError(w, err)
		return
	}
	if req.Index == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.getActive(w, r)
}

func (h *handler) addToActive(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	idx, err := h.prompts.AddToActiveCollection(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusCreated)
}
