package api

import (
	"net/http"
)

func (h *handler) getBuffer(w http.ResponseWriter, r *http.Request) {
	h.writeBuffer(w, r, http.StatusOK)
}

func (h *handler) addToBuffer(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.AddToBuffer(r.Context(), req.Text); err != nil {
		writeError(w, err)
		return
	}
	h.writeBuffer(w, r, http.StatusCreated)
}

func (h *handler) editBuffer(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.EditBuffer(r.Context(), idx, req.Text); err != nil {
		writeError(w, err)
		return
	}
	h.writeBuffer(w, r, http.StatusOK)
}

func (h *handler) deleteFromBuffer(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	if err := h.prompts.DeleteFromBuffer(r.Context(), idx); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeBuffer responds with the buffer in display order, most recent first.
func (h *handler) writeBuffer(w http.ResponseWriter, r *http.Request, status int) {
	entries, err := h.prompts.BufferDisplay(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, entries)
}
