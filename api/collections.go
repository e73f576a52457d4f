package api

import (
	"fmt"
	"io"
	"net/http"

	"prompt-collector/prompt"
)

const maxImportBytes = 4 << 20

func (h *handler) listCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := h.prompts.Collections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (h *handler) createCollection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.prompts.CreateCollection(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *handler) getCollection(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

func (h *handler) renameCollection(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.RenameCollection(r.Context(), idx, req.Name); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

func (h *handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	if err := h.prompts.DeleteCollection(r.Context(), idx); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) resetCollection(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	if err := h.prompts.ResetCollectionDoneFlags(r.Context(), idx); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

// importCollection takes an exported collection document as the request body.
// ?conflict= picks what happens on a name clash and defaults to rename.
func (h *handler) importCollection(w http.ResponseWriter, r *http.Request) {
	policy := prompt.ConflictPolicy(r.URL.Query().Get("conflict"))
	if policy == "" {
		policy = prompt.ConflictRename
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	c, idx, err := h.prompts.ImportCollection(r.Context(), data, policy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"index": idx, "collection": c})
}

func (h *handler) exportCollection(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	format := prompt.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = prompt.FormatJSON
	}
	c, err := h.prompts.Collection(r.Context(), idx)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := prompt.Export(c, format)
	if err != nil {
		writeError(w, err)
		return
	}

	contentType := "application/json"
	if format == prompt.FormatText {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", prompt.ExportFileName(c, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handler) addPrompt(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return
	}
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.AddPromptToCollection(r.Context(), idx, req.Text); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusCreated)
}

func (h *handler) editPrompt(w http.ResponseWriter, r *http.Request) {
	idx, pi, ok := promptParams(w, r)
	if !ok {
		return
	}
	var req textRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.EditCollectionPrompt(r.Context(), idx, pi, req.Text); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

func (h *handler) deletePrompt(w http.ResponseWriter, r *http.Request) {
	idx, pi, ok := promptParams(w, r)
	if !ok {
		return
	}
	if err := h.prompts.DeletePromptFromCollection(r.Context(), idx, pi); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setPromptDone(w http.ResponseWriter, r *http.Request) {
	idx, pi, ok := promptParams(w, r)
	if !ok {
		return
	}
	var req struct {
		Done bool `json:"done"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.SetPromptDone(r.Context(), idx, pi, req.Done); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

func (h *handler) movePrompt(w http.ResponseWriter, r *http.Request) {
	idx, from, ok := promptParams(w, r)
	if !ok {
		return
	}
	var req struct {
		To int `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.prompts.ReorderPrompt(r.Context(), idx, from, req.To); err != nil {
		writeError(w, err)
		return
	}
	h.writeCollection(w, r, idx, http.StatusOK)
}

func (h *handler) writeCollection(w http.ResponseWriter, r *http.Request, idx, status int) {
	c, err := h.prompts.Collection(r.Context(), idx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, c)
}

func promptParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	idx, ok := intParam(w, r, "index")
	if !ok {
		return 0, 0, false
	}
	pi, ok := intParam(w, r, "prompt")
	if !ok {
		return 0, 0, false
	}
	return idx, pi, true
}
