package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prompt-collector/prompt"
	"prompt-collector/storage"
)

// RegisterRoutes exposes the prompt store over HTTP. notifier must be the store the
// manager writes through; its change sets feed /api/events. systemDark is the theme
// preference used when no theme has been stored.
func RegisterRoutes(pm *prompt.Manager, notifier *storage.Notifier, systemDark bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{prompts: pm, notifier: notifier, systemDark: systemDark}

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.getState)
		r.Get("/search", h.search)

		// Buffer indexes are positions in the most-recent-first view.
		r.Get("/buffer", h.getBuffer)
		r.Post("/buffer", h.addToBuffer)
		r.Put("/buffer/{index}", h.editBuffer)
		r.Delete("/buffer/{index}", h.deleteFromBuffer)

		r.Get("/collections", h.listCollections)
		r.Post("/collections", h.createCollection)
		r.Post("/collections/import", h.importCollection)
		r.Route("/collections/{index}", func(r chi.Router) {
			r.Get("/", h.getCollection)
			r.Patch("/", h.renameCollection)
			r.Delete("/", h.deleteCollection)
			r.Get("/export", h.exportCollection)
			r.Post("/reset", h.resetCollection)
			r.Post("/prompts", h.addPrompt)
			r.Put("/prompts/{prompt}", h.editPrompt)
			r.Delete("/prompts/{prompt}", h.deletePrompt)
			r.Put("/prompts/{prompt}/done", h.setPromptDone)
			r.Post("/prompts/{prompt}/move", h.movePrompt)
		})

		r.Get("/active", h.getActive)
		r.Put("/active", h.setActive)
		r.Post("/active/prompts", h.addToActive)

		r.Get("/settings/toggles", h.getToggles)
		r.Put("/settings/toggles", h.putToggles)
		r.Get("/settings/theme", h.getTheme)
		r.Put("/settings/theme", h.putTheme)
		r.Delete("/settings/theme", h.clearTheme)

		r.Get("/events", h.handleEvents)
	})

	return r
}

type handler struct {
	prompts    *prompt.Manager
	notifier   *storage.Notifier
	systemDark bool
}
