package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Registers the generated API definitions with swag.
	_ "flow-ai/threadview/docs"
)

// NewRouter wires every route of the service.
func NewRouter(threadHandler *ThreadHandler, renderHandler *RenderHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/settings", threadHandler.GetSettings)
			r.Post("/settings", threadHandler.UpdateSettings)

			r.Get("/threads", threadHandler.GetThreads)
			r.Post("/threads", threadHandler.CreateThread)
			r.Get("/threads/{threadID}", threadHandler.GetThread)
			r.Put("/threads/{threadID}/title", threadHandler.UpdateThreadTitle)
			r.Delete("/threads/{threadID}", threadHandler.DeleteThread)

			r.Post("/threads/{threadID}/messages", threadHandler.AddMessage)
			r.Get("/threads/{threadID}/view", threadHandler.GetView)
			r.Put("/threads/{threadID}/streaming", threadHandler.SetStreaming)
			r.Delete("/threads/{threadID}/streaming", threadHandler.ClearStreaming)

			r.Post("/render", renderHandler.Render)
			r.Get("/tool-views", renderHandler.ListToolViews)
		})

		// Long-lived connections; no timeout.
		r.Group(func(r chi.Router) {
			r.Get("/threads/{threadID}/view/stream", threadHandler.StreamView)
		})
	})

	return r
}
