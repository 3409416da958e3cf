package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/vetorank/vetorank/internal/room"
)

func addRoutes(r chi.Router, logger *slog.Logger, rooms *room.Registry, staticDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Vetorank API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(rooms))
	r.Get("/ws/session", handleSession(logger, rooms))

	r.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", handleCreateRoom(rooms))

		// {code} resolved by roomMiddleware.
		r.Route("/{code}", func(r chi.Router) {
			r.Use(roomMiddleware(rooms))
			r.Get("/", handleGetRoom())
			r.Post("/options", handleAddOption())
			r.Post("/veto", handleVeto())
			r.Post("/veto/reset", handleResetVetoes())
			r.Post("/finish", handleFinishVetoing())
			r.Post("/ballots", handleSubmitBallot())
			r.Get("/results", handleResults())
			r.Get("/events", handleEvents(logger))
		})
	})

	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			logger.Info("serving static assets", "dir", staticDir)
			r.NotFound(handleStatic(staticDir))
		}
	}
}
