package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, svc *DataService, storeCheck Checker, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Tournament API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, storeCheck))

	r.Get("/api/data", handleGetData(svc))
	r.Post("/api/data", handlePostData(svc))

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
