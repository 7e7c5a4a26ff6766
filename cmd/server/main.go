package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"gigmatch/internal/app"
	"gigmatch/internal/fraud"
	"gigmatch/internal/httputil"
	"gigmatch/internal/match"
	"gigmatch/internal/recommend"
	"gigmatch/internal/skills"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	matchSvc := match.New(deps.Embedder, deps.Log)
	skillsSvc := skills.New(deps.Embedder, deps.Cache, deps.Config.EmbeddingModel, deps.TaxonomyTTL(), deps.Log)
	recSvc := recommend.New(deps.Embedder, deps.Log)
	fraudSvc := fraud.New()

	r := newRouter(deps, matchSvc, skillsSvc, recSvc, fraudSvc)

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("matching service listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server error", "err", err)
	}
}

func newRouter(deps app.Deps, matchSvc *match.Service, skillsSvc *skills.Service, recSvc *recommend.Service, fraudSvc *fraud.Service) *chi.Mux {
	r := httputil.NewRouter(deps.Log)

	r.Route("/api/matching", func(r chi.Router) {
		r.Post("/freelancers", matchFreelancersHandler(deps, matchSvc))
		r.Post("/jobs", matchJobsHandler(deps, matchSvc))
	})
	r.Route("/api/skills", func(r chi.Router) {
		r.Post("/extract", extractSkillsHandler(deps, skillsSvc))
		r.Post("/extract-file", extractFileHandler(deps, skillsSvc))
		r.Post("/related", relatedSkillsHandler(deps, skillsSvc))
		r.Post("/validate", validateSkillsHandler(deps, skillsSvc))
	})
	r.Route("/api/recommendations", func(r chi.Router) {
		r.Post("/price", priceHandler(deps, recSvc))
		r.Post("/proposal-quality", proposalQualityHandler(deps, recSvc))
		r.Post("/resume", resumeHandler(deps, recSvc))
	})
	r.Route("/api/fraud", func(r chi.Router) {
		r.Post("/user", fraudUserHandler(deps, fraudSvc))
		r.Post("/job", fraudJobHandler(deps, fraudSvc))
		r.Post("/proposal", fraudProposalHandler(deps, fraudSvc))
	})
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	return r
}
