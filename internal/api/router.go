package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/studylens/extraction-api/internal/api/handlers"
	"github.com/studylens/extraction-api/internal/api/middleware"
	"github.com/studylens/extraction-api/internal/assist"
	"github.com/studylens/extraction-api/internal/config"
	"github.com/studylens/extraction-api/internal/extract"
	"github.com/studylens/extraction-api/internal/llm"
)

const (
	serviceName    = "extraction-api"
	serviceVersion = "1.2.0"
)

type Router struct {
	mux *chi.Mux
	cfg *config.Config
}

func NewRouter(cfg *config.Config) *Router {
	return &Router{
		mux: chi.NewRouter(),
		cfg: cfg,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(5, 10)
	r.Use(rl.Limit)

	// Extraction pipeline
	ec := rt.cfg.Extract
	store := extract.NewStore(ec.TempDir)
	orchestrator := extract.NewOrchestrator(
		store,
		extract.TextLayer{},
		extract.NewFitzRenderer(ec.RenderDPI, ec.CanvasWidth, ec.CanvasHeight),
		extract.NewTesseractRecognizer(ec.Language),
		extract.Options{
			Workers:     ec.Workers,
			PageTimeout: ec.PageTimeout,
		},
	)

	// AI helpers
	gateway := llm.NewGateway(rt.cfg.LLM)
	assistSvc := assist.NewService(gateway, rt.cfg.LLM)

	healthH := handlers.NewHealthHandler(serviceName, serviceVersion)
	extractH := handlers.NewExtractHandler(store, orchestrator, ec.MaxUploadBytes)
	assistH := handlers.NewAssistHandler(assistSvc)

	r.Get("/", healthH.Root)
	r.Get("/health", healthH.Health)
	r.Post("/ocr", extractH.Extract)
	r.Post("/extract-concepts", assistH.Concepts)
	r.Post("/chat", assistH.Chat)

	return r
}
