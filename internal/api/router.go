package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/JothiRam-cm/elevix/internal/api/handlers"
	mw "github.com/JothiRam-cm/elevix/internal/api/middleware"
	"github.com/JothiRam-cm/elevix/internal/buildconfig"
	"github.com/JothiRam-cm/elevix/internal/config"
	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/JothiRam-cm/elevix/internal/embedding"
	"github.com/JothiRam-cm/elevix/internal/llm"
	"github.com/JothiRam-cm/elevix/internal/retrieval"
	"github.com/JothiRam-cm/elevix/internal/search"
	"github.com/JothiRam-cm/elevix/internal/service"
	"github.com/JothiRam-cm/elevix/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router plus the session state for lifecycle management.
type App struct {
	Router       *chi.Mux
	Sessions     *service.SessionManager
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	// Stores
	passageStore := store.NewPassageStore(db)

	// External clients via provider factory
	var llmClient domain.LLMClient
	var embeddingClient domain.EmbeddingClient

	llmProvider := config.LLMProvider()
	embeddingProvider := config.EmbeddingProvider()

	var err error
	llmClient, err = llm.NewClient(llmProvider, config.LLMAPIKey())
	if err != nil {
		logger.Warn("LLM client initialization failed", zap.String("provider", llmProvider), zap.Error(err))
	} else {
		logger.Info("LLM client initialized", zap.String("provider", llmProvider))
	}

	embeddingClient, err = embedding.NewClient(embeddingProvider, config.EmbeddingAPIKey())
	if err != nil {
		logger.Warn("Embedding client initialization failed", zap.String("provider", embeddingProvider), zap.Error(err))
	} else {
		logger.Info("Embedding client initialized", zap.String("provider", embeddingProvider))
	}

	// Capabilities
	retriever := retrieval.NewRetriever(passageStore, embeddingClient, llmClient, config.RetrievalTopK(), logger)
	searcher := search.NewDuckDuckGoClient(config.SearchBaseURL(), logger)

	// Core services
	sessions := service.NewSessionManager()
	classifier := service.NewClassifier(config.IntentThreshold())
	router := service.NewRouter(retriever, searcher, logger)
	composer := service.NewComposer(llmClient, logger)
	conversationSvc := service.NewConversationService(sessions, classifier, router, composer, config.HistoryWindow(), logger)
	ingestSvc := service.NewIngestService(passageStore, embeddingClient, logger)

	// Handlers
	chatHandler := handlers.NewChatHandler(conversationSvc, sessions)
	sessionHandler := handlers.NewSessionHandler(sessions)
	documentHandler := handlers.NewDocumentHandler(ingestSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Sessions:  sessions,
		startTime: time.Now(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Metrics(&app.requestCount, &app.errorCount))
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health
	r.Get("/health", healthHandler(db))

	// Metrics
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.Handle)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/history", sessionHandler.History)
				r.Delete("/", sessionHandler.Delete)
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/passages", documentHandler.IngestPassages)
			r.Delete("/", documentHandler.DeleteSource)
		})
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(db *pgxpool.Pool, logger *zap.Logger) *chi.Mux {
	return NewApp(db, logger).Router
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds":  uptime.Seconds(),
			"uptime_human":    uptime.Round(time.Second).String(),
			"request_count":   app.requestCount.Load(),
			"error_count":     app.errorCount.Load(),
			"active_sessions": app.Sessions.Count(),
			"goroutines":      runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"build":      buildconfig.VersionInfo(),
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores, capabilities, and clients satisfy interfaces at compile time.
var (
	_ domain.PassageStore        = (*store.PassageStore)(nil)
	_ domain.RetrievalCapability = (*retrieval.Retriever)(nil)
	_ domain.WebSearchCapability = (*search.DuckDuckGoClient)(nil)
	_ domain.LLMClient           = (*llm.GroqClient)(nil)
	_ domain.LLMClient           = (*llm.GeminiClient)(nil)
	_ domain.LLMClient           = (*llm.OllamaClient)(nil)
	_ domain.LLMClient           = (*llm.MockClient)(nil)
	_ domain.EmbeddingClient     = (*embedding.OpenAIClient)(nil)
	_ domain.EmbeddingClient     = (*embedding.MockClient)(nil)
)
