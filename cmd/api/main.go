package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/faraz1977/ai-visionary/internal/checkout"
	"github.com/faraz1977/ai-visionary/internal/genai"
	"github.com/faraz1977/ai-visionary/internal/http/handlers"
	"github.com/faraz1977/ai-visionary/internal/http/httpapi"
	"github.com/faraz1977/ai-visionary/internal/infra"
	"github.com/faraz1977/ai-visionary/internal/infra/geoip"
	"github.com/faraz1977/ai-visionary/internal/ledger"
	"github.com/faraz1977/ai-visionary/internal/middleware"
	"github.com/faraz1977/ai-visionary/internal/session"
	"github.com/faraz1977/ai-visionary/internal/storage"
	"github.com/faraz1977/ai-visionary/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Usage ledger, only when a database is configured.
	var recorder *ledger.Recorder
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		recorder, err = ledger.NewRecorder(ctx, pool, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare usage ledger")
		}
	} else {
		logger.Info().Msg("no DATABASE_URL, usage ledger disabled")
	}

	// Optional local export of processed results.
	var results *storage.FileStore
	if cfg.ResultsDir != "" {
		results, err = storage.NewFileStore(cfg.ResultsDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure results directory")
		}
	}

	// Optional country resolver for checkout currency defaulting.
	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
		if closer, ok := resolver.(*geoip.Resolver); ok {
			defer closer.Close()
		}
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is empty, edit calls will be rejected by the provider")
	}
	editor := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.AITimeout,
	})
	logger.Info().Str("model", editor.Model()).Msg("edit client ready")

	sessions := session.NewManager()
	controller := workflow.NewController(editor, logger)
	simulator := checkout.NewSimulator(checkout.Options{DeclineRate: cfg.DeclineRate}, logger)
	processor := checkout.NewProcessor(simulator, logger)

	app := &handlers.App{
		Logger:        logger,
		Sessions:      sessions,
		Workflow:      controller,
		Checkout:      processor,
		Ledger:        recorder,
		Results:       results,
		SessionSecret: cfg.SessionSecret,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   countryLookup,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
