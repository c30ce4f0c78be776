// @title Alpine Translate API
// @version 1.0
// @description Model-backed translation service with a stored history.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
	"golang.org/x/sync/errgroup"

	"alpine/translate/internal/config"
	"alpine/translate/internal/db"
	"alpine/translate/internal/handler"
	transport "alpine/translate/internal/http"
	"alpine/translate/internal/i18n"
	"alpine/translate/internal/logger"
	"alpine/translate/internal/network"
	"alpine/translate/internal/repository"
	"alpine/translate/internal/service"
	"alpine/translate/internal/service/ai"
	"alpine/translate/internal/snowflake"
)

const (
	shutdownTimeout = 10 * time.Second
	storeTimeout    = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "module", "main", "action", "run", "resource", "server", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	logger.Info("starting", "module", "main", "action", "start", "resource", "server", "result", "ok", "app", config.AppName, "version", config.AppVersion, "store", cfg.Store, "provider", cfg.AIProvider)

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := network.NewClientFactory(cfg.HTTPProxy)
	if err != nil {
		return fmt.Errorf("http proxy: %w", err)
	}
	if proxyURL := clients.ProxyURL(); proxyURL != "" {
		logger.Info("outbound proxy enabled", "module", "main", "action", "init", "resource", "network", "result", "ok", "proxy", proxyURL)
	}

	repo, closeStore, err := openStore(ctx, cfg, clients)
	if err != nil {
		return err
	}
	defer closeStore()

	provider, err := ai.NewProvider(ai.Config{
		Provider:        cfg.AIProvider,
		APIKey:          cfg.AIAPIKey,
		BaseURL:         cfg.AIBaseURL,
		Model:           cfg.AIModel,
		Thinking:        cfg.AIThinking,
		ThinkingBudget:  cfg.AIThinkingBudget,
		ReasoningEffort: cfg.AIReasoningEffort,
		HTTPClient:      clients.NewHTTPClient(0),
	})
	if err != nil {
		return fmt.Errorf("ai provider: %w", err)
	}

	rateLimiter := ai.NewRateLimiter(cfg.AIRateLimit)
	logger.Info("ai provider ready", "module", "main", "action", "init", "resource", "ai", "result", "ok", "provider", provider.Name(), "qps", rateLimiter.Limit())

	messages := i18n.New(cfg.Locale)
	translationService := service.NewTranslationService(repo, provider, rateLimiter)

	router := transport.NewRouter(
		handler.NewTranslationHandler(translationService, messages),
		handler.NewAIHandler(provider, messages),
		handler.HTTPErrorHandler(messages),
		cfg.StaticDir,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "module", "main", "action", "listen", "resource", "server", "result", "ok", "addr", cfg.Addr)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "server", "result", "ok")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore builds the configured repository and returns its cleanup func.
func openStore(ctx context.Context, cfg config.Config, clients *network.ClientFactory) (repository.TranslationRepository, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := db.MigratePostgres(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := db.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return repository.NewPostgresTranslationRepository(pool), pool.Close, nil
	case config.StoreSupabase:
		repo := repository.NewSupabaseTranslationRepository(cfg.SupabaseURL, cfg.SupabaseKey, clients.NewHTTPClient(storeTimeout))
		return repo, func() {}, nil
	default:
		conn, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return repository.NewTranslationRepository(conn), func() { _ = conn.Close() }, nil
	}
}
