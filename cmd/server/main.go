package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/youruser/talingdeck/internal/api"
	"github.com/youruser/talingdeck/internal/cards"
	"github.com/youruser/talingdeck/internal/config"
	"github.com/youruser/talingdeck/internal/sheets"
	"github.com/youruser/talingdeck/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := newLogger(cfg.LogDev)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(dev bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func provider(cfg config.Config, logger *zap.Logger) cards.Provider {
	if cfg.CatalogSource == config.SourceSheets {
		return sheets.NewClient(cfg.SheetsBaseURL, cfg.GoogleAPIKey, cfg.GoogleSheetID, cfg.FetchTimeout, logger.Named("sheets"))
	}
	return cards.NewCSVProvider(cfg.DataDir, logger.Named("csv"))
}

// loadCatalog fetches the catalog and banlist once. Failures leave the
// server running with whatever could be loaded.
func loadCatalog(ctx context.Context, p cards.Provider, logger *zap.Logger) (*cards.Catalog, cards.Banlist) {
	cs, err := p.FetchCatalog(ctx)
	if err != nil {
		logger.Warn("card catalog unavailable", zap.Error(err))
	}
	banlist, err := p.FetchBanlist(ctx)
	if err != nil {
		logger.Warn("banlist unavailable", zap.Error(err))
		banlist = cards.Banlist{}
	}
	logger.Info("catalog loaded", zap.Int("cards", len(cs)), zap.Int("banlist", len(banlist)))
	return cards.NewCatalog(cs), banlist
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetchCtx, cancel := context.WithTimeout(ctx, 2*cfg.FetchTimeout)
	catalog, banlist := loadCatalog(fetchCtx, provider(cfg, logger), logger)
	cancel()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return errors.Wrap(err, "open deck store")
	}
	defer st.Close()

	sessions := api.NewSessions(st, catalog, logger.Named("sessions"))
	h := api.NewHandler(catalog, banlist, sessions, logger.Named("api"))

	r := gin.New()
	r.Use(api.RequestLogger(logger.Named("http")), api.Recovery(logger))
	api.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
