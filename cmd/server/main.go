package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"atmgate/internal/account/service"
	"atmgate/internal/account/store"
	"atmgate/internal/biometric"
	"atmgate/internal/ledger"
	"atmgate/internal/platform/config"
	"atmgate/internal/platform/httpserver"
	"atmgate/internal/platform/logger"
	"atmgate/internal/platform/metrics"
	httptransport "atmgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	accounts := store.NewInMemory()
	if err := store.Seed(context.Background(), accounts, cfg.SeedDir, log); err != nil {
		log.Error("seeding accounts failed", "error", err)
		os.Exit(1)
	}

	txLog, err := ledger.OpenFile(cfg.LedgerPath)
	if err != nil {
		log.Error("opening transaction ledger failed", "error", err)
		os.Exit(1)
	}
	defer txLog.Close()

	m := metrics.New()
	tokens := service.NewTokenIssuer(cfg.JWTSigningKey, cfg.SessionTTL)
	svc := service.New(accounts, biometric.NewExactMatcher(log), txLog, tokens, m, log)

	handler := httptransport.NewHandler(svc, tokens, log)
	router := httptransport.NewRouter(handler, m, log)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting atmgate", "addr", cfg.Addr, "ledger", cfg.LedgerPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
