package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vitolop1/azure-intelligent-support-bot/internal/analyze"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/config"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/dialog"
	"github.com/Vitolop1/azure-intelligent-support-bot/internal/httpapi"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	// Analyzer registry (route by ANALYZE_PROVIDER)
	reg := analyze.NewRegistry()
	reg.Register("azure", func(ctx context.Context) (analyze.Analyzer, error) {
		_ = ctx
		return analyze.NewAzureProvider(cfg.AzureEndpoint, cfg.AzureKey, cfg.AnalyzeTimeout), nil
	})
	reg.Register("static", func(ctx context.Context) (analyze.Analyzer, error) {
		_ = ctx
		return analyze.NewStaticProvider(), nil
	})

	analyzer, err := reg.Get(context.Background(), cfg.AnalyzeProvider)
	if err != nil {
		log.Fatalf("analyzer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := dialog.NewStore()
	store.StartSweeper(ctx, cfg.SweepInterval, cfg.SessionTTL)

	bot := dialog.NewRouter(store, analyzer, cfg.IssueMaxLen)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(cfg, bot),
	}

	go func() {
		log.Printf("server listening addr=%s provider=%s", cfg.HTTPAddr, cfg.AnalyzeProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
