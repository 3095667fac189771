package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angelmondragon/rocketshoes-cart/api/middleware"
	"github.com/angelmondragon/rocketshoes-cart/internal/inventory"
	"github.com/angelmondragon/rocketshoes-cart/pkg/config"
	"github.com/angelmondragon/rocketshoes-cart/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "inventory-stub"})
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "inventory-stub",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	f, err := os.Open(cfg.Stub.SeedFile)
	if err != nil {
		logg.Error(context.Background(), "failed to open seed file", err)
		os.Exit(1)
	}
	seed, err := inventory.LoadSeed(f)
	_ = f.Close()
	if err != nil {
		logg.Error(context.Background(), "failed to load seed", err)
		os.Exit(1)
	}
	catalog := inventory.NewCatalog(seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Stub.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"addr":     addr,
		"products": len(seed.Products),
		"seed":     cfg.Stub.SeedFile,
	})

	handler := middleware.Logging(logg)(inventory.NewHandler(catalog, logg))
	handler = middleware.RequestID(logg)(handler)
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logg.Info(ctx, "starting inventory stub")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "inventory stub stopped unexpectedly", err)
		os.Exit(1)
	}
}
