package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	webAdapter "smartone-ap/internal/adapters/web"
	"smartone-ap/internal/app"
	"smartone-ap/internal/config"
	"smartone-ap/internal/core"
	"smartone-ap/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	ledger := core.NewLedger(pool)
	billService := core.NewBillService(pool, ledger)
	vendorService := core.NewVendorService(pool)
	accountService := core.NewAccountService(pool)
	periodService := core.NewPeriodService(pool)

	svc := app.NewAppService(billService, vendorService, accountService, periodService, ledger)
	handler := webAdapter.NewHandler(svc, cfg.Web.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	slog.Info("server starting", "app", cfg.App.Name, "port", cfg.App.Port)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server", "error", err)
		os.Exit(1)
	}
}
