package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/webitplay/depobill/internal/client"
	clientStore "github.com/webitplay/depobill/internal/client/store"
	"github.com/webitplay/depobill/internal/config"
	"github.com/webitplay/depobill/internal/database"
	depobillHttp "github.com/webitplay/depobill/internal/http"
	clientHandler "github.com/webitplay/depobill/internal/http/client"
	invoiceHandler "github.com/webitplay/depobill/internal/http/invoice"
	reportHandler "github.com/webitplay/depobill/internal/http/report"
	"github.com/webitplay/depobill/internal/invoice"
	invoiceStore "github.com/webitplay/depobill/internal/invoice/store"
	"github.com/webitplay/depobill/internal/pdf"
	"github.com/webitplay/depobill/internal/report"
	"github.com/webitplay/depobill/internal/settings"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		invoiceService  = invoice.NewService(invoiceStore.New(db))
		clientService   = client.NewService(clientStore.New(db))
		reportService   = report.NewService(invoiceService)
		settingsService = settings.NewService(cfg.Paths.Settings)
		renderer        = pdf.NewRenderer(cfg.Paths.Exports)
	)

	var (
		invoiceH = invoiceHandler.NewHandler(invoiceService, settingsService, renderer)
		clientH  = clientHandler.NewHandler(clientService)
		reportH  = reportHandler.NewHandler(reportService, cfg.Paths.Exports)
	)

	router := depobillHttp.New(invoiceH, clientH, reportH, cfg.API.Secret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
