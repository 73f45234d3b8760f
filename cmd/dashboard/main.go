package main

import (
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/spendly/cmd/dashboard/internal/view"
	"github.com/MrJamesThe3rd/spendly/internal/client"
	"github.com/MrJamesThe3rd/spendly/internal/config"
	"github.com/MrJamesThe3rd/spendly/internal/dashboard"
	"github.com/MrJamesThe3rd/spendly/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.Dashboard.LogFile, "dashboard")
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Dashboard.LogFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := logging.New(logFile, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to configure logger", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.Dashboard.APIURL, &http.Client{Timeout: cfg.Dashboard.Timeout})
	ctrl := dashboard.New(api, logger)

	var root view.View = view.NewDashboardModel(ctrl, view.Options{
		Title:     cfg.App.Name,
		Formatter: view.NewFormatter(cfg.Dashboard.Currency, language.English),
		Timeout:   cfg.Dashboard.Timeout,
	})

	logger.Info("starting dashboard", "api", cfg.Dashboard.APIURL)

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
