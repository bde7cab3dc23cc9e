package main

import (
	"context"
	"log"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/config"
	"github.com/jask/newsdesk/internal/prefs"
	"github.com/jask/newsdesk/internal/tui"
	"github.com/jask/newsdesk/internal/workflow"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}
	client := api.NewClient(httpClient, cfg.API.BaseURL, cfg.API.Token)
	counts := workflow.NewCounts(client.FetchCounts)
	presets := &prefs.Store{}

	app := tui.New(ctx, cfg, client, counts, presets)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("newsdesk: %v", err)
	}
}
