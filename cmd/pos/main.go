package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/config"
	"github.com/tokosinar/posfront/internal/tui"
	"github.com/tokosinar/posfront/internal/workspace"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout while the program runs, so logs go nowhere.
	logger := zap.NewNop()

	client := backend.NewClient(cfg.Backend, logger)

	payload, err := client.LoadWorkspace(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load workspace from backend: %v\n", err)
		os.Exit(1)
	}

	ws := workspace.New(client, payload, logger)
	if payload.DefaultPaymentGateway == "" && cfg.POS.DefaultPaymentGateway != "" {
		ws.SetDefaultPaymentGateway(cfg.POS.DefaultPaymentGateway)
	}

	if _, err := tea.NewProgram(tui.New(ws), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		os.Exit(1)
	}
}
