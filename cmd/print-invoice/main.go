package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/tokosinar/posfront/internal/backend"
	"github.com/tokosinar/posfront/internal/config"
	"github.com/tokosinar/posfront/internal/invoice"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/print-invoice/main.go <transaction-id>")
		fmt.Println("Example: go run cmd/print-invoice/main.go 1042")
		os.Exit(1)
	}

	id, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction id %q\n", os.Args[1])
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := backend.NewClient(cfg.Backend, logger)

	tx, err := client.GetTransaction(context.Background(), id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch transaction: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(invoice.RenderText(invoice.Summarize(*tx)))
}
