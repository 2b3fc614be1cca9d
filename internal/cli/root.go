// Package cli implements notebookctl, a command-line client that drives the
// same ingestion and retrieval services as the HTTP API.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"notebook-ai/internal/app"
	"notebook-ai/internal/config"
	"notebook-ai/internal/contextutil"
	"notebook-ai/internal/handlers"
	"notebook-ai/internal/rag"
)

var (
	userID     string
	outputJSON bool
)

// Services used by the commands. They are opened from configuration on first
// use unless already set.
var (
	notebookService handlers.NotebookService
	ingester        handlers.Ingester
	engine          rag.Engine
	closeServices   func() error
	cmdLogger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notebookctl",
	Short: "Manage notebooks and search their sources",
	Long: `notebookctl creates notebooks, ingests text, links and files into them,
and runs semantic search over the ingested sources.

Configuration is read from the environment, a .env file, or CONFIG_FILE.`,
	SilenceUsage:      true,
	PersistentPreRunE: openServices,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "local", "user that owns the notebooks")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output results as JSON")
}

// Execute runs the root command and releases any services it opened.
func Execute() error {
	err := rootCmd.Execute()
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil && err == nil {
			err = cerr
		}
		closeServices = nil
	}
	return err
}

func openServices(cmd *cobra.Command, _ []string) error {
	if notebookService != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cmdLogger = app.NewLogger(cfg, os.Stderr)
	slog.SetDefault(cmdLogger)

	a, err := app.Open(commandContext(cmd), cfg)
	if err != nil {
		return err
	}

	notebookService = a.Notebooks
	ingester = a.Pipeline
	engine = a.Engine
	closeServices = a.Close
	return nil
}

// commandContext returns the context for a command run, carrying the user ID
// and, once services are open, the configured logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cmdLogger != nil {
		ctx = contextutil.WithLogger(ctx, cmdLogger.With("user_id", userID))
	}
	return contextutil.WithUserID(ctx, userID)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
