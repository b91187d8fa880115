package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/content-hub/content-hub/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "content-hub",
	Short: "AI content generation for marketing teams",
	Long:  "Generates SEO-optimized blogs and timestamped video scripts from uploaded documents, reference URLs, a vector store, or web search.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
