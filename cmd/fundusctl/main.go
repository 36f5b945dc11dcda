package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jo-hoe/fundusref/internal/core"
	"github.com/jo-hoe/fundusref/internal/logging"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fundusctl",
	Short: "Browse fundus diagnostic references and run placeholder image analysis",
	Long: `fundusctl exposes the diagnostic reference tables and the placeholder
image analysis console on the command line.

Detections are placeholders and must not be used for diagnosis.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = "warn"
		}
		_, err := logging.Setup(level)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a service config file (default: built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(diseasesCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(cdrCmd)
	rootCmd.AddCommand(stageAMDCmd)
}

// newCoreService builds the same service the HTTP server runs
func newCoreService(ctx context.Context) (*core.CoreService, error) {
	config := core.DefaultConfig()
	if configPath != "" {
		loaded, err := core.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	return core.NewCoreService(ctx, config)
}

func closeService(service *core.CoreService) {
	if err := service.Close(); err != nil {
		slog.Warn("failed to close reference store", "error", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
