// Package main provides the xasuusqor backend server: a local-first
// journaling API with AI-assisted entry enrichment.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mohameddacar/xasuusqor/internal/config"
	"github.com/Mohameddacar/xasuusqor/internal/logging"
)

var (
	cfg     config.Config
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "xasuusqor",
	Short: "Personal journaling backend with AI-assisted enrichment",
	Long: `Xasuusqor is a local-first journaling backend. It serves a REST API
for journals, entries and goals, enriches entries through an annotation
model, and streams annotation lifecycle events over WebSocket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Init(logging.Options{LogFile: cfg.LogFile, Debug: debug})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "directory containing the .env config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
