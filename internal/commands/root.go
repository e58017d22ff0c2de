// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/spriteforge/autopaint/internal/config"
	"github.com/spriteforge/autopaint/internal/credentials"
	"github.com/spriteforge/autopaint/internal/logger"
)

var (
	// Loaded configuration
	cfg *config.Config
	// Credential resolver backed by the configured keyfile
	creds *credentials.Resolver
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "autopaint",
	Short: "autopaint - AI pixel-art scripting for Aseprite",
	Long: `autopaint turns a natural-language request plus a canvas snapshot into an
executable Aseprite Lua script, trying the configured AI backends in
priority order and falling back when one is unavailable.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		logger.Initialize(cfg.Env)
		creds = credentials.NewResolver(cfg.Keyfile)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}
