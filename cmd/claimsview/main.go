// Command claimsview serves filtered, sorted, paginated and aggregated views
// over the collections of a claims backend.
package main

import (
	"fmt"
	"os"

	"claimsview/internal/config"
	"claimsview/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "claimsview/docs"
)

var (
	// Global flags
	configFile string
	logLevel   string

	v      *viper.Viper
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "claimsview",
	Short: "Query engine for the claims administration screens",
	Long: `claimsview fetches claims, clients, providers, provider expenses and
notifications from the backend and serves filtered, sorted, paginated and
aggregated views of them.

Settings come from claimsview.yaml, CLAIMSVIEW_* environment variables and
flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v = config.New()
		if configFile != "" {
			v.SetConfigFile(configFile)
		}
		if cmd.Flags().Changed("log-level") {
			v.Set("log.level", logLevel)
		}

		var err error
		logger, err = logging.New(v.GetString("log.level"), v.GetBool("log.development"))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default claimsview.yaml in . or /etc/claimsview)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, exportCmd, migrateCmd, schemasCmd)
}

// loadSettings resolves settings and resource schemas from the viper
// instance prepared by the root command.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(v)
	if err != nil {
		return config.Settings{}, err
	}
	if cf := v.ConfigFileUsed(); cf != "" {
		logger.Debug("Using config file", zap.String("path", cf))
	}
	return settings, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
