package main

import (
	"context"
	"fmt"
	"os"

	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/osa911/teamchat/internal/config"
	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/version"
)

var (
	logger *logging.Logger
	cfg    *config.Config
)

// initLogger keeps administration output readable by logging only warnings
// unless the server is being run.
func initLogger(cmd *cobra.Command, c *config.Config) error {
	level := c.LogLevel
	if cmd.Name() != serveCmd.Name() {
		level = logging.LevelWarn
	}

	if err := logging.InitLogger(logging.NewLogConfig(level, c.LogFile)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.GetGlobalLogger()
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "teamchat",
	Short: "Teamchat API server and administration CLI",
	Long: `Teamchat serves the team chat HTTP API over a Firebase Realtime Database
and offers read-only administration commands against the same store.

Configuration is read from the environment and .env files (see STORE_BACKEND,
FIREBASE_DATABASE_URL and friends).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if backend, _ := cmd.Flags().GetString("store"); backend != "" {
			if err := os.Setenv("STORE_BACKEND", backend); err != nil {
				return err
			}
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return initLogger(cmd, cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "teamchat version: %s\n", version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Override STORE_BACKEND (firebase or memory)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if logger != nil {
		logger.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
