// Package cli defines Cobra command definitions for the prajna CLI.
// This file contains the root command and shared bootstrap helpers.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prajna-dev/prajna/internal/api"
	"github.com/prajna-dev/prajna/internal/config"
	"github.com/prajna-dev/prajna/internal/log"
	"github.com/prajna-dev/prajna/internal/store"
	"github.com/prajna-dev/prajna/internal/tui"
	"github.com/prajna-dev/prajna/internal/tui/app"
)

var (
	debug      bool
	playground bool
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "prajna",
	Short: "Terminal client for the prajna online judge",
	Long: `Prajna is a terminal client for the prajna online judge.
It opens a workspace where you can edit solutions, run them against
custom input, submit them for grading, and request AI code review.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When stdout is not a terminal, point at the plain commands.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		model := tui.NewModel(env.cfg, env.client, env.store, env.logger)
		return tui.Run(app.New(model, playground))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.Flags().BoolVar(&playground, "playground", false, "Open the scratch playground directly")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(runCmd)
}

// env bundles the long-lived dependencies shared by all commands.
type env struct {
	cfg    *config.Config
	store  *store.Store
	client *api.Client
	logger *zap.Logger
}

func (e *env) close() {
	_ = e.store.Close()
	_ = e.logger.Sync()
}

// bootstrap loads config, opens the local store and builds the judge
// client. Missing config falls back to defaults.
func bootstrap() (*env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	cfg, err := config.ReadConfig(home)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	dataDir := config.Dir(home)
	logger, err := log.New(dataDir, debug)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(filepath.Join(dataDir, "prajna.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.RequestTimeout(), st, logger)
	return &env{cfg: cfg, store: st, client: client, logger: logger}, nil
}
