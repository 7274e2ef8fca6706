package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/config"
	"github.com/katalvlaran/relgraph/persisted"
	"github.com/katalvlaran/relgraph/snapshot"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:          "relgraph",
	Short:        "Embedded labeled graph store",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath, nil); err != nil {
			return err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		if logger, err = config.InitLogger(level); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		config.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default ./relgraph.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, importCmd, statsCmd, wipeCmd, graphCmd)
}

// openDatabase opens the configured snapshot backend and loads the database
// from it. The caller must Close the result.
func openDatabase(ctx context.Context) (*persisted.Database, error) {
	st, err := snapshot.Open(ctx, cfg.Snapshot(logger))
	if err != nil {
		return nil, err
	}
	db, err := persisted.Open(ctx, st,
		persisted.WithLogger(logger),
		persisted.WithMetrics(persisted.NewMetrics(cfg.MetricsNamespace)),
		persisted.WithSaveTimeout(cfg.SaveTimeout()),
	)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return db, nil
}

// closeDatabase closes db and logs a failure.
func closeDatabase(db *persisted.Database) {
	if err := db.Close(); err != nil {
		logger.Warn("close snapshot store", zap.Error(err))
	}
}
