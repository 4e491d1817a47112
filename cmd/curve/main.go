package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "curve",
		Short:        "Orca Whirlpool liquidity curve builder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build and print the liquidity curve of one or more pools",
		RunE:  runBuild,
	}

	buildCmd.Flags().String("rpc", "", "Solana RPC URL")
	buildCmd.Flags().String("commitment", "confirmed", "RPC commitment (processed, confirmed, finalized)")
	buildCmd.Flags().StringSlice("pool", nil, "whirlpool addresses (comma-separated)")
	buildCmd.Flags().String("in", "", "accounts snapshot JSONL written by fetch (replaces --rpc)")
	buildCmd.Flags().String("out", "", "optional curve points JSONL path")
	buildCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for curve history")
	buildCmd.Flags().Int("width", 20, "liquidity column width")
	buildCmd.Flags().Int("tick-width", 7, "tick column width")
	buildCmd.Flags().Bool("tail", false, "print the last point up to the maximum tick")
	buildCmd.Flags().Bool("prices", false, "print decimal-adjusted price bounds")
	buildCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	buildCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	buildCmd.Flags().Int("workers", 2, "concurrent account fetches")
	buildCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(buildCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Snapshot pool, mint and tick array accounts to JSONL",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("rpc", "", "Solana RPC URL")
	fetchCmd.Flags().String("commitment", "confirmed", "RPC commitment (processed, confirmed, finalized)")
	fetchCmd.Flags().StringSlice("pool", nil, "whirlpool addresses (comma-separated)")
	fetchCmd.Flags().String("out", "./data/accounts.jsonl", "output accounts JSONL")
	fetchCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	fetchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fetchCmd.Flags().Int("workers", 2, "concurrent account fetches")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
