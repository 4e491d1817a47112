package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whirlpoolScope/internal/chain"
	"whirlpoolScope/internal/config"
	"whirlpoolScope/internal/curve"
	"whirlpoolScope/internal/loader"
	"whirlpoolScope/internal/source"
	"whirlpoolScope/internal/storage"
	"whirlpoolScope/internal/storage/postgres"
	"whirlpoolScope/internal/whirlpool"
)

func runBuild(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" && cfg.In == "" {
		return fmt.Errorf("rpc url or input snapshot is required")
	}

	pools, err := whirlpool.ParsePublicKeys(cfg.Pools)
	if err != nil {
		return err
	}
	if len(pools) == 0 {
		return fmt.Errorf("pool list is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src source.Source
	if cfg.In != "" {
		snapshot, err := source.NewSnapshotSource(cfg.In)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		src = snapshot
	} else {
		chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.Commitment)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		src = source.NewRPCSource(source.RPCConfig{
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		}, chainClient, logger)
	}

	var sinks []storage.CurveSink
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	l := loader.New(loader.Config{Workers: cfg.Workers, Mints: cfg.Prices}, src, logger)
	defer l.Close()

	logger.Info("build start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("in", cfg.In),
		zap.Int("pools", len(pools)),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Int("workers", cfg.Workers),
	)

	for _, pool := range pools {
		c, err := l.Load(ctx, pool)
		if err != nil {
			return fmt.Errorf("pool %s: %w", pool, err)
		}

		if len(pools) > 1 {
			fmt.Fprintf(os.Stdout, "# %s\n", pool)
		}
		reporter := curve.NewReporter(curve.ReportOptions{
			TickWidth:      cfg.TickWidth,
			LiquidityWidth: cfg.Width,
			Tail:           cfg.Tail,
			TailTick:       whirlpool.MaxTickIndex,
			Prices:         cfg.Prices,
			DecimalsA:      c.Pool.DecimalsA,
			DecimalsB:      c.Pool.DecimalsB,
		})
		if err := reporter.Write(os.Stdout, c.Points); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		for _, sink := range sinks {
			if err := sink.PutCurve(ctx, c); err != nil {
				return fmt.Errorf("store curve %s: %w", pool, err)
			}
		}
	}

	return nil
}
