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
	"whirlpoolScope/internal/loader"
	"whirlpoolScope/internal/source"
	"whirlpoolScope/internal/storage"
	"whirlpoolScope/internal/whirlpool"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
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

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.Commitment)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	src := source.NewRPCSource(source.RPCConfig{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, logger)

	l := loader.New(loader.Config{Workers: cfg.Workers, Mints: true}, src, logger)
	defer l.Close()

	sink := storage.NewJsonlStorage(cfg.Out)

	logger.Info("fetch start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("pools", len(pools)),
		zap.String("out", cfg.Out),
	)

	for _, pool := range pools {
		accounts, err := l.Fetch(ctx, pool)
		if err != nil {
			return fmt.Errorf("pool %s: %w", pool, err)
		}
		all := accounts.All()
		if err := sink.PutAccountBatch(all); err != nil {
			return fmt.Errorf("write accounts: %w", err)
		}
		logger.Info("pool snapshot written",
			zap.String("pool", pool.String()),
			zap.Int("accounts", len(all)),
		)
	}

	return nil
}
