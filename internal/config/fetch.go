package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FetchConfig holds configuration for the fetch command.
type FetchConfig struct {
	RPCURL       string
	Commitment   string
	Pools        []string
	Out          string
	MaxRetries   int
	RetryBackoff time.Duration
	Workers      int
	LogLevel     string
}

// LoadFetch merges config file, environment variables, and flags into FetchConfig.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v := viper.New()
	setCommonDefaults(v)
	v.SetDefault("out", "./data/accounts.jsonl")

	if err := read(v, cfgFile, flags); err != nil {
		return FetchConfig{}, err
	}

	return FetchConfig{
		RPCURL:       v.GetString("rpc"),
		Commitment:   v.GetString("commitment"),
		Pools:        getStringSlice(v, "pool"),
		Out:          v.GetString("out"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Workers:      v.GetInt("workers"),
		LogLevel:     v.GetString("log-level"),
	}, nil
}
