package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vaultScope/internal/config"
	"vaultScope/internal/model"
	"vaultScope/internal/vault"
)

func main() {
	root := &cobra.Command{
		Use:          "vaultctl",
		Short:        "Vault contract query and zap call-data builder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	poolTokensCmd := &cobra.Command{
		Use:   "pool-tokens",
		Short: "Fetch pool token balances from the vault",
		RunE:  runPoolTokens,
	}

	poolTokensCmd.Flags().String("rpc", "", "chain RPC URL")
	poolTokensCmd.Flags().Uint64("chain-id", 0, "chain id")
	poolTokensCmd.Flags().String("chain-name", "", "chain name")
	poolTokensCmd.Flags().String("vault", "", "vault contract address")
	poolTokensCmd.Flags().String("query", "", "query-helper contract address")
	poolTokensCmd.Flags().String("pool-id", "", "pool id (bytes32 hex)")
	poolTokensCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(poolTokensCmd)
	root.AddCommand(newZapCommand("join-zap", "Build a joinPool zap step from a request file"))
	root.AddCommand(newZapCommand("exit-zap", "Build an exitPool zap step from a request file"))
	root.AddCommand(newZapCommand("swap-zap", "Build a swap zap step from a request file"))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPoolTokens(cmd *cobra.Command, _ []string) error {
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

	poolID, _ := cmd.Flags().GetString("pool-id")

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.VaultAddress == "" {
		return fmt.Errorf("vault address is required")
	}
	if poolID == "" {
		return fmt.Errorf("pool id is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := vault.NewClient(
		model.ChainContext{ChainID: cfg.ChainID, Name: cfg.ChainName, RPCURL: cfg.RPCURL},
		vault.Config{
			VaultAddress: common.HexToAddress(cfg.VaultAddress),
			QueryAddress: common.HexToAddress(cfg.QueryAddress),
		},
		vault.WithLogger(logger),
	)
	defer client.Close()

	logger.Info("fetch pool tokens",
		zap.String("rpc", cfg.RPCURL),
		zap.String("vault", cfg.VaultAddress),
		zap.String("pool_id", poolID),
	)

	balances, err := client.GetPoolTokens(ctx, poolID)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(balances, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal balances: %w", err)
	}
	fmt.Println(string(out))

	return nil
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
