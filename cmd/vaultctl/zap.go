package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vaultScope/internal/config"
	"vaultScope/internal/model"
	"vaultScope/internal/storage"
	"vaultScope/internal/vault"
)

// newZapCommand builds one of the zap-step commands; the encoding is
// offline, no RPC connection is opened.
func newZapCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runZap(cmd, use)
		},
	}

	cmd.Flags().String("vault", "", "vault contract address")
	cmd.Flags().String("query", "", "query-helper contract address")
	cmd.Flags().Uint64("chain-id", 0, "chain id")
	cmd.Flags().String("chain-name", "", "chain name")
	cmd.Flags().String("in", "", "request JSON file")
	cmd.Flags().String("out", "./data/zap_steps.jsonl", "output JSONL path")
	cmd.Flags().Bool("insert-balances", false, "mark amount words for runtime balance substitution")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func runZap(cmd *cobra.Command, use string) error {
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

	in, _ := cmd.Flags().GetString("in")
	insertBalances, _ := cmd.Flags().GetBool("insert-balances")

	if cfg.VaultAddress == "" {
		return fmt.Errorf("vault address is required")
	}
	if in == "" {
		return fmt.Errorf("request file is required")
	}

	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("read request file: %w", err)
	}

	client := vault.NewClient(
		model.ChainContext{ChainID: cfg.ChainID, Name: cfg.ChainName, RPCURL: cfg.RPCURL},
		vault.Config{
			VaultAddress: common.HexToAddress(cfg.VaultAddress),
			QueryAddress: common.HexToAddress(cfg.QueryAddress),
		},
		vault.WithLogger(logger),
	)

	var step model.ZapStep
	switch use {
	case "join-zap":
		var req model.JoinPoolRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse join request: %w", err)
		}
		step, err = client.GetJoinPoolZap(req, insertBalances)
	case "exit-zap":
		var req model.ExitPoolRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse exit request: %w", err)
		}
		step, err = client.GetExitPoolZap(req, insertBalances)
	case "swap-zap":
		var args model.SwapArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("parse swap args: %w", err)
		}
		step, err = client.GetSwapZap(args, insertBalances)
	default:
		return fmt.Errorf("unknown zap command: %s", use)
	}
	if err != nil {
		return err
	}

	var sink storage.StepSink = storage.NewJsonlSink(cfg.Out)
	if err := sink.PutSteps([]model.ZapStep{step}); err != nil {
		return err
	}

	logger.Info("zap step written",
		zap.String("command", use),
		zap.String("target", step.Target),
		zap.Int("insertions", len(step.Tokens)),
		zap.String("out", cfg.Out),
	)

	return nil
}
