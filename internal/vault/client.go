package vault

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vaultScope/internal/chain"
	"vaultScope/internal/model"
)

// ContractCaller is the read-only slice of a chain connection the client
// needs; *chain.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Config holds the two contract addresses on the target chain.
type Config struct {
	VaultAddress common.Address
	QueryAddress common.Address
}

// Dialer resolves a chain context to a contract caller.
type Dialer func(ctx context.Context, chainCtx model.ChainContext) (ContractCaller, error)

// Client queries and encodes calls against a vault contract. The chain
// connection and the two contract bindings initialize lazily on first use
// and are cached for the client's lifetime; concurrent first users share a
// single in-flight initialization.
type Client struct {
	chainCtx model.ChainContext
	cfg      Config
	logger   *zap.Logger

	conn  *lazy[ContractCaller]
	vault *lazy[*binding]
	query *lazy[*binding]
}

// Option configures optional client behavior.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDialer replaces the default RPC dialer.
func WithDialer(dial Dialer) Option {
	return func(c *Client) {
		if dial != nil {
			c.conn = newLazy(func(ctx context.Context) (ContractCaller, error) {
				return dial(ctx, c.chainCtx)
			})
		}
	}
}

// NewClient builds a vault client for the given chain and contract
// configuration. No network traffic happens until the first operation.
func NewClient(chainCtx model.ChainContext, cfg Config, opts ...Option) *Client {
	c := &Client{
		chainCtx: chainCtx,
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	c.conn = newLazy(func(ctx context.Context) (ContractCaller, error) {
		return chain.NewClient(ctx, chainCtx.RPCURL)
	})
	for _, opt := range opts {
		opt(c)
	}
	c.vault = newLazy(func(ctx context.Context) (*binding, error) {
		return c.newBinding(ctx, cfg.VaultAddress, VaultABI)
	})
	c.query = newLazy(func(ctx context.Context) (*binding, error) {
		return c.newBinding(ctx, cfg.QueryAddress, QueryABI)
	})
	return c
}

// Close releases the chain connection if it was ever dialed.
func (c *Client) Close() {
	if conn, ok := c.conn.peek(); ok {
		if closer, ok := conn.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}

// binding ties a parsed ABI to a deployed address and a caller.
type binding struct {
	address common.Address
	abi     abi.ABI
	caller  ContractCaller
}

func (c *Client) newBinding(ctx context.Context, address common.Address, abiOf func() (abi.ABI, error)) (*binding, error) {
	caller, err := c.conn.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	parsed, err := abiOf()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	return &binding{address: address, abi: parsed, caller: caller}, nil
}

func (b *binding) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := packCall(b.abi, method, args...)
	if err != nil {
		return nil, err
	}
	msg := ethereum.CallMsg{To: &b.address, Data: data}
	resp, err := b.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := b.abi.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// GetPoolTokens returns the vault balance of every pool token, preserving
// the pool's canonical token order.
func (c *Client) GetPoolTokens(ctx context.Context, poolID string) ([]model.PoolTokenBalance, error) {
	b, err := c.vault.get(ctx)
	if err != nil {
		return nil, err
	}

	values, err := b.call(ctx, "getPoolTokens", poolIDToBytes32(poolID))
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("getPoolTokens: %w", ErrInvalidResult)
	}
	tokens, okTokens := values[0].([]common.Address)
	balances, okBalances := values[1].([]*big.Int)
	if !okTokens || !okBalances || len(tokens) != len(balances) {
		return nil, fmt.Errorf("getPoolTokens: %w", ErrInvalidResult)
	}

	out := make([]model.PoolTokenBalance, len(tokens))
	for i, token := range tokens {
		out[i] = model.PoolTokenBalance{
			Token:   token.Hex(),
			Balance: decimal.NewFromBigInt(balances[i], 0),
		}
	}

	c.logger.Debug("pool tokens fetched", zap.String("pool_id", poolID), zap.Int("tokens", len(out)))
	return out, nil
}

// QueryJoinPool simulates a join without moving funds: sender and recipient
// are forced to the zero address. The unused input per asset is the
// requested maximum minus the amount the pool would take.
func (c *Client) QueryJoinPool(ctx context.Context, req model.JoinPoolRequest) (model.JoinPoolResult, error) {
	b, err := c.query.get(ctx)
	if err != nil {
		return model.JoinPoolResult{}, err
	}

	zero := common.Address{}
	values, err := b.call(ctx, "queryJoin", poolIDToBytes32(req.PoolID), zero, zero, wireJoinRequest(req))
	if err != nil {
		return model.JoinPoolResult{}, err
	}

	liquidity, amounts, err := liquidityAndAmounts(values, len(req.Assets), "queryJoin")
	if err != nil {
		return model.JoinPoolResult{}, err
	}

	result := model.JoinPoolResult{
		Liquidity:   liquidity,
		UsedInput:   amounts,
		UnusedInput: make([]decimal.Decimal, len(amounts)),
	}
	for i, used := range amounts {
		unused := req.MaxAmountsIn[i].Sub(used)
		if unused.IsNegative() {
			return model.JoinPoolResult{}, fmt.Errorf(
				"queryJoin: asset %d used %s above maximum %s: %w",
				i, used, req.MaxAmountsIn[i], ErrNegativeUnused,
			)
		}
		result.UnusedInput[i] = unused
	}
	return result, nil
}

// QueryExitPool simulates an exit without moving funds, symmetric to
// QueryJoinPool.
func (c *Client) QueryExitPool(ctx context.Context, req model.ExitPoolRequest) (model.ExitPoolResult, error) {
	b, err := c.query.get(ctx)
	if err != nil {
		return model.ExitPoolResult{}, err
	}

	zero := common.Address{}
	values, err := b.call(ctx, "queryExit", poolIDToBytes32(req.PoolID), zero, zero, wireExitRequest(req))
	if err != nil {
		return model.ExitPoolResult{}, err
	}

	liquidity, amounts, err := liquidityAndAmounts(values, len(req.Assets), "queryExit")
	if err != nil {
		return model.ExitPoolResult{}, err
	}

	return model.ExitPoolResult{Liquidity: liquidity, Outputs: amounts}, nil
}

// QueryBatchSwap simulates a batch swap and returns the signed vault delta
// per asset: positive amounts enter the vault, negative amounts leave it.
func (c *Client) QueryBatchSwap(ctx context.Context, args model.BatchSwapArgs) ([]decimal.Decimal, error) {
	b, err := c.vault.get(ctx)
	if err != nil {
		return nil, err
	}

	values, err := b.call(ctx, "queryBatchSwap",
		uint8(args.Kind),
		wireBatchSwapSteps(args.Swaps),
		toWireAddresses(args.Assets),
		queryFunds(),
	)
	if err != nil {
		return nil, err
	}
	if len(values) < 1 {
		return nil, fmt.Errorf("queryBatchSwap: %w", ErrInvalidResult)
	}
	deltas, ok := values[0].([]*big.Int)
	if !ok || len(deltas) != len(args.Assets) {
		return nil, fmt.Errorf("queryBatchSwap: %w", ErrInvalidResult)
	}

	out := make([]decimal.Decimal, len(deltas))
	for i, d := range deltas {
		out[i] = decimal.NewFromBigInt(d, 0)
	}
	return out, nil
}

// liquidityAndAmounts validates the (liquidity, amounts[]) tuple shared by
// the join and exit simulations.
func liquidityAndAmounts(values []interface{}, assetCount int, method string) (decimal.Decimal, []decimal.Decimal, error) {
	if len(values) < 2 {
		return decimal.Decimal{}, nil, fmt.Errorf("%s: %w", method, ErrInvalidResult)
	}
	liquidity, okLiquidity := values[0].(*big.Int)
	amounts, okAmounts := values[1].([]*big.Int)
	if !okLiquidity || !okAmounts || len(amounts) != assetCount {
		return decimal.Decimal{}, nil, fmt.Errorf("%s: %w", method, ErrInvalidResult)
	}

	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		out[i] = decimal.NewFromBigInt(a, 0)
	}
	return decimal.NewFromBigInt(liquidity, 0), out, nil
}
