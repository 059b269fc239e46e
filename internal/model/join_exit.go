package model

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// JoinPoolRequest describes a joinPool call. Assets and MaxAmountsIn are
// parallel arrays; matching their lengths is the caller's responsibility.
// Sender and Recipient are used by the zap builder only; query simulations
// force both to the zero address.
type JoinPoolRequest struct {
	PoolID              string            `json:"pool_id"`
	Sender              string            `json:"sender"`
	Recipient           string            `json:"recipient"`
	Assets              []string          `json:"assets"`
	MaxAmountsIn        []decimal.Decimal `json:"max_amounts_in"`
	UserData            hexutil.Bytes     `json:"user_data"`
	FromInternalBalance bool              `json:"from_internal_balance"`
}

// JoinPoolResult is the outcome of a simulated join: liquidity token amount
// out plus the used and unused share of every maximum input amount.
type JoinPoolResult struct {
	Liquidity   decimal.Decimal   `json:"liquidity"`
	UsedInput   []decimal.Decimal `json:"used_input"`
	UnusedInput []decimal.Decimal `json:"unused_input"`
}

// ExitPoolRequest describes an exitPool call, symmetric to JoinPoolRequest.
type ExitPoolRequest struct {
	PoolID            string            `json:"pool_id"`
	Sender            string            `json:"sender"`
	Recipient         string            `json:"recipient"`
	Assets            []string          `json:"assets"`
	MinAmountsOut     []decimal.Decimal `json:"min_amounts_out"`
	UserData          hexutil.Bytes     `json:"user_data"`
	ToInternalBalance bool              `json:"to_internal_balance"`
}

// ExitPoolResult is the outcome of a simulated exit: liquidity token amount
// in plus one output amount per asset.
type ExitPoolResult struct {
	Liquidity decimal.Decimal   `json:"liquidity"`
	Outputs   []decimal.Decimal `json:"outputs"`
}
