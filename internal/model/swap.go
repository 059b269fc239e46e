package model

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

// SwapKind selects which side of a swap is fixed.
type SwapKind uint8

const (
	SwapKindGivenIn  SwapKind = 0
	SwapKindGivenOut SwapKind = 1
)

// SwapArgs describes a single-hop swap. Amount is always non-negative at
// the call boundary; Limit bounds the calculated side.
type SwapArgs struct {
	PoolID              string          `json:"pool_id"`
	Kind                SwapKind        `json:"kind"`
	AssetIn             string          `json:"asset_in"`
	AssetOut            string          `json:"asset_out"`
	Amount              decimal.Decimal `json:"amount"`
	Limit               decimal.Decimal `json:"limit"`
	Deadline            int64           `json:"deadline"`
	UserData            hexutil.Bytes   `json:"user_data,omitempty"`
	Sender              string          `json:"sender"`
	Recipient           string          `json:"recipient"`
	FromInternalBalance bool            `json:"from_internal_balance"`
	ToInternalBalance   bool            `json:"to_internal_balance"`
}

// BatchSwapStep is one hop of a batch swap; asset indexes point into the
// enclosing BatchSwapArgs.Assets list.
type BatchSwapStep struct {
	PoolID        string          `json:"pool_id"`
	AssetInIndex  int             `json:"asset_in_index"`
	AssetOutIndex int             `json:"asset_out_index"`
	Amount        decimal.Decimal `json:"amount"`
	UserData      hexutil.Bytes   `json:"user_data,omitempty"`
}

// BatchSwapArgs describes a multi-hop swap. Limits are signed: a negative
// limit represents a minimum output for that asset.
type BatchSwapArgs struct {
	Kind     SwapKind          `json:"kind"`
	Swaps    []BatchSwapStep   `json:"swaps"`
	Assets   []string          `json:"assets"`
	Limits   []decimal.Decimal `json:"limits"`
	Deadline int64             `json:"deadline"`
}
