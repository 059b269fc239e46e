package model

import (
	"github.com/shopspring/decimal"
)

// Pool describes a vault pool by id and its canonical token set.
type Pool struct {
	ID     string   `json:"id"`
	Tokens []string `json:"tokens"`
}

// PoolTokenBalance is one pool token paired with its current vault balance.
// Order follows the pool's canonical token order, not sorted.
type PoolTokenBalance struct {
	Token   string          `json:"token"`
	Balance decimal.Decimal `json:"balance"`
}
