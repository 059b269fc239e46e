package vault

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"vaultScope/internal/model"
)

const (
	selectorLength = 4
	wordSize       = 32
)

// joinPool(poolId, sender, recipient, request) call data layout, in 32-byte
// words after the 4-byte selector:
//
//	0..2   poolId, sender, recipient
//	3      offset to the request tuple
//	4..7   request head: assets, maxAmountsIn, userData offsets; fromInternalBalance
//	8      assets length
//	9..    assets elements (N)
//	9+N    maxAmountsIn length
//	10+N.. maxAmountsIn elements
//
// exitPool shares this layout with minAmountsOut and toInternalBalance in
// place of the join fields; its userData content begins at word 11+2N,
// after the userData length word.
const (
	joinAmountsFirstWord  = 10
	exitUserDataFirstWord = 11
)

// joinAmountOffset is the byte position of maxAmountsIn[index] in an
// encoded joinPool call with assetCount assets.
func joinAmountOffset(assetCount, index int) int {
	return selectorLength + wordSize*(joinAmountsFirstWord+assetCount+index)
}

// exitUserDataOffset is the byte position where the userData content of an
// encoded exitPool call begins.
func exitUserDataOffset(assetCount int) int {
	return selectorLength + wordSize*(exitUserDataFirstWord+2*assetCount)
}

// swap(singleSwap, funds, limit, deadline) keeps 7 head words: the
// singleSwap tuple offset, the four inline funds words, limit and deadline.
// The singleSwap tail starts at word 7 and its amount field is the fifth
// word of the tuple.
const swapAmountWord = 7 + 4

// ExitKind is the discriminant encoded in the leading word of an exit
// request's userData.
type ExitKind uint64

const (
	// ExitExactBPTInForTokensOut burns an exact liquidity amount for a
	// proportional share of every pool token.
	ExitExactBPTInForTokensOut ExitKind = 0
	// ExitExactBPTInForOneTokenOut burns an exact liquidity amount for a
	// single pool token.
	ExitExactBPTInForOneTokenOut ExitKind = 1
	// ExitBPTInForExactTokensOut burns up to a liquidity cap for exact
	// token amounts out.
	ExitBPTInForExactTokensOut ExitKind = 2
)

// exitKindOf decodes the exit-kind discriminant from the leading userData
// word.
func exitKindOf(userData []byte) (ExitKind, error) {
	if len(userData) < wordSize {
		return 0, fmt.Errorf("user data shorter than one word: %w", ErrUnsupportedExitKind)
	}
	kind := new(big.Int).SetBytes(userData[:wordSize])
	if !kind.IsUint64() {
		return 0, fmt.Errorf("exit kind %s: %w", kind, ErrUnsupportedExitKind)
	}
	return ExitKind(kind.Uint64()), nil
}

// GetJoinPoolZap encodes a joinPool call as a zap step. With insertBalance
// set, every asset's maxAmountsIn word is marked for runtime substitution.
func (c *Client) GetJoinPoolZap(req model.JoinPoolRequest, insertBalance bool) (model.ZapStep, error) {
	data, err := encodeJoinPool(req)
	if err != nil {
		return model.ZapStep{}, err
	}

	step := model.ZapStep{
		Target: c.cfg.VaultAddress.Hex(),
		Value:  "0",
		Data:   hexutil.Encode(data),
	}
	if insertBalance {
		for i, asset := range req.Assets {
			step.Tokens = append(step.Tokens, model.TokenInsertion{
				Token: common.HexToAddress(asset).Hex(),
				Index: joinAmountOffset(len(req.Assets), i),
			})
		}
	}
	return step, nil
}

// GetExitPoolZap encodes an exitPool call as a zap step. The insertion
// offset depends on the exit kind inside userData; the substituted token is
// the pool's liquidity token, derived from the pool id. Exit kinds place
// the liquidity amount one word past the discriminant, except
// ExitBPTInForExactTokensOut which keeps its liquidity cap two words in,
// past the amounts-out array offset pointer.
func (c *Client) GetExitPoolZap(req model.ExitPoolRequest, insertBalance bool) (model.ZapStep, error) {
	data, err := encodeExitPool(req)
	if err != nil {
		return model.ZapStep{}, err
	}

	step := model.ZapStep{
		Target: c.cfg.VaultAddress.Hex(),
		Value:  "0",
		Data:   hexutil.Encode(data),
	}
	if insertBalance {
		kind, err := exitKindOf(req.UserData)
		if err != nil {
			return model.ZapStep{}, err
		}

		var word int
		switch kind {
		case ExitExactBPTInForTokensOut, ExitExactBPTInForOneTokenOut:
			word = 1
		case ExitBPTInForExactTokensOut:
			word = 2
		default:
			return model.ZapStep{}, fmt.Errorf("exit kind %d: %w", kind, ErrUnsupportedExitKind)
		}

		step.Tokens = append(step.Tokens, model.TokenInsertion{
			Token: poolAddressOf(req.PoolID).Hex(),
			Index: exitUserDataOffset(len(req.Assets)) + word*wordSize,
		})
	}
	return step, nil
}

// GetSwapZap encodes a single swap call as a zap step. With insertBalance
// set, the input amount word is marked for runtime substitution.
func (c *Client) GetSwapZap(args model.SwapArgs, insertBalance bool) (model.ZapStep, error) {
	data, err := encodeSwap(args)
	if err != nil {
		return model.ZapStep{}, err
	}

	step := model.ZapStep{
		Target: c.cfg.VaultAddress.Hex(),
		Value:  "0",
		Data:   hexutil.Encode(data),
	}
	if insertBalance {
		step.Tokens = append(step.Tokens, model.TokenInsertion{
			Token: common.HexToAddress(args.AssetIn).Hex(),
			Index: selectorLength + wordSize*swapAmountWord,
		})
	}
	return step, nil
}
