package vault

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

// Wire tuples mirror the contract structs field for field; names must match
// the ABI component names so go-ethereum can map them positionally.

type joinPoolRequest struct {
	Assets              []common.Address
	MaxAmountsIn        []*big.Int
	UserData            []byte
	FromInternalBalance bool
}

type exitPoolRequest struct {
	Assets            []common.Address
	MinAmountsOut     []*big.Int
	UserData          []byte
	ToInternalBalance bool
}

type singleSwap struct {
	PoolId   [32]byte
	Kind     uint8
	AssetIn  common.Address
	AssetOut common.Address
	Amount   *big.Int
	UserData []byte
}

type batchSwapStep struct {
	PoolId        [32]byte
	AssetInIndex  *big.Int
	AssetOutIndex *big.Int
	Amount        *big.Int
	UserData      []byte
}

type fundManagement struct {
	Sender              common.Address
	FromInternalBalance bool
	Recipient           common.Address
	ToInternalBalance   bool
}

// queryFunds is the fixed dry-run funds structure: zero addresses, no
// internal balance on either side.
func queryFunds() fundManagement {
	return fundManagement{}
}

func poolIDToBytes32(poolID string) [32]byte {
	return common.HexToHash(poolID)
}

// poolAddressOf derives the pool (liquidity token) address from a pool id;
// the id embeds the pool address in its leading 20 bytes.
func poolAddressOf(poolID string) common.Address {
	id := common.HexToHash(poolID)
	return common.BytesToAddress(id.Bytes()[:20])
}

func toWireAddresses(addrs []string) []common.Address {
	out := make([]common.Address, len(addrs))
	for i, a := range addrs {
		out[i] = common.HexToAddress(a)
	}
	return out
}

// toWireAmounts truncates decimals to the fixed-width integers the contract
// expects; swap amounts are non-negative at the call boundary, batch-swap
// limits keep their sign.
func toWireAmounts(amounts []decimal.Decimal) []*big.Int {
	out := make([]*big.Int, len(amounts))
	for i, a := range amounts {
		out[i] = a.BigInt()
	}
	return out
}

func wireJoinRequest(req model.JoinPoolRequest) joinPoolRequest {
	return joinPoolRequest{
		Assets:              toWireAddresses(req.Assets),
		MaxAmountsIn:        toWireAmounts(req.MaxAmountsIn),
		UserData:            req.UserData,
		FromInternalBalance: req.FromInternalBalance,
	}
}

func wireExitRequest(req model.ExitPoolRequest) exitPoolRequest {
	return exitPoolRequest{
		Assets:            toWireAddresses(req.Assets),
		MinAmountsOut:     toWireAmounts(req.MinAmountsOut),
		UserData:          req.UserData,
		ToInternalBalance: req.ToInternalBalance,
	}
}

func wireSingleSwap(args model.SwapArgs) singleSwap {
	return singleSwap{
		PoolId:   poolIDToBytes32(args.PoolID),
		Kind:     uint8(args.Kind),
		AssetIn:  common.HexToAddress(args.AssetIn),
		AssetOut: common.HexToAddress(args.AssetOut),
		Amount:   args.Amount.BigInt(),
		UserData: args.UserData,
	}
}

func wireBatchSwapSteps(steps []model.BatchSwapStep) []batchSwapStep {
	out := make([]batchSwapStep, len(steps))
	for i, s := range steps {
		out[i] = batchSwapStep{
			PoolId:        poolIDToBytes32(s.PoolID),
			AssetInIndex:  big.NewInt(int64(s.AssetInIndex)),
			AssetOutIndex: big.NewInt(int64(s.AssetOutIndex)),
			Amount:        s.Amount.BigInt(),
			UserData:      s.UserData,
		}
	}
	return out
}

// packCall encodes a call to the named function over its declared argument
// tuple. Argument order is part of the contract's immutable interface.
func packCall(parsed abi.ABI, name string, args ...interface{}) ([]byte, error) {
	if _, err := methodOf(parsed, name); err != nil {
		return nil, err
	}
	data, err := parsed.Pack(name, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", name, err)
	}
	return data, nil
}

func encodeJoinPool(req model.JoinPoolRequest) ([]byte, error) {
	parsed, err := VaultABI()
	if err != nil {
		return nil, fmt.Errorf("parse vault abi: %w", err)
	}
	return packCall(parsed, "joinPool",
		poolIDToBytes32(req.PoolID),
		common.HexToAddress(req.Sender),
		common.HexToAddress(req.Recipient),
		wireJoinRequest(req),
	)
}

func encodeExitPool(req model.ExitPoolRequest) ([]byte, error) {
	parsed, err := VaultABI()
	if err != nil {
		return nil, fmt.Errorf("parse vault abi: %w", err)
	}
	return packCall(parsed, "exitPool",
		poolIDToBytes32(req.PoolID),
		common.HexToAddress(req.Sender),
		common.HexToAddress(req.Recipient),
		wireExitRequest(req),
	)
}

func encodeSwap(args model.SwapArgs) ([]byte, error) {
	parsed, err := VaultABI()
	if err != nil {
		return nil, fmt.Errorf("parse vault abi: %w", err)
	}
	funds := fundManagement{
		Sender:              common.HexToAddress(args.Sender),
		FromInternalBalance: args.FromInternalBalance,
		Recipient:           common.HexToAddress(args.Recipient),
		ToInternalBalance:   args.ToInternalBalance,
	}
	return packCall(parsed, "swap",
		wireSingleSwap(args),
		funds,
		args.Limit.BigInt(),
		big.NewInt(args.Deadline),
	)
}

func encodeBatchSwap(args model.BatchSwapArgs, funds fundManagement) ([]byte, error) {
	parsed, err := VaultABI()
	if err != nil {
		return nil, fmt.Errorf("parse vault abi: %w", err)
	}
	return packCall(parsed, "batchSwap",
		uint8(args.Kind),
		wireBatchSwapSteps(args.Swaps),
		toWireAddresses(args.Assets),
		funds,
		toWireAmounts(args.Limits),
		big.NewInt(args.Deadline),
	)
}
