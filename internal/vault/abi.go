package vault

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const vaultABIJSON = `[
  {
    "inputs": [{"internalType": "bytes32", "name": "poolId", "type": "bytes32"}],
    "name": "getPoolTokens",
    "outputs": [
      {"internalType": "address[]", "name": "tokens", "type": "address[]"},
      {"internalType": "uint256[]", "name": "balances", "type": "uint256[]"},
      {"internalType": "uint256", "name": "lastChangeBlock", "type": "uint256"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
      {"internalType": "address", "name": "sender", "type": "address"},
      {"internalType": "address", "name": "recipient", "type": "address"},
      {
        "components": [
          {"internalType": "address[]", "name": "assets", "type": "address[]"},
          {"internalType": "uint256[]", "name": "maxAmountsIn", "type": "uint256[]"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.JoinPoolRequest",
        "name": "request",
        "type": "tuple"
      }
    ],
    "name": "joinPool",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
      {"internalType": "address", "name": "sender", "type": "address"},
      {"internalType": "address", "name": "recipient", "type": "address"},
      {
        "components": [
          {"internalType": "address[]", "name": "assets", "type": "address[]"},
          {"internalType": "uint256[]", "name": "minAmountsOut", "type": "uint256[]"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.ExitPoolRequest",
        "name": "request",
        "type": "tuple"
      }
    ],
    "name": "exitPool",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "components": [
          {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
          {"internalType": "enum IVault.SwapKind", "name": "kind", "type": "uint8"},
          {"internalType": "address", "name": "assetIn", "type": "address"},
          {"internalType": "address", "name": "assetOut", "type": "address"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"}
        ],
        "internalType": "struct IVault.SingleSwap",
        "name": "singleSwap",
        "type": "tuple"
      },
      {
        "components": [
          {"internalType": "address", "name": "sender", "type": "address"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"},
          {"internalType": "address", "name": "recipient", "type": "address"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.FundManagement",
        "name": "funds",
        "type": "tuple"
      },
      {"internalType": "uint256", "name": "limit", "type": "uint256"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"}
    ],
    "name": "swap",
    "outputs": [{"internalType": "uint256", "name": "amountCalculated", "type": "uint256"}],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "enum IVault.SwapKind", "name": "kind", "type": "uint8"},
      {
        "components": [
          {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
          {"internalType": "uint256", "name": "assetInIndex", "type": "uint256"},
          {"internalType": "uint256", "name": "assetOutIndex", "type": "uint256"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"}
        ],
        "internalType": "struct IVault.BatchSwapStep[]",
        "name": "swaps",
        "type": "tuple[]"
      },
      {"internalType": "address[]", "name": "assets", "type": "address[]"},
      {
        "components": [
          {"internalType": "address", "name": "sender", "type": "address"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"},
          {"internalType": "address", "name": "recipient", "type": "address"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.FundManagement",
        "name": "funds",
        "type": "tuple"
      },
      {"internalType": "int256[]", "name": "limits", "type": "int256[]"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"}
    ],
    "name": "batchSwap",
    "outputs": [{"internalType": "int256[]", "name": "assetDeltas", "type": "int256[]"}],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "enum IVault.SwapKind", "name": "kind", "type": "uint8"},
      {
        "components": [
          {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
          {"internalType": "uint256", "name": "assetInIndex", "type": "uint256"},
          {"internalType": "uint256", "name": "assetOutIndex", "type": "uint256"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"}
        ],
        "internalType": "struct IVault.BatchSwapStep[]",
        "name": "swaps",
        "type": "tuple[]"
      },
      {"internalType": "address[]", "name": "assets", "type": "address[]"},
      {
        "components": [
          {"internalType": "address", "name": "sender", "type": "address"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"},
          {"internalType": "address", "name": "recipient", "type": "address"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.FundManagement",
        "name": "funds",
        "type": "tuple"
      }
    ],
    "name": "queryBatchSwap",
    "outputs": [{"internalType": "int256[]", "name": "assetDeltas", "type": "int256[]"}],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

const queryABIJSON = `[
  {
    "inputs": [
      {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
      {"internalType": "address", "name": "sender", "type": "address"},
      {"internalType": "address", "name": "recipient", "type": "address"},
      {
        "components": [
          {"internalType": "address[]", "name": "assets", "type": "address[]"},
          {"internalType": "uint256[]", "name": "maxAmountsIn", "type": "uint256[]"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.JoinPoolRequest",
        "name": "request",
        "type": "tuple"
      }
    ],
    "name": "queryJoin",
    "outputs": [
      {"internalType": "uint256", "name": "bptOut", "type": "uint256"},
      {"internalType": "uint256[]", "name": "amountsIn", "type": "uint256[]"}
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
      {"internalType": "address", "name": "sender", "type": "address"},
      {"internalType": "address", "name": "recipient", "type": "address"},
      {
        "components": [
          {"internalType": "address[]", "name": "assets", "type": "address[]"},
          {"internalType": "uint256[]", "name": "minAmountsOut", "type": "uint256[]"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.ExitPoolRequest",
        "name": "request",
        "type": "tuple"
      }
    ],
    "name": "queryExit",
    "outputs": [
      {"internalType": "uint256", "name": "bptIn", "type": "uint256"},
      {"internalType": "uint256[]", "name": "amountsOut", "type": "uint256[]"}
    ],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {
        "components": [
          {"internalType": "bytes32", "name": "poolId", "type": "bytes32"},
          {"internalType": "enum IVault.SwapKind", "name": "kind", "type": "uint8"},
          {"internalType": "address", "name": "assetIn", "type": "address"},
          {"internalType": "address", "name": "assetOut", "type": "address"},
          {"internalType": "uint256", "name": "amount", "type": "uint256"},
          {"internalType": "bytes", "name": "userData", "type": "bytes"}
        ],
        "internalType": "struct IVault.SingleSwap",
        "name": "singleSwap",
        "type": "tuple"
      },
      {
        "components": [
          {"internalType": "address", "name": "sender", "type": "address"},
          {"internalType": "bool", "name": "fromInternalBalance", "type": "bool"},
          {"internalType": "address", "name": "recipient", "type": "address"},
          {"internalType": "bool", "name": "toInternalBalance", "type": "bool"}
        ],
        "internalType": "struct IVault.FundManagement",
        "name": "funds",
        "type": "tuple"
      }
    ],
    "name": "querySwap",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	vaultABI     abi.ABI
	vaultABIOnce sync.Once
	vaultABIErr  error
	queryABI     abi.ABI
	queryABIOnce sync.Once
	queryABIErr  error
)

// VaultABI returns the parsed vault contract ABI.
func VaultABI() (abi.ABI, error) {
	vaultABIOnce.Do(func() {
		vaultABI, vaultABIErr = abi.JSON(strings.NewReader(vaultABIJSON))
	})
	return vaultABI, vaultABIErr
}

// QueryABI returns the parsed query-helper contract ABI.
func QueryABI() (abi.ABI, error) {
	queryABIOnce.Do(func() {
		queryABI, queryABIErr = abi.JSON(strings.NewReader(queryABIJSON))
	})
	return queryABI, queryABIErr
}

// methodOf resolves a function by exact name, failing when the configured
// ABI set does not declare it.
func methodOf(parsed abi.ABI, name string) (abi.Method, error) {
	method, ok := parsed.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%s: %w", name, ErrMethodNotFound)
	}
	return method, nil
}
