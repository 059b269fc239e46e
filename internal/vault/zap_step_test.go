package vault

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"vaultScope/internal/model"
)

func newOfflineClient() *Client {
	return NewClient(
		model.ChainContext{ChainID: 56, Name: "bsc"},
		Config{
			VaultAddress: common.HexToAddress("0xBA12222222228d8Ba445958a75a0704d566BF2C8"),
			QueryAddress: common.HexToAddress("0xE39B5e3B6D74016b2F6A9673D7d7493B6DF549d5"),
		},
	)
}

// encodeExitUserData builds an exit userData blob: the kind discriminant
// word followed by the given words.
func encodeExitUserData(t *testing.T, kind uint64, words ...*big.Int) []byte {
	t.Helper()
	blob := common.LeftPadBytes(new(big.Int).SetUint64(kind).Bytes(), 32)
	for _, w := range words {
		word := new(big.Int).Set(w)
		blob = append(blob, common.LeftPadBytes(word.Bytes(), 32)...)
	}
	return blob
}

func wordAt(t *testing.T, dataHex string, index int) *big.Int {
	t.Helper()
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		t.Fatalf("decode step data: %v", err)
	}
	if index+32 > len(data) {
		t.Fatalf("index %d out of range for %d bytes", index, len(data))
	}
	return new(big.Int).SetBytes(data[index : index+32])
}

func TestJoinPoolZapInsertionOffsets(t *testing.T) {
	client := newOfflineClient()

	req := model.JoinPoolRequest{
		PoolID:       testPoolID,
		Sender:       "0x1111111111111111111111111111111111111111",
		Recipient:    "0x1111111111111111111111111111111111111111",
		Assets:       []string{testAssetA, testAssetB},
		MaxAmountsIn: []decimal.Decimal{decimal.NewFromInt(1000), decimal.NewFromInt(2000)},
	}

	step, err := client.GetJoinPoolZap(req, true)
	if err != nil {
		t.Fatalf("join zap: %v", err)
	}

	if step.Target != client.cfg.VaultAddress.Hex() {
		t.Fatalf("target mismatch: %s", step.Target)
	}
	if step.Value != "0" {
		t.Fatalf("value must be the literal 0, got %q", step.Value)
	}
	if len(step.Tokens) != 2 {
		t.Fatalf("expected 2 insertions, got %d", len(step.Tokens))
	}

	n := len(req.Assets)
	for i, ins := range step.Tokens {
		want := selectorLength + 32*(9+n+1+i)
		if ins.Index != want {
			t.Fatalf("insertion %d index mismatch: got %d want %d", i, ins.Index, want)
		}
		if ins.Token != common.HexToAddress(req.Assets[i]).Hex() {
			t.Fatalf("insertion %d token mismatch: %s", i, ins.Token)
		}
		// the marked word must hold the encoded maxAmountsIn element
		got := wordAt(t, step.Data, ins.Index)
		if got.Cmp(req.MaxAmountsIn[i].BigInt()) != 0 {
			t.Fatalf("insertion %d points at %s, want %s", i, got, req.MaxAmountsIn[i])
		}
	}
}

func TestJoinPoolZapWithoutInsertion(t *testing.T) {
	client := newOfflineClient()

	step, err := client.GetJoinPoolZap(model.JoinPoolRequest{
		PoolID:       testPoolID,
		Assets:       []string{testAssetA},
		MaxAmountsIn: []decimal.Decimal{decimal.NewFromInt(1)},
	}, false)
	if err != nil {
		t.Fatalf("join zap: %v", err)
	}
	if len(step.Tokens) != 0 {
		t.Fatalf("expected no insertions, got %d", len(step.Tokens))
	}
}

func TestExitPoolZapKindOffsets(t *testing.T) {
	client := newOfflineClient()
	bptAmount := big.NewInt(123456)

	cases := []struct {
		name     string
		userData []byte
		word     int
		amount   *big.Int
	}{
		{
			name:     "exact bpt in for all tokens out",
			userData: encodeExitUserData(t, 0, bptAmount),
			word:     1,
			amount:   bptAmount,
		},
		{
			name:     "exact bpt in for one token out",
			userData: encodeExitUserData(t, 1, bptAmount, big.NewInt(0)),
			word:     1,
			amount:   bptAmount,
		},
		{
			// abi.encode(kind, amountsOut[], maxBPTIn): the cap sits past
			// the discriminant and the array offset pointer
			name:     "bpt in for exact tokens out",
			userData: encodeExitUserData(t, 2, big.NewInt(0x60), big.NewInt(999), big.NewInt(2), big.NewInt(10), big.NewInt(20)),
			word:     2,
			amount:   big.NewInt(999),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := model.ExitPoolRequest{
				PoolID:        testPoolID,
				Sender:        "0x1111111111111111111111111111111111111111",
				Recipient:     "0x1111111111111111111111111111111111111111",
				Assets:        []string{testAssetA, testAssetB},
				MinAmountsOut: []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2)},
				UserData:      tc.userData,
			}

			step, err := client.GetExitPoolZap(req, true)
			if err != nil {
				t.Fatalf("exit zap: %v", err)
			}
			if len(step.Tokens) != 1 {
				t.Fatalf("expected one insertion, got %d", len(step.Tokens))
			}

			ins := step.Tokens[0]
			want := exitUserDataOffset(len(req.Assets)) + tc.word*32
			if ins.Index != want {
				t.Fatalf("index mismatch: got %d want %d", ins.Index, want)
			}
			if ins.Token != poolAddressOf(testPoolID).Hex() {
				t.Fatalf("token must be the pool liquidity token, got %s", ins.Token)
			}
			if got := wordAt(t, step.Data, ins.Index); got.Cmp(tc.amount) != 0 {
				t.Fatalf("insertion points at %s, want %s", got, tc.amount)
			}
		})
	}
}

func TestExitPoolZapUnsupportedKind(t *testing.T) {
	client := newOfflineClient()

	req := model.ExitPoolRequest{
		PoolID:        testPoolID,
		Assets:        []string{testAssetA, testAssetB},
		MinAmountsOut: []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2)},
		UserData:      encodeExitUserData(t, 99, big.NewInt(1)),
	}

	if _, err := client.GetExitPoolZap(req, true); !errors.Is(err, ErrUnsupportedExitKind) {
		t.Fatalf("expected ErrUnsupportedExitKind, got %v", err)
	}
}

func TestExitPoolZapShortUserData(t *testing.T) {
	client := newOfflineClient()

	req := model.ExitPoolRequest{
		PoolID:        testPoolID,
		Assets:        []string{testAssetA},
		MinAmountsOut: []decimal.Decimal{decimal.NewFromInt(1)},
		UserData:      []byte{0x01},
	}

	if _, err := client.GetExitPoolZap(req, true); !errors.Is(err, ErrUnsupportedExitKind) {
		t.Fatalf("expected ErrUnsupportedExitKind, got %v", err)
	}
}

func TestSwapZapInsertionOffset(t *testing.T) {
	client := newOfflineClient()

	args := model.SwapArgs{
		PoolID:    testPoolID,
		Kind:      model.SwapKindGivenIn,
		AssetIn:   testAssetA,
		AssetOut:  testAssetB,
		Amount:    decimal.NewFromInt(777),
		Limit:     decimal.NewFromInt(700),
		Deadline:  1700000000,
		Sender:    "0x1111111111111111111111111111111111111111",
		Recipient: "0x1111111111111111111111111111111111111111",
	}

	step, err := client.GetSwapZap(args, true)
	if err != nil {
		t.Fatalf("swap zap: %v", err)
	}
	if len(step.Tokens) != 1 {
		t.Fatalf("expected one insertion, got %d", len(step.Tokens))
	}

	ins := step.Tokens[0]
	if want := selectorLength + 32*swapAmountWord; ins.Index != want {
		t.Fatalf("index mismatch: got %d want %d", ins.Index, want)
	}
	if ins.Token != common.HexToAddress(testAssetA).Hex() {
		t.Fatalf("token mismatch: %s", ins.Token)
	}
	if got := wordAt(t, step.Data, ins.Index); got.Cmp(big.NewInt(777)) != 0 {
		t.Fatalf("insertion points at %s, want 777", got)
	}
}
