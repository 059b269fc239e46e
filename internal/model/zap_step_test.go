package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestZapStepJSONRoundTrip(t *testing.T) {
	original := ZapStep{
		Target: "0xBA12222222228d8Ba445958a75a0704d566BF2C8",
		Value:  "0",
		Data:   "0xb95cac28deadbeef",
		Tokens: []TokenInsertion{
			{Token: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Index: 388},
			{Token: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Index: 420},
		},
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded ZapStep
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}
