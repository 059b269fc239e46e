package model

import (
	"encoding/json"
)

// TokenInsertion marks a byte offset in encoded call data where a zap
// engine may overwrite one 32-byte word with a runtime-computed balance of
// Token before submission.
type TokenInsertion struct {
	Token string `json:"token"`
	Index int    `json:"index"`
}

// ZapStep is one contract call inside a larger zap transaction. Value is
// the literal "0" for vault operations since no native currency moves.
type ZapStep struct {
	Target string           `json:"target"`
	Value  string           `json:"value"`
	Data   string           `json:"data"`
	Tokens []TokenInsertion `json:"tokens"`
}

// MarshalJSON ensures ZapStep is encoded with stable field names.
func (zs ZapStep) MarshalJSON() ([]byte, error) {
	type Alias ZapStep
	return json.Marshal(Alias(zs))
}

// UnmarshalJSON decodes a ZapStep from JSON.
func (zs *ZapStep) UnmarshalJSON(data []byte) error {
	type Alias ZapStep
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*zs = ZapStep(a)
	return nil
}
