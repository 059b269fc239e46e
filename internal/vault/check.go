package vault

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"vaultScope/internal/model"
)

// CheckToken validates that token belongs to the pool's token set. The
// label names the offending argument in the error message.
func CheckToken(pool model.Pool, token string, label string) error {
	want := common.HexToAddress(token)
	for _, t := range pool.Tokens {
		if common.HexToAddress(t) == want {
			return nil
		}
	}
	return fmt.Errorf("%s must be a pool token", label)
}
