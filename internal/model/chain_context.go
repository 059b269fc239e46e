package model

// ChainContext identifies the blockchain network a vault client operates on.
type ChainContext struct {
	ChainID uint64 `json:"chain_id"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpc_url"`
}
