// Package responses defines the JSON bodies returned by the HTTP surface.
package responses

// TokenInfoResponse describes the token's identity.
type TokenInfoResponse struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"total_supply"`
	TxFeeRate   string `json:"tx_fee_rate"`
	Paused      bool   `json:"paused"`
}

// BalanceResponse reports an account balance.
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// AllowanceResponse reports a spender's remaining allowance.
type AllowanceResponse struct {
	Owner     string `json:"owner"`
	Spender   string `json:"spender"`
	Allowance string `json:"allowance"`
}

// NonceResponse reports the next expected authorization nonce.
type NonceResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

// OperatingResponse reports the safety switch state.
type OperatingResponse struct {
	Operating bool   `json:"operating"`
	LockedBy  string `json:"locked_by"`
}

// MinterAllowanceResponse reports an issuer's remaining minting capacity.
type MinterAllowanceResponse struct {
	Minter    string `json:"minter"`
	Allowance string `json:"allowance"`
}

// AccountStatusResponse reports compliance status for an address.
type AccountStatusResponse struct {
	Address     string `json:"address"`
	Blacklisted bool   `json:"blacklisted"`
}
