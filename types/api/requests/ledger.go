// Package requests defines the JSON bodies accepted by the HTTP surface.
// All addresses are 0x-prefixed hex; all amounts, rates and nonces are
// base-10 integer strings so u256 values survive JSON untouched.
package requests

// TransferRequest moves funds from the caller to a recipient.
type TransferRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// TransferFromRequest spends the caller's allowance on the source account.
type TransferFromRequest struct {
	Caller string `json:"caller" binding:"required"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// ApproveRequest sets the allowance granted to a spender.
type ApproveRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Spender string `json:"spender" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// MintRequest creates new supply on the recipient's balance.
type MintRequest struct {
	Caller string `json:"caller" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// BurnRequest destroys supply from the caller's own balance.
type BurnRequest struct {
	Caller string `json:"caller" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// MinterRequest administers an issuer and its minting allowance.
type MinterRequest struct {
	Caller    string `json:"caller" binding:"required"`
	Minter    string `json:"minter" binding:"required"`
	Allowance string `json:"allowance,omitempty"`
}

// RoleRequest assigns or revokes a role.
type RoleRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Role    string `json:"role,omitempty"`
	Address string `json:"address" binding:"required"`
}

// CallerRequest carries only the caller identity (pause, safety switch).
type CallerRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// AddressRequest targets an address with an administrative action.
type AddressRequest struct {
	Caller  string `json:"caller" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// ForceTransferRequest is the administrative remediation transfer.
type ForceTransferRequest struct {
	Caller string `json:"caller" binding:"required"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// FeeConfigRequest updates the fee faucet, transfer fee rate or gasless
// base fee.
type FeeConfigRequest struct {
	Caller string `json:"caller" binding:"required"`
	Faucet string `json:"faucet,omitempty"`
	Rate   string `json:"rate,omitempty"`
	Fee    string `json:"fee,omitempty"`
}

// SignatureFields carries a detached r||s||v secp256k1 signature.
type SignatureFields struct {
	R string `json:"r" binding:"required"`
	S string `json:"s" binding:"required"`
	V uint8  `json:"v" binding:"required"`
}

// PermitRequest applies a signed allowance grant.
type PermitRequest struct {
	Owner    string          `json:"owner" binding:"required"`
	Spender  string          `json:"spender" binding:"required"`
	Value    string          `json:"value" binding:"required"`
	Nonce    string          `json:"nonce" binding:"required"`
	Deadline string          `json:"deadline" binding:"required"`
	Sig      SignatureFields `json:"signature" binding:"required"`
}

// TransferWithAuthorizationRequest applies a signed transfer.
type TransferWithAuthorizationRequest struct {
	Owner    string          `json:"owner" binding:"required"`
	To       string          `json:"to" binding:"required"`
	Value    string          `json:"value" binding:"required"`
	Nonce    string          `json:"nonce" binding:"required"`
	Deadline string          `json:"deadline" binding:"required"`
	Sig      SignatureFields `json:"signature" binding:"required"`
}

// ForwardExecuteRequest relays a signed forward request.
type ForwardExecuteRequest struct {
	Operator        string `json:"operator" binding:"required"`
	From            string `json:"from" binding:"required"`
	To              string `json:"to" binding:"required"`
	Value           string `json:"value"`
	Gas             string `json:"gas"`
	Nonce           string `json:"nonce" binding:"required"`
	Data            string `json:"data" binding:"required"`
	DomainSeparator string `json:"domain_separator" binding:"required"`
	TypeHash        string `json:"type_hash" binding:"required"`
	SuffixData      string `json:"suffix_data"`
	Signature       string `json:"signature" binding:"required"`
}
