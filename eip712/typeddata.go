// Package eip712 builds EIP-712 typed-data digests for the authorization
// messages the ledger accepts and recovers their secp256k1 signers.
// Verification is pure: the ledger composes these functions with its own
// state checks.
package eip712

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Primary types understood by the verifier.
const (
	TypePermit                    = "Permit"
	TypeTransferWithAuthorization = "TransferWithAuthorization"
	TypeForwardRequest            = "ForwardRequest"
)

// SignatureLength is the expected r||s||v signature size.
const SignatureLength = 65

// Domain binds a signature to a specific contract, chain and schema
// version, preventing cross-context replay.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

func (d Domain) typedDataDomain() apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              d.Name,
		Version:           d.Version,
		ChainId:           (*ethmath.HexOrDecimal256)(d.ChainID),
		VerifyingContract: d.VerifyingContract.Hex(),
	}
}

// Separator returns the EIP-712 domain separator hash.
func (d Domain) Separator() (common.Hash, error) {
	td := apitypes.TypedData{
		Types:       apitypes.Types{"EIP712Domain": domainType},
		PrimaryType: "EIP712Domain",
		Domain:      d.typedDataDomain(),
	}
	sep, err := td.HashStruct("EIP712Domain", td.Domain.Map())
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash domain: %w", err)
	}
	return common.BytesToHash(sep), nil
}

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

var authorizationType = []apitypes.Type{
	{Name: "owner", Type: "address"},
	{Name: "spender", Type: "address"},
	{Name: "value", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "deadline", Type: "uint256"},
}

// Authorization is the message signed for both permit and
// transfer-with-authorization; the two schemas share one shape and differ
// only in the primary type name.
type Authorization struct {
	Owner    common.Address
	Spender  common.Address
	Value    *big.Int
	Nonce    *big.Int
	Deadline *big.Int
}

// AuthorizationDigest computes the signing digest for a permit or
// transfer-with-authorization message under the given domain.
func AuthorizationDigest(domain Domain, primaryType string, auth Authorization) ([]byte, error) {
	if primaryType != TypePermit && primaryType != TypeTransferWithAuthorization {
		return nil, fmt.Errorf("unsupported primary type %q", primaryType)
	}
	td := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			primaryType:    authorizationType,
		},
		PrimaryType: primaryType,
		Domain:      domain.typedDataDomain(),
		Message: apitypes.TypedDataMessage{
			"owner":    auth.Owner.Hex(),
			"spender":  auth.Spender.Hex(),
			"value":    (*ethmath.HexOrDecimal256)(bigOrZero(auth.Value)),
			"nonce":    (*ethmath.HexOrDecimal256)(bigOrZero(auth.Nonce)),
			"deadline": (*ethmath.HexOrDecimal256)(bigOrZero(auth.Deadline)),
		},
	}
	digest, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return digest, nil
}

// ForwardRequest is the message a principal signs to have a relay submit a
// call on its behalf.
type ForwardRequest struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Gas   *big.Int
	Nonce *big.Int
	Data  []byte
}

// ForwardRequestTypeHash is the keccak hash of the canonical
// ForwardRequest schema string.
var ForwardRequestTypeHash = common.BytesToHash(crypto.Keccak256(
	[]byte("ForwardRequest(address from,address to,uint256 value,uint256 gas,uint256 nonce,bytes data)"),
))

// ForwardRequestDigest computes the signing digest for a forward request.
// The domain separator and type hash come from the relay's registration,
// and suffixData carries any schema extension appended after the fixed
// fields.
func ForwardRequestDigest(domainSeparator, typeHash common.Hash, req ForwardRequest, suffixData []byte) []byte {
	enc := make([]byte, 0, 7*common.HashLength+len(suffixData))
	enc = append(enc, typeHash.Bytes()...)
	enc = append(enc, common.LeftPadBytes(req.From.Bytes(), common.HashLength)...)
	enc = append(enc, common.LeftPadBytes(req.To.Bytes(), common.HashLength)...)
	enc = append(enc, ethmath.U256Bytes(new(big.Int).Set(bigOrZero(req.Value)))...)
	enc = append(enc, ethmath.U256Bytes(new(big.Int).Set(bigOrZero(req.Gas)))...)
	enc = append(enc, ethmath.U256Bytes(new(big.Int).Set(bigOrZero(req.Nonce)))...)
	enc = append(enc, crypto.Keccak256(req.Data)...)
	enc = append(enc, suffixData...)
	structHash := crypto.Keccak256(enc)
	return crypto.Keccak256([]byte{0x19, 0x01}, domainSeparator.Bytes(), structHash)
}

// Recover returns the address that produced the given r||s||v signature
// over the digest. Both legacy (27/28) and canonical (0/1) recovery ids
// are accepted.
func Recover(digest []byte, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(digest, normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
