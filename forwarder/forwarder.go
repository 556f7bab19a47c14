// Package forwarder implements the trusted relay that turns a signed
// forward request into a ledger call made on behalf of the signer. The
// relay keeps its own nonce space, independent of the ledger's permit
// nonces, and only ever relays the plain transfer selector.
package forwarder

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/eurum-fi/eurum/eip712"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/logger"
)

// TransferSelector is the 4-byte selector of transfer(address,uint256),
// the only call the relay will forward.
var TransferSelector = [4]byte{0xa9, 0x05, 0x9c, 0xbb}

var (
	// ErrUnregisteredDomain is returned when the supplied domain separator
	// is not the one this relay registered at construction.
	ErrUnregisteredDomain = errors.New("domain separator not registered with this forwarder")

	// ErrUnregisteredType is returned when the supplied request type hash
	// is not the ForwardRequest schema.
	ErrUnregisteredType = errors.New("request type not registered with this forwarder")
)

// Forwarder relays signed forward requests to exactly one token instance.
type Forwarder struct {
	mu sync.Mutex

	token   *ledger.Token
	address common.Address

	domainSeparator common.Hash
	nonces          map[common.Address]*big.Int

	logger *zap.Logger
}

// New binds a relay to a token. The relay's own identity (address) is what
// the token's administrator registers via SetTrustedForwarder, and its
// EIP-712 domain is scoped to that address so forward-request signatures
// cannot be replayed against another relay.
func New(token *ledger.Token, address common.Address) (*Forwarder, error) {
	domain := token.Domain()
	domain.Name = "Forwarder"
	domain.VerifyingContract = address
	separator, err := domain.Separator()
	if err != nil {
		return nil, fmt.Errorf("failed to compute forwarder domain separator: %w", err)
	}
	log := logger.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Forwarder{
		token:           token,
		address:         address,
		domainSeparator: separator,
		nonces:          make(map[common.Address]*big.Int),
		logger:          log,
	}, nil
}

// Address returns the relay's identity on the ledger.
func (f *Forwarder) Address() common.Address { return f.address }

// DomainSeparator returns the separator forward-request signatures must be
// bound to.
func (f *Forwarder) DomainSeparator() common.Hash { return f.domainSeparator }

// Nonce returns the next forward-request nonce expected from addr.
func (f *Forwarder) Nonce(addr common.Address) *big.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, ok := f.nonces[addr]; ok {
		return new(big.Int).Set(n)
	}
	return new(big.Int)
}

// Execute verifies a signed forward request and, when every check passes,
// has the token perform the encoded transfer as the request's principal.
// operator identifies the party submitting (and sponsoring) the call; the
// token credits it the configured gasless base fee. The request nonce is
// consumed only when the whole call succeeds, so a failed relay attempt
// leaves no trace.
func (f *Forwarder) Execute(operator common.Address, req eip712.ForwardRequest, domainSeparator common.Hash, requestTypeHash common.Hash, suffixData []byte, sig []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.token.IsTrustedForwarder(f.address) {
		return ledger.ErrForwardingNotTrusted
	}
	if domainSeparator != f.domainSeparator {
		return ErrUnregisteredDomain
	}
	if requestTypeHash != eip712.ForwardRequestTypeHash {
		return ErrUnregisteredType
	}

	digest := eip712.ForwardRequestDigest(domainSeparator, requestTypeHash, req, suffixData)
	signer, err := eip712.Recover(digest, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrInvalidSignature, err)
	}
	if signer != req.From {
		return fmt.Errorf("%w: recovered %s, want %s", ledger.ErrInvalidSignature, signer.Hex(), req.From.Hex())
	}

	current := f.nonces[req.From]
	if current == nil {
		current = new(big.Int)
		f.nonces[req.From] = current
	}
	if req.Nonce == nil || req.Nonce.Cmp(current) != 0 {
		return fmt.Errorf("%w: expected %s", ledger.ErrNonceMismatch, current)
	}

	to, amount, err := decodeTransferCall(req.Data)
	if err != nil {
		return err
	}

	if err := f.token.ForwardedTransfer(f.address, req.From, to, amount, operator); err != nil {
		return err
	}
	current.Add(current, big.NewInt(1))

	f.logger.Info("Forwarded transfer executed",
		zap.String("from", req.From.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
		zap.String("operator", operator.Hex()),
	)
	return nil
}

// decodeTransferCall accepts exactly transfer(address,uint256) calldata:
// 4-byte selector plus two 32-byte words. Any other selector is rejected,
// including the gasless-fee settlement entry point.
func decodeTransferCall(data []byte) (common.Address, *big.Int, error) {
	if len(data) != 4+2*common.HashLength {
		return common.Address{}, nil, fmt.Errorf("%w: unexpected calldata length %d", ledger.ErrForwardedCallNotAllowed, len(data))
	}
	if !bytes.Equal(data[:4], TransferSelector[:]) {
		return common.Address{}, nil, fmt.Errorf("%w: selector 0x%x", ledger.ErrForwardedCallNotAllowed, data[:4])
	}
	word1 := data[4 : 4+common.HashLength]
	// address arguments are right-aligned in their word; the padding must
	// be zero for well-formed calldata
	for _, b := range word1[:common.HashLength-common.AddressLength] {
		if b != 0 {
			return common.Address{}, nil, fmt.Errorf("%w: malformed address argument", ledger.ErrForwardedCallNotAllowed)
		}
	}
	to := common.BytesToAddress(word1[common.HashLength-common.AddressLength:])
	amount := new(big.Int).SetBytes(data[4+common.HashLength:])
	return to, amount, nil
}

// EncodeTransferCall produces transfer(address,uint256) calldata for a
// forward request.
func EncodeTransferCall(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, 4+2*common.HashLength)
	data = append(data, TransferSelector[:]...)
	data = append(data, common.LeftPadBytes(to.Bytes(), common.HashLength)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), common.HashLength)...)
	return data
}
