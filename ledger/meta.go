package ledger

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/eurum-fi/eurum/eip712"
)

// Permit applies a signed allowance grant: anyone may submit it, but the
// signature must come from the owner and embed the owner's current nonce.
// The nonce is consumed atomically with the approval, so an identical
// payload can never be applied twice.
func (t *Token) Permit(owner, spender common.Address, value, nonce, deadline *big.Int, sig []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkAuthorization(eip712.TypePermit, owner, spender, value, nonce, deadline, sig); err != nil {
		return err
	}
	t.approveLocked(owner, spender, value)
	t.consumeNonce(owner)
	t.logger.Info("Permit applied",
		zap.String("owner", owner.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("value", value.String()),
	)
	return nil
}

// TransferWithAuthorization applies a signed transfer: a full fee-bearing
// transfer from the owner, not gated by any existing allowance. Same
// single-use nonce discipline as Permit.
func (t *Token) TransferWithAuthorization(owner, to common.Address, value, nonce, deadline *big.Int, sig []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.checkAuthorization(eip712.TypeTransferWithAuthorization, owner, to, value, nonce, deadline, sig); err != nil {
		return err
	}
	if err := t.transferLocked(owner, to, value); err != nil {
		return err
	}
	t.consumeNonce(owner)
	t.logger.Info("Authorized transfer applied",
		zap.String("owner", owner.Hex()),
		zap.String("to", to.Hex()),
		zap.String("value", value.String()),
	)
	return nil
}

// checkAuthorization validates a detached authorization without mutating
// state: compliance, deadline, strict-sequential nonce, then signature
// recovery against the claimed owner.
func (t *Token) checkAuthorization(primaryType string, owner, spender common.Address, value, nonce, deadline *big.Int, sig []byte) error {
	if err := validAmount(value); err != nil {
		return err
	}
	if t.paused {
		return ErrPaused
	}
	if t.blacklisted[owner] || t.blacklisted[spender] {
		return ErrBlacklisted
	}
	if deadline == nil || deadline.Cmp(big.NewInt(time.Now().Unix())) < 0 {
		return ErrExpired
	}
	current := copyOrZero(t.nonces[owner])
	if nonce == nil || nonce.Cmp(current) != 0 {
		return fmt.Errorf("%w: expected %s", ErrNonceMismatch, current)
	}

	digest, err := eip712.AuthorizationDigest(t.domainLocked(), primaryType, eip712.Authorization{
		Owner:    owner,
		Spender:  spender,
		Value:    value,
		Nonce:    nonce,
		Deadline: deadline,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	signer, err := eip712.Recover(digest, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if signer != owner {
		return fmt.Errorf("%w: recovered %s, want %s", ErrInvalidSignature, signer.Hex(), owner.Hex())
	}
	return nil
}

func (t *Token) domainLocked() eip712.Domain {
	return eip712.Domain{
		Name:              t.name,
		Version:           "1",
		ChainID:           new(big.Int).Set(t.chainID),
		VerifyingContract: t.address,
	}
}

func (t *Token) consumeNonce(owner common.Address) {
	n, ok := t.nonces[owner]
	if !ok {
		n = new(big.Int)
		t.nonces[owner] = n
	}
	n.Add(n, big.NewInt(1))
}

// ForwardedTransfer executes a relayed transfer as the named principal.
// Only a registered trusted forwarder may call. The fee-bearing transfer
// and the flat gasless base fee owed to the relay operator settle
// atomically: if the principal cannot cover both, nothing moves.
func (t *Token) ForwardedTransfer(forwarder, from, to common.Address, amount *big.Int, operator common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.trustedForwarders[forwarder] {
		return ErrForwardingNotTrusted
	}
	if err := validAmount(amount); err != nil {
		return err
	}

	basefee := new(big.Int).Set(t.gaslessBasefee)
	total := new(big.Int).Add(amount, basefee)
	if t.balance(from).Cmp(total) < 0 {
		return fmt.Errorf("%w: forwarded transfer of %s plus base fee %s from %s", ErrInsufficientBalance, amount, basefee, from.Hex())
	}

	if err := t.transferLocked(from, to, amount); err != nil {
		return err
	}
	if basefee.Sign() > 0 {
		t.debit(from, basefee)
		t.credit(operator, basefee)
		t.logger.Info("Gasless base fee settled",
			zap.String("from", from.Hex()),
			zap.String("operator", operator.Hex()),
			zap.String("fee", basefee.String()),
		)
	}
	return nil
}
