package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var feeRatio = big.NewInt(FeeRatio)

// Transfer moves amount from the caller to the recipient, deducting the
// configured basis-point fee from the credited side. The caller is debited
// the full amount.
func (t *Token) Transfer(caller, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transferLocked(caller, to, amount)
}

// TransferFrom spends the caller's allowance on the source account. The
// allowance is decremented by the gross debited amount, not the net of fee.
func (t *Token) TransferFrom(caller, from, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := validAmount(amount); err != nil {
		return err
	}
	allowance := t.allowances[from][caller]
	if allowance == nil || allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: spender %s on %s", ErrAllowanceExceeded, caller.Hex(), from.Hex())
	}
	if err := t.transferLocked(from, to, amount); err != nil {
		return err
	}
	allowance.Sub(allowance, amount)
	return nil
}

// Approve sets (overwrites, never increments) the allowance granted by the
// caller to the spender.
func (t *Token) Approve(caller, spender common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := validAmount(amount); err != nil {
		return err
	}
	if t.paused {
		return ErrPaused
	}
	if t.blacklisted[caller] || t.blacklisted[spender] {
		return ErrBlacklisted
	}
	t.approveLocked(caller, spender, amount)
	return nil
}

func (t *Token) approveLocked(owner, spender common.Address, amount *big.Int) {
	inner, ok := t.allowances[owner]
	if !ok {
		inner = make(map[common.Address]*big.Int)
		t.allowances[owner] = inner
	}
	inner[spender] = new(big.Int).Set(amount)
}

// transferLocked is the single arithmetic path every transfer variant
// converges on: direct calls, transferFrom, transfer-with-authorization and
// forwarded transfers. Callers hold the write lock.
func (t *Token) transferLocked(from, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if t.paused {
		return ErrPaused
	}
	if t.blacklisted[from] || t.blacklisted[to] {
		return ErrBlacklisted
	}
	if t.balance(from).Cmp(amount) < 0 {
		return fmt.Errorf("%w: transfer of %s from %s", ErrInsufficientBalance, amount, from.Hex())
	}

	fee := t.transferFee(amount)
	net := new(big.Int).Sub(amount, fee)

	t.debit(from, amount)
	t.credit(to, net)
	if fee.Sign() > 0 {
		t.credit(t.feeFaucet, fee)
	}

	t.logger.Debug("Transfer applied",
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
		zap.String("fee", fee.String()),
	)
	return nil
}

// transferFee computes amount * rate / 10000. With no faucet configured the
// fee is zero and nothing is redirected.
func (t *Token) transferFee(amount *big.Int) *big.Int {
	if t.feeFaucet == zeroAddress || t.txFeeRate.Sign() == 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(amount, t.txFeeRate)
	return fee.Div(fee, feeRatio)
}

// SetFeeFaucet designates the account credited with transfer fees.
// Administrator only.
func (t *Token) SetFeeFaucet(caller, faucet common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	t.feeFaucet = faucet
	t.logger.Info("Fee faucet updated", zap.String("faucet", faucet.Hex()))
	return nil
}

// SetTxFeeRate sets the transfer fee rate in parts per 10000. Rates above
// the ratio would debit more than the transferred amount and are rejected.
// Administrator only.
func (t *Token) SetTxFeeRate(caller common.Address, rate *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	if rate == nil || rate.Sign() < 0 || rate.Cmp(feeRatio) > 0 {
		return ErrInvalidAmount
	}
	t.txFeeRate.Set(rate)
	t.logger.Info("Transfer fee rate updated", zap.String("rate", rate.String()))
	return nil
}

// SetGaslessBasefee sets the flat fee a forwarded principal pays its relay
// operator. Administrator only.
func (t *Token) SetGaslessBasefee(caller common.Address, fee *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	if err := validAmount(fee); err != nil {
		return err
	}
	t.gaslessBasefee.Set(fee)
	t.logger.Info("Gasless base fee updated", zap.String("fee", fee.String()))
	return nil
}

// SetTrustedForwarder registers a relay whose forwarded calls the token
// will execute on behalf of their signers. Administrator only.
func (t *Token) SetTrustedForwarder(caller, forwarder common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	t.trustedForwarders[forwarder] = true
	t.logger.Info("Trusted forwarder updated", zap.String("forwarder", forwarder.Hex()))
	return nil
}
