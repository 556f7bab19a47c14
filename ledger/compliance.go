package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Blacklist bars addr from sending or receiving in every transfer path,
// including signed authorizations and forwarded calls. Administrator only.
func (t *Token) Blacklist(caller, addr common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	t.blacklisted[addr] = true
	t.logger.Warn("Address blacklisted", zap.String("address", addr.Hex()))
	return nil
}

// Unblacklist lifts the bar on addr. Administrator only.
func (t *Token) Unblacklist(caller, addr common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	delete(t.blacklisted, addr)
	t.logger.Info("Address unblacklisted", zap.String("address", addr.Hex()))
	return nil
}

// Pause halts every balance-mutating entry point except ForceTransfer.
// Administrator only.
func (t *Token) Pause(caller common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	t.paused = true
	t.logger.Warn("Token paused", zap.String("by", caller.Hex()))
	return nil
}

// Unpause lifts the global pause. Administrator only.
func (t *Token) Unpause(caller common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	t.paused = false
	t.logger.Info("Token unpaused", zap.String("by", caller.Hex()))
	return nil
}

// ForceTransfer moves amount from one account to another without consulting
// allowances, the blacklist or the pause flag. It is the administrative
// remediation path for stuck or seized funds and is fee-exempt.
func (t *Token) ForceTransfer(caller, from, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.admin {
		return ErrUnauthorized
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	if t.balance(from).Cmp(amount) < 0 {
		return fmt.Errorf("%w: force transfer of %s from %s", ErrInsufficientBalance, amount, from.Hex())
	}
	t.debit(from, amount)
	t.credit(to, amount)
	t.logger.Warn("Forced transfer executed",
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
	)
	return nil
}
