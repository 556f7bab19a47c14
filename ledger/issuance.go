package ledger

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"go.uber.org/zap"
)

// Mint creates amount new units on the recipient's balance. The master
// issuer mints without a cap; a registered issuer spends its delegated
// allowance. Requires the safety switch in the operating position.
func (t *Token) Mint(caller, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := validAmount(amount); err != nil {
		return err
	}
	if t.paused {
		return ErrPaused
	}
	if !t.operating {
		return ErrOperationsSuspended
	}

	isMaster := caller == t.masterIssuer && caller != zeroAddress
	issuerAllowance, isIssuer := t.issuerAllowances[caller]
	if !isMaster && !isIssuer {
		return fmt.Errorf("%w: mint requires the master issuer or an issuer", ErrUnauthorized)
	}
	if !isMaster {
		if issuerAllowance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: issuer %s minting %s", ErrAllowanceExceeded, caller.Hex(), amount)
		}
	}

	supply := new(big.Int).Add(t.totalSupply, amount)
	if supply.Cmp(ethmath.MaxBig256) > 0 {
		return ErrInvalidAmount
	}

	if !isMaster {
		issuerAllowance.Sub(issuerAllowance, amount)
	}
	t.totalSupply.Set(supply)
	t.credit(to, amount)

	t.logger.Info("Minted",
		zap.String("issuer", caller.Hex()),
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
	)
	return nil
}

// Burn destroys amount units from the caller's own balance. Only the
// master issuer and registered issuers may burn; an issuer's minting
// allowance is restored by the burned amount. Restoration is an
// unconditional addition, clamped only at the u256 ceiling. Requires the
// safety switch in the operating position.
func (t *Token) Burn(caller common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := validAmount(amount); err != nil {
		return err
	}
	if t.paused {
		return ErrPaused
	}
	if !t.operating {
		return ErrOperationsSuspended
	}

	isMaster := caller == t.masterIssuer && caller != zeroAddress
	issuerAllowance, isIssuer := t.issuerAllowances[caller]
	if !isMaster && !isIssuer {
		return fmt.Errorf("%w: burn requires the master issuer or an issuer", ErrUnauthorized)
	}
	if t.balance(caller).Cmp(amount) < 0 {
		return fmt.Errorf("%w: burn of %s by %s", ErrInsufficientBalance, amount, caller.Hex())
	}

	t.debit(caller, amount)
	t.totalSupply.Sub(t.totalSupply, amount)
	if isIssuer {
		issuerAllowance.Add(issuerAllowance, amount)
		if issuerAllowance.Cmp(ethmath.MaxBig256) > 0 {
			issuerAllowance.Set(ethmath.MaxBig256)
		}
	}

	t.logger.Info("Burned",
		zap.String("issuer", caller.Hex()),
		zap.String("amount", amount.String()),
	)
	return nil
}

// AddMinter registers an issuer with the given minting allowance. Master
// issuer only.
func (t *Token) AddMinter(caller, minter common.Address, allowance *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.masterIssuer || caller == zeroAddress {
		return ErrUnauthorized
	}
	if minter == zeroAddress {
		return ErrInvalidRoleTransition
	}
	if err := validAmount(allowance); err != nil {
		return err
	}
	t.issuerAllowances[minter] = new(big.Int).Set(allowance)
	t.logger.Info("Minter added",
		zap.String("minter", minter.Hex()),
		zap.String("allowance", allowance.String()),
	)
	return nil
}

// RemoveMinter revokes the issuer role and zeroes its allowance. Master
// issuer only.
func (t *Token) RemoveMinter(caller, minter common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.masterIssuer || caller == zeroAddress {
		return ErrUnauthorized
	}
	delete(t.issuerAllowances, minter)
	t.logger.Info("Minter removed",
		zap.String("minter", minter.Hex()),
		zap.String("allowance", "0"),
	)
	return nil
}

// UpdateMintingAllowance resets an issuer's remaining allowance. Master
// issuer only; the target must already hold the issuer role.
func (t *Token) UpdateMintingAllowance(caller, minter common.Address, allowance *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.masterIssuer || caller == zeroAddress {
		return ErrUnauthorized
	}
	if err := validAmount(allowance); err != nil {
		return err
	}
	current, ok := t.issuerAllowances[minter]
	if !ok {
		return fmt.Errorf("%w: %s is not an issuer", ErrInvalidRoleTransition, minter.Hex())
	}
	current.Set(allowance)
	t.logger.Info("Minter allowance updated",
		zap.String("minter", minter.Hex()),
		zap.String("allowance", allowance.String()),
	)
	return nil
}
