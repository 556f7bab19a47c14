package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// Role identifies one of the five governance roles.
type Role string

const (
	RoleOwner         Role = "OWNER"
	RoleAdministrator Role = "ADMIN"
	RoleMasterIssuer  Role = "MASTER_ISSUER"
	RoleIssuer        Role = "ISSUER"
	RoleController    Role = "CONTROLLER"
)

var zeroAddress common.Address

// HasRole reports whether addr currently holds the given role.
func (t *Token) HasRole(role Role, addr common.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	switch role {
	case RoleOwner:
		return addr == t.owner
	case RoleAdministrator:
		return addr == t.admin
	case RoleMasterIssuer:
		return addr == t.masterIssuer
	case RoleIssuer:
		_, ok := t.issuerAllowances[addr]
		return ok
	case RoleController:
		return t.controllers[addr]
	default:
		return false
	}
}

// SetOwner transfers ownership. Only the current owner may call; the new
// owner must be a fresh, non-zero address.
func (t *Token) SetOwner(caller, newOwner common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrUnauthorized
	}
	if newOwner == zeroAddress || newOwner == t.owner {
		return ErrInvalidRoleTransition
	}
	previous := t.owner
	t.owner = newOwner
	t.logger.Info("Owner role transferred",
		zap.String("previous", previous.Hex()),
		zap.String("new", newOwner.Hex()),
	)
	return nil
}

// SetAdministrator appoints the administrator. Owner only.
func (t *Token) SetAdministrator(caller, newAdmin common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrUnauthorized
	}
	if newAdmin == zeroAddress || newAdmin == t.admin {
		return ErrInvalidRoleTransition
	}
	previous := t.admin
	t.admin = newAdmin
	t.logger.Info("Administrator role transferred",
		zap.String("previous", previous.Hex()),
		zap.String("new", newAdmin.Hex()),
	)
	return nil
}

// SetMasterIssuer appoints the master issuer. Owner only. The outgoing
// holder loses its uncapped minting ability with the role; allowances it
// delegated to issuers remain until explicitly removed.
func (t *Token) SetMasterIssuer(caller, newMasterIssuer common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrUnauthorized
	}
	if newMasterIssuer == zeroAddress || newMasterIssuer == t.masterIssuer {
		return ErrInvalidRoleTransition
	}
	previous := t.masterIssuer
	t.masterIssuer = newMasterIssuer
	if previous != zeroAddress {
		t.logger.Info("Minter allowance updated",
			zap.String("minter", previous.Hex()),
			zap.String("allowance", "0"),
		)
	}
	t.logger.Info("Master issuer role transferred",
		zap.String("previous", previous.Hex()),
		zap.String("new", newMasterIssuer.Hex()),
	)
	return nil
}

// GrantRole adds addr to a multi-member role set. Owner only. Only the
// Controller set is open to enumeration this way; singleton roles move
// through their dedicated setters and the Issuer set through AddMinter.
func (t *Token) GrantRole(caller common.Address, role Role, addr common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrUnauthorized
	}
	if role != RoleController {
		return fmt.Errorf("%w: role %s is not grantable", ErrInvalidRoleTransition, role)
	}
	if addr == zeroAddress {
		return ErrInvalidRoleTransition
	}
	t.controllers[addr] = true
	t.logger.Info("Role granted",
		zap.String("role", string(role)),
		zap.String("address", addr.Hex()),
	)
	return nil
}

// RevokeRole removes addr from a multi-member role set. Owner only.
func (t *Token) RevokeRole(caller common.Address, role Role, addr common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if caller != t.owner {
		return ErrUnauthorized
	}
	if role != RoleController {
		return fmt.Errorf("%w: role %s is not revocable", ErrInvalidRoleTransition, role)
	}
	delete(t.controllers, addr)
	t.logger.Info("Role revoked",
		zap.String("role", string(role)),
		zap.String("address", addr.Hex()),
	)
	return nil
}

// SafetySwitch flips the operating flag. Any controller (or the owner) may
// engage it; while engaged, only the controller that flipped it off or the
// owner may flip it back on. Mint and burn are blocked while engaged.
func (t *Token) SafetySwitch(caller common.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.controllers[caller] && caller != t.owner {
		return ErrUnauthorized
	}
	if t.operating {
		t.operating = false
		t.lockedBy = caller
		t.logger.Warn("Safety switch engaged, issuance suspended",
			zap.String("locked_by", caller.Hex()),
		)
		return nil
	}
	if caller != t.lockedBy && caller != t.owner {
		return ErrNotAuthorizedToResume
	}
	t.operating = true
	t.lockedBy = zeroAddress
	t.logger.Info("Safety switch released, issuance resumed",
		zap.String("released_by", caller.Hex()),
	)
	return nil
}
