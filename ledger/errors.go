package ledger

import "errors"

// Failure taxonomy shared by every entry point. Callers match with
// errors.Is; wrapped variants carry contextual detail.
var (
	// ErrUnauthorized is returned when the caller lacks the role required
	// by the entry point.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")

	// ErrInsufficientBalance is returned when a debit exceeds the account balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAllowanceExceeded covers both spending allowances and issuer
	// minting allowances.
	ErrAllowanceExceeded = errors.New("allowance exceeded")

	// ErrBlacklisted is returned when either side of a balance movement is
	// blacklisted.
	ErrBlacklisted = errors.New("address is blacklisted")

	// ErrPaused is returned while the global pause is engaged.
	ErrPaused = errors.New("token transfers are paused")

	// ErrOperationsSuspended is returned for mint/burn while the safety
	// switch is off.
	ErrOperationsSuspended = errors.New("issuance operations are suspended")

	// ErrNotAuthorizedToResume is returned when a controller other than the
	// one that engaged the safety switch tries to release it.
	ErrNotAuthorizedToResume = errors.New("only the engaging controller or the owner may resume operations")

	// ErrInvalidSignature is returned when the recovered signer does not
	// match the claimed principal, or the signature is malformed.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrExpired is returned when an authorization deadline has passed.
	ErrExpired = errors.New("authorization expired")

	// ErrNonceMismatch is returned on replayed or out-of-order authorizations.
	ErrNonceMismatch = errors.New("nonce mismatch")

	// ErrForwardingNotTrusted is returned when a relay the token does not
	// recognize attempts a forwarded call.
	ErrForwardingNotTrusted = errors.New("forwarder is not trusted")

	// ErrForwardedCallNotAllowed is returned when forwarded calldata encodes
	// anything other than a plain transfer.
	ErrForwardedCallNotAllowed = errors.New("forwarded call is not allowed")

	// ErrInvalidRoleTransition is returned for no-op or malformed role
	// assignments (current holder, zero address).
	ErrInvalidRoleTransition = errors.New("invalid role transition")

	// ErrInvalidAmount is returned for nil, negative or u256-overflowing
	// quantities.
	ErrInvalidAmount = errors.New("invalid amount")
)
