package ledger

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethmath "github.com/ethereum/go-ethereum/common/math"
	"go.uber.org/zap"

	"github.com/eurum-fi/eurum/eip712"
	"github.com/eurum-fi/eurum/logger"
)

// FeeRatio is the denominator for the transfer fee rate: rates are
// expressed in parts per 10000 (basis points).
const FeeRatio = 10000

// Config carries the immutable identity of a token instance. ChainID and
// Address bind authorization signatures to this deployment.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8
	ChainID  *big.Int
	Address  common.Address
	Owner    common.Address
}

// Token is the aggregate root: it exclusively owns every balance,
// allowance, nonce, role and fee sub-map. All entry points identify the
// caller explicitly and evaluate role guards before touching state. A
// single mutex serializes writers, matching the one-writer-at-a-time
// execution model of the ledger.
type Token struct {
	mu sync.RWMutex

	name     string
	symbol   string
	decimals uint8
	chainID  *big.Int
	address  common.Address

	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	nonces      map[common.Address]*big.Int
	totalSupply *big.Int

	owner        common.Address
	admin        common.Address
	masterIssuer common.Address
	controllers  map[common.Address]bool
	// presence in issuerAllowances is what makes an address an issuer
	issuerAllowances map[common.Address]*big.Int

	blacklisted map[common.Address]bool
	paused      bool

	operating bool
	lockedBy  common.Address

	feeFaucet      common.Address
	txFeeRate      *big.Int
	gaslessBasefee *big.Int

	trustedForwarders map[common.Address]bool

	logger *zap.Logger
}

// NewToken creates a token with the given identity. The owner from the
// config holds the Owner role; every other role starts unassigned. The
// safety switch starts in the operating position.
func NewToken(cfg Config) *Token {
	chainID := new(big.Int)
	if cfg.ChainID != nil {
		chainID.Set(cfg.ChainID)
	}
	log := logger.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Token{
		name:              cfg.Name,
		symbol:            cfg.Symbol,
		decimals:          cfg.Decimals,
		chainID:           chainID,
		address:           cfg.Address,
		balances:          make(map[common.Address]*big.Int),
		allowances:        make(map[common.Address]map[common.Address]*big.Int),
		nonces:            make(map[common.Address]*big.Int),
		totalSupply:       new(big.Int),
		owner:             cfg.Owner,
		controllers:       make(map[common.Address]bool),
		issuerAllowances:  make(map[common.Address]*big.Int),
		blacklisted:       make(map[common.Address]bool),
		operating:         true,
		txFeeRate:         new(big.Int),
		gaslessBasefee:    new(big.Int),
		trustedForwarders: make(map[common.Address]bool),
		logger:            log,
	}
}

// Name returns the token name, which is also the EIP-712 domain name.
func (t *Token) Name() string { return t.name }

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.symbol }

// Decimals returns the display precision.
func (t *Token) Decimals() uint8 { return t.decimals }

// Domain returns the EIP-712 domain that permit and
// transfer-with-authorization signatures must be bound to.
func (t *Token) Domain() eip712.Domain {
	return eip712.Domain{
		Name:              t.name,
		Version:           "1",
		ChainID:           new(big.Int).Set(t.chainID),
		VerifyingContract: t.address,
	}
}

// BalanceOf returns the balance of addr. Unreferenced accounts hold zero.
func (t *Token) BalanceOf(addr common.Address) *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyOrZero(t.balances[addr])
}

// Allowance returns the remaining amount spender may transfer from owner.
func (t *Token) Allowance(owner, spender common.Address) *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyOrZero(t.allowances[owner][spender])
}

// TotalSupply returns the sum of all balances.
func (t *Token) TotalSupply() *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(big.Int).Set(t.totalSupply)
}

// Nonce returns the next authorization nonce expected from addr.
func (t *Token) Nonce(addr common.Address) *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyOrZero(t.nonces[addr])
}

// TxFeeRate returns the transfer fee rate in parts per 10000.
func (t *Token) TxFeeRate() *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(big.Int).Set(t.txFeeRate)
}

// GaslessBasefee returns the flat fee debited from a forwarded principal
// to compensate the relay operator.
func (t *Token) GaslessBasefee() *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(big.Int).Set(t.gaslessBasefee)
}

// MinterAllowance returns the remaining minting capacity of an issuer.
// Addresses without the Issuer role report zero.
func (t *Token) MinterAllowance(addr common.Address) *big.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyOrZero(t.issuerAllowances[addr])
}

// IsOperating reports the safety switch position and, while off, the
// controller that engaged it.
func (t *Token) IsOperating() (bool, common.Address) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.operating, t.lockedBy
}

// IsBlacklisted reports whether addr is barred from balance movements.
func (t *Token) IsBlacklisted(addr common.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.blacklisted[addr]
}

// IsTrustedForwarder reports whether the token accepts forwarded calls
// from the given relay.
func (t *Token) IsTrustedForwarder(addr common.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.trustedForwarders[addr]
}

// Paused reports whether the global pause is engaged.
func (t *Token) Paused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.paused
}

// validAmount rejects nil, negative and u256-overflowing quantities.
// Arithmetic in the ledger must fail closed, never wrap.
func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 || amount.Cmp(ethmath.MaxBig256) > 0 {
		return ErrInvalidAmount
	}
	return nil
}

func copyOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// credit adds amount to addr's balance. Callers hold the write lock and
// have already validated the amount.
func (t *Token) credit(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	bal, ok := t.balances[addr]
	if !ok {
		bal = new(big.Int)
		t.balances[addr] = bal
	}
	bal.Add(bal, amount)
}

// debit removes amount from addr's balance, which callers have already
// checked covers it.
func (t *Token) debit(addr common.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	bal := t.balances[addr]
	bal.Sub(bal, amount)
}

func (t *Token) balance(addr common.Address) *big.Int {
	if bal, ok := t.balances[addr]; ok {
		return bal
	}
	return new(big.Int)
}
