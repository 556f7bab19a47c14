package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurum-fi/eurum/ledger"
)

func TestToken_Mint_MasterUncapped(t *testing.T) {
	token := newTestToken(t)

	require.NoError(t, token.Mint(master, bob, big.NewInt(1_000_000)))
	assert.Equal(t, big.NewInt(1_000_000), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(1_001_000), token.TotalSupply())
}

func TestToken_Mint_IssuerSpendsAllowance(t *testing.T) {
	token := newTestToken(t)

	require.NoError(t, token.Mint(issuer, bob, big.NewInt(300)))
	assert.Equal(t, big.NewInt(300), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(200), token.MinterAllowance(issuer))

	err := token.Mint(issuer, bob, big.NewInt(201))
	assert.ErrorIs(t, err, ledger.ErrAllowanceExceeded)
	assert.Equal(t, big.NewInt(200), token.MinterAllowance(issuer))
}

func TestToken_Mint_Unauthorized(t *testing.T) {
	token := newTestToken(t)

	for _, caller := range []struct {
		name string
		addr common.Address
	}{
		{"owner", owner},
		{"admin", admin},
		{"plain account", alice},
	} {
		err := token.Mint(caller.addr, bob, big.NewInt(1))
		assert.ErrorIs(t, err, ledger.ErrUnauthorized, caller.name)
	}
}

func TestToken_Mint_SuspendedBySafetySwitch(t *testing.T) {
	token := newTestToken(t)
	require.NoError(t, token.SafetySwitch(controller))

	err := token.Mint(master, bob, big.NewInt(1))
	assert.ErrorIs(t, err, ledger.ErrOperationsSuspended)

	err = token.Burn(master, big.NewInt(1))
	assert.ErrorIs(t, err, ledger.ErrOperationsSuspended)

	// transfers are not gated by the safety switch
	assert.NoError(t, token.Transfer(alice, bob, big.NewInt(1)))
}

func TestToken_Burn_RestoresIssuerAllowance(t *testing.T) {
	token := newTestToken(t)
	require.NoError(t, token.Mint(issuer, issuer, big.NewInt(400)))
	require.Equal(t, big.NewInt(100), token.MinterAllowance(issuer))

	require.NoError(t, token.Burn(issuer, big.NewInt(150)))
	assert.Equal(t, big.NewInt(250), token.BalanceOf(issuer))
	assert.Equal(t, big.NewInt(250), token.MinterAllowance(issuer))
	assert.Equal(t, big.NewInt(1250), token.TotalSupply())
}

func TestToken_Burn_MasterNoAllowanceBookkeeping(t *testing.T) {
	token := newTestToken(t)
	require.NoError(t, token.Mint(master, master, big.NewInt(500)))

	require.NoError(t, token.Burn(master, big.NewInt(200)))
	assert.Equal(t, big.NewInt(300), token.BalanceOf(master))
	assert.Equal(t, big.NewInt(1300), token.TotalSupply())
}

func TestToken_Burn_RequiresIssuerRole(t *testing.T) {
	token := newTestToken(t)

	err := token.Burn(alice, big.NewInt(10))
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	assert.Equal(t, big.NewInt(1000), token.BalanceOf(alice))
}

func TestToken_Burn_InsufficientBalance(t *testing.T) {
	token := newTestToken(t)

	err := token.Burn(issuer, big.NewInt(1))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
}

func TestToken_MinterManagement(t *testing.T) {
	token := newTestToken(t)

	err := token.AddMinter(owner, bob, big.NewInt(100))
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)

	require.NoError(t, token.AddMinter(master, bob, big.NewInt(100)))
	assert.True(t, token.HasRole(ledger.RoleIssuer, bob))
	assert.Equal(t, big.NewInt(100), token.MinterAllowance(bob))

	require.NoError(t, token.UpdateMintingAllowance(master, bob, big.NewInt(42)))
	assert.Equal(t, big.NewInt(42), token.MinterAllowance(bob))

	err = token.UpdateMintingAllowance(master, carol, big.NewInt(1))
	assert.ErrorIs(t, err, ledger.ErrInvalidRoleTransition)

	require.NoError(t, token.RemoveMinter(master, bob))
	assert.False(t, token.HasRole(ledger.RoleIssuer, bob))
	assert.Equal(t, big.NewInt(0), token.MinterAllowance(bob))
}

func TestToken_SupplyConservation(t *testing.T) {
	token := newTestToken(t)
	require.NoError(t, token.SetFeeFaucet(admin, faucet))
	require.NoError(t, token.SetTxFeeRate(admin, big.NewInt(250)))

	require.NoError(t, token.Mint(issuer, bob, big.NewInt(500)))
	require.NoError(t, token.Transfer(alice, bob, big.NewInt(400)))
	require.NoError(t, token.Transfer(bob, carol, big.NewInt(123)))
	require.NoError(t, token.Mint(issuer, issuer, big.NewInt(0)))
	require.NoError(t, token.Burn(issuer, big.NewInt(0)))

	sum := new(big.Int)
	for _, addr := range []common.Address{alice, bob, carol, issuer, faucet} {
		sum.Add(sum, token.BalanceOf(addr))
	}
	assert.Equal(t, token.TotalSupply(), sum)
}
