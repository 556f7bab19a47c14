package ledger_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurum-fi/eurum/eip712"
	"github.com/eurum-fi/eurum/ledger"
	"github.com/eurum-fi/eurum/testutil"
)

func futureDeadline() *big.Int {
	return big.NewInt(time.Now().Add(time.Hour).Unix())
}

func TestToken_Permit(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(250),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	require.NoError(t, token.Permit(signer.Address, bob, big.NewInt(250), big.NewInt(0), deadline, sig))
	assert.Equal(t, big.NewInt(250), token.Allowance(signer.Address, bob))
	assert.Equal(t, big.NewInt(1), token.Nonce(signer.Address))
}

func TestToken_Permit_Replay(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(250),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	require.NoError(t, token.Permit(signer.Address, bob, big.NewInt(250), big.NewInt(0), deadline, sig))

	// the consumed nonce makes the identical payload unusable
	err := token.Permit(signer.Address, bob, big.NewInt(250), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrNonceMismatch)
}

func TestToken_Permit_Expired(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)

	deadline := big.NewInt(time.Now().Add(-time.Minute).Unix())
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(250),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	err := token.Permit(signer.Address, bob, big.NewInt(250), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrExpired)
	assert.Equal(t, big.NewInt(0), token.Nonce(signer.Address))
}

func TestToken_Permit_WrongSigner(t *testing.T) {
	token := newTestToken(t)
	claimed := testutil.NewAccount(t)
	actual := testutil.NewAccount(t)

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, actual, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    claimed.Address,
		Spender:  bob,
		Value:    big.NewInt(250),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	err := token.Permit(claimed.Address, bob, big.NewInt(250), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrInvalidSignature)
	assert.Equal(t, big.NewInt(0), token.Allowance(claimed.Address, bob))
}

func TestToken_Permit_TamperedValue(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(250),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	// submitting a different value shifts the digest and the recovered signer
	err := token.Permit(signer.Address, bob, big.NewInt(9999), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrInvalidSignature)
}

func TestToken_TransferWithAuthorization(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)
	require.NoError(t, token.Mint(master, signer.Address, big.NewInt(500)))

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypeTransferWithAuthorization, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(200),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	require.NoError(t, token.TransferWithAuthorization(signer.Address, bob, big.NewInt(200), big.NewInt(0), deadline, sig))
	assert.Equal(t, big.NewInt(300), token.BalanceOf(signer.Address))
	assert.Equal(t, big.NewInt(200), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(1), token.Nonce(signer.Address))
}

func TestToken_TransferWithAuthorization_SchemasNotInterchangeable(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)
	require.NoError(t, token.Mint(master, signer.Address, big.NewInt(500)))

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(200),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	// a permit signature must not authorize a transfer
	err := token.TransferWithAuthorization(signer.Address, bob, big.NewInt(200), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrInvalidSignature)
}

func TestToken_TransferWithAuthorization_FeeApplies(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)
	require.NoError(t, token.Mint(master, signer.Address, big.NewInt(500)))
	require.NoError(t, token.SetFeeFaucet(admin, faucet))
	require.NoError(t, token.SetTxFeeRate(admin, big.NewInt(1000)))

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypeTransferWithAuthorization, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(100),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	require.NoError(t, token.TransferWithAuthorization(signer.Address, bob, big.NewInt(100), big.NewInt(0), deadline, sig))
	assert.Equal(t, big.NewInt(90), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(10), token.BalanceOf(faucet))
}

func TestToken_Permit_BlacklistedParties(t *testing.T) {
	token := newTestToken(t)
	signer := testutil.NewAccount(t)
	require.NoError(t, token.Blacklist(admin, bob))

	deadline := futureDeadline()
	sig := testutil.SignAuthorization(t, signer, token.Domain(), eip712.TypePermit, eip712.Authorization{
		Owner:    signer.Address,
		Spender:  bob,
		Value:    big.NewInt(10),
		Nonce:    big.NewInt(0),
		Deadline: deadline,
	})

	err := token.Permit(signer.Address, bob, big.NewInt(10), big.NewInt(0), deadline, sig)
	assert.ErrorIs(t, err, ledger.ErrBlacklisted)
}

func TestToken_ForwardedTransfer_UntrustedRelay(t *testing.T) {
	token := newTestToken(t)
	relay := common.HexToAddress("0x5000000000000000000000000000000000000001")
	operator := common.HexToAddress("0x5000000000000000000000000000000000000002")

	err := token.ForwardedTransfer(relay, alice, bob, big.NewInt(10), operator)
	assert.ErrorIs(t, err, ledger.ErrForwardingNotTrusted)
}

func TestToken_ForwardedTransfer_SettlesBasefee(t *testing.T) {
	token := newTestToken(t)
	relay := common.HexToAddress("0x5000000000000000000000000000000000000001")
	operator := common.HexToAddress("0x5000000000000000000000000000000000000002")
	require.NoError(t, token.SetTrustedForwarder(admin, relay))
	require.NoError(t, token.SetGaslessBasefee(admin, big.NewInt(5)))

	require.NoError(t, token.ForwardedTransfer(relay, alice, bob, big.NewInt(100), operator))
	assert.Equal(t, big.NewInt(895), token.BalanceOf(alice))
	assert.Equal(t, big.NewInt(100), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(5), token.BalanceOf(operator))
}

func TestToken_ForwardedTransfer_AtomicWithBasefee(t *testing.T) {
	token := newTestToken(t)
	relay := common.HexToAddress("0x5000000000000000000000000000000000000001")
	operator := common.HexToAddress("0x5000000000000000000000000000000000000002")
	require.NoError(t, token.SetTrustedForwarder(admin, relay))
	require.NoError(t, token.SetGaslessBasefee(admin, big.NewInt(5)))

	// alice can cover the transfer but not the transfer plus base fee;
	// nothing moves
	err := token.ForwardedTransfer(relay, alice, bob, big.NewInt(998), operator)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Equal(t, big.NewInt(1000), token.BalanceOf(alice))
	assert.Equal(t, big.NewInt(0), token.BalanceOf(bob))
	assert.Equal(t, big.NewInt(0), token.BalanceOf(operator))
}
