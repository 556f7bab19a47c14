// Package testutil provides key generation and digest signing helpers for
// exercising the signed-authorization paths in tests.
package testutil

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/eurum-fi/eurum/eip712"
)

// Account pairs a secp256k1 key with its derived address.
type Account struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// NewAccount generates a fresh signing account.
func NewAccount(t *testing.T) Account {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return Account{Key: key, Address: crypto.PubkeyToAddress(key.PublicKey)}
}

// SignDigest produces an r||s||v signature over a 32-byte digest, with v in
// the legacy 27/28 form wallets emit.
func SignDigest(t *testing.T, acc Account, digest []byte) []byte {
	t.Helper()
	sig, err := crypto.Sign(digest, acc.Key)
	if err != nil {
		t.Fatalf("failed to sign digest: %v", err)
	}
	sig[64] += 27
	return sig
}

// SignAuthorization builds and signs a permit or transfer-with-authorization
// message under the given domain.
func SignAuthorization(t *testing.T, acc Account, domain eip712.Domain, primaryType string, auth eip712.Authorization) []byte {
	t.Helper()
	digest, err := eip712.AuthorizationDigest(domain, primaryType, auth)
	if err != nil {
		t.Fatalf("failed to build authorization digest: %v", err)
	}
	return SignDigest(t, acc, digest)
}

// SignForwardRequest signs a forward request against a relay's registered
// domain separator and type hash.
func SignForwardRequest(t *testing.T, acc Account, domainSeparator, typeHash common.Hash, req eip712.ForwardRequest, suffixData []byte) []byte {
	t.Helper()
	digest := eip712.ForwardRequestDigest(domainSeparator, typeHash, req, suffixData)
	return SignDigest(t, acc, digest)
}
