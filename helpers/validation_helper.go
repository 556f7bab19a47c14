package helpers

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseAddress validates and decodes a 0x-prefixed 20-byte hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// ParseAmount decodes a non-negative base-10 integer amount.
func ParseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// ParseSignature assembles a 65-byte r||s||v signature from its hex-encoded
// components. v may be given as 0/1 or 27/28.
func ParseSignature(r, s string, v uint8) ([]byte, error) {
	rBytes, err := hexutil.Decode(r)
	if err != nil || len(rBytes) != 32 {
		return nil, fmt.Errorf("invalid signature component r")
	}
	sBytes, err := hexutil.Decode(s)
	if err != nil || len(sBytes) != 32 {
		return nil, fmt.Errorf("invalid signature component s")
	}
	sig := make([]byte, 0, 65)
	sig = append(sig, rBytes...)
	sig = append(sig, sBytes...)
	sig = append(sig, v)
	return sig, nil
}
