package ethutil

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// NativeDecimals is the number of decimals of the chain's native unit.
const NativeDecimals = 9

// GeneratePrivateKey derives a keypair from the secret and nonce. The same
// inputs always yield the same key.
func GeneratePrivateKey(secret, nonce []byte) (*ecdsa.PrivateKey, error) {
	seed := sha256.Sum256(append(secret, nonce...))
	return ethcrypto.ToECDSA(seed[:])
}

func GeneratePublicKey(secret, nonce []byte) (common.Address, error) {
	walletPrivateKey, err := GeneratePrivateKey(secret, nonce)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(walletPrivateKey.PublicKey), nil
}

// ToSmallestUnit converts an amount of the native unit into the chain's
// smallest denomination. The fractional part beyond NativeDecimals is
// truncated.
func ToSmallestUnit(amount float64) *big.Int {
	scaled := new(big.Float).Mul(
		big.NewFloat(amount),
		new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(NativeDecimals), nil)),
	)

	result, _ := scaled.Int(nil)
	return result
}
