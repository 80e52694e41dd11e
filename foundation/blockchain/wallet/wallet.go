// Package wallet maintains the ECDSA key pair that identifies a ledger
// participant. The public key doubles as the participant's address.
package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/blockchain/foundation/blockchain/signature"
)

// Wallet represents a participant identity on the blockchain. The private
// key never leaves this value except through the explicit hex export.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
}

// Generate constructs a wallet with a freshly drawn secp256k1 key pair. An
// error here means the system's source of cryptographically strong
// randomness failed and must be treated as fatal by the caller.
func Generate() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}

	return &Wallet{privateKey: privateKey}, nil
}

// FromPrivateKeyHex reloads a wallet from the 64 character hex export of
// its private scalar.
func FromPrivateKeyHex(privateKey string) (*Wallet, error) {
	pk, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	return &Wallet{privateKey: pk}, nil
}

// LoadFromFile reloads a wallet from an ecdsa key file on disk.
func LoadFromFile(path string) (*Wallet, error) {
	pk, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("loading key file: %w", err)
	}

	return &Wallet{privateKey: pk}, nil
}

// SaveToFile writes the private key to an ecdsa key file on disk.
func (w *Wallet) SaveToFile(path string) error {
	return crypto.SaveECDSA(path, w.privateKey)
}

// =============================================================================

// PrivateKeyHex exports the private scalar as a 64 character hex string.
func (w *Wallet) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(w.privateKey))
}

// PublicKeyHex exports the public point as a 128 character hex string. This
// value is the wallet's address on the chain.
func (w *Wallet) PublicKeyHex() string {
	return signature.PublicKeyHex(&w.privateKey.PublicKey)
}

// ECDSA returns the underlying key for signing operations.
func (w *Wallet) ECDSA() *ecdsa.PrivateKey {
	return w.privateKey
}
