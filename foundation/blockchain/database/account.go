package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/minichain/blockchain/foundation/blockchain/signature"
)

// AccountID represents the address of a ledger participant. It is the hex
// encoding of the raw 64 byte public key point and is used both to receive
// value and to verify transaction signatures.
type AccountID string

// ToAccountID converts a hex-encoded string to an account and validates the
// hex-encoded string is formatted correctly.
func ToAccountID(hex string) (AccountID, error) {
	a := AccountID(hex)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(signature.PublicKeyHex(&pk))
}

// IsAccountID verifies whether the underlying data represents a valid
// hex-encoded account.
func (a AccountID) IsAccountID() bool {
	return len(a) == signature.PublicKeyHexLength && isHex(a)
}

// =============================================================================

// isHex validates whether each byte is a valid hexadecimal character.
func isHex(a AccountID) bool {
	for _, c := range []byte(a) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
