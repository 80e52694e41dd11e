// Package signature provides helper functions for handling the blockchain
// signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It anchors the genesis block's
// previous-hash linkage.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Lengths of the hex encoded key material this chain works with. The public
// key is the raw 64 byte curve point (X||Y) without the 0x04 prefix.
const (
	PrivateKeyHexLength = 64
	PublicKeyHexLength  = 128
	SignatureHexLength  = 130
)

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Sign uses the specified private key to sign the value and returns the
// hex encoding of the 65 byte [R|S|V] signature. An error here represents
// a key or library failure, never an invalid-signature outcome.
func Sign(value any, privateKey *ecdsa.PrivateKey) (string, error) {

	// Prepare the data for signing.
	data, err := stamp(value)
	if err != nil {
		return "", err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(sig), nil
}

// Verify reports whether the hex encoded signature was produced over the
// value by the holder of the specified public key. Malformed keys, malformed
// signatures and failed verifications all report false. Verification never
// produces an error for the caller to mishandle.
func Verify(value any, publicKey string, sig string) bool {
	data, err := stamp(value)
	if err != nil {
		return false
	}

	pub, err := PublicKeyBytes(publicKey)
	if err != nil {
		return false
	}

	sigBytes, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	if len(sigBytes) != crypto.SignatureLength {
		return false
	}

	// VerifySignature expects the signature without the recovery id.
	return crypto.VerifySignature(pub, data, sigBytes[:crypto.RecoveryIDOffset])
}

// =============================================================================

// PublicKeyHex converts a public key to the raw 64 byte point in hex.
func PublicKeyHex(publicKey *ecdsa.PublicKey) string {
	return hex.EncodeToString(crypto.FromECDSAPub(publicKey)[1:])
}

// PublicKeyBytes converts the raw hex encoding of a public key back to the
// 65 byte uncompressed form the crypto package expects. The key is parsed
// to confirm it describes a point on the curve.
func PublicKeyBytes(publicKey string) ([]byte, error) {
	if len(publicKey) != PublicKeyHexLength {
		return nil, errors.New("wrong public key length")
	}

	raw, err := hex.DecodeString(publicKey)
	if err != nil {
		return nil, err
	}

	// Re-attach the uncompressed point prefix.
	pub := append([]byte{0x04}, raw...)

	if _, err := crypto.UnmarshalPubkey(pub); err != nil {
		return nil, err
	}

	return pub, nil
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this value with a chain
// specific stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {

	// Marshal the value. The canonical encoding is the JSON of the value
	// with its declared field order.
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Hash the value into a 32 byte array. This will provide a data
	// length consistency with all signed data.
	txHash := crypto.Keccak256(v)

	// This stamp is used so signatures produced when signing data are
	// always unique to this blockchain.
	stamp := []byte("\x19Minichain Signed Message:\n32")

	// Hash the stamp and txHash together in a final 32 byte array that
	// represents the value.
	data := crypto.Keccak256(stamp, txHash)

	return data, nil
}
