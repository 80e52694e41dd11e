package database

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/minichain/blockchain/foundation/blockchain/signature"
)

// Tx is the transactional information between two parties. The declared
// field order is the canonical serialization (version 1) used both for
// signing and verification and must not change.
type Tx struct {
	FromID    Sender    `json:"from"`      // Sender being debited, or the mint.
	ToID      AccountID `json:"to"`        // Account receiving the value.
	Value     float64   `json:"value"`     // Amount being transferred.
	TimeStamp uint64    `json:"timestamp"` // The time the transaction was created.
}

// NewTx constructs a new transaction stamped with the current time. The
// value is not range checked here; the ledger checks non-negativity when
// the transaction is submitted.
func NewTx(from Sender, to AccountID, value float64) (Tx, error) {
	if !from.IsMint() && !from.AccountID().IsAccountID() {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}

	if !to.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	tx := Tx{
		FromID:    from,
		ToID:      to,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// Sign uses the specified private key to sign the transaction. The caller
// must use the key belonging to the from account; a mismatch is not checked
// here but will fail signature verification.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {
	sig, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, fmt.Errorf("signing transaction: %w", err)
	}

	signedTx := SignedTx{
		Tx:  tx,
		Sig: sig,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how clients
// provide transactions for inclusion into the blockchain. Mint transactions
// carry no signature.
type SignedTx struct {
	Tx
	Sig string `json:"sig"`
}

// NewRewardTx constructs the mint transaction crediting the miner of a
// block with the configured reward.
func NewRewardTx(beneficiaryID AccountID, reward float64) (SignedTx, error) {
	tx, err := NewTx(Mint(), beneficiaryID, reward)
	if err != nil {
		return SignedTx{}, err
	}

	return SignedTx{Tx: tx}, nil
}

// Validate verifies the transaction is authorized. Mint transactions are
// valid unconditionally. Any other transaction must carry a signature that
// verifies against the sender's public key over the canonical content.
// Malformed key or signature material reports ErrInvalidSignature rather
// than escaping as a separate failure.
func (tx SignedTx) Validate() error {
	if tx.FromID.IsMint() {
		return nil
	}

	if tx.Sig == "" {
		return ErrMissingSignature
	}

	if !signature.Verify(tx.Tx, string(tx.FromID.AccountID()), tx.Sig) {
		return ErrInvalidSignature
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	from := tx.FromID.String()
	if len(from) > 8 {
		from = from[:8]
	}

	to := string(tx.ToID)
	if len(to) > 8 {
		to = to[:8]
	}

	return fmt.Sprintf("%s:%s:%v", from, to, tx.Value)
}
