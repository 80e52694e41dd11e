package state

import (
	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/validate"
)

// submission is the flattened form of a signed transaction used for field
// validation before any policy checks run.
type submission struct {
	From  string  `json:"from" validate:"required"`
	To    string  `json:"to" validate:"required,len=128,hexadecimal"`
	Value float64 `json:"value" validate:"gte=0"`
}

// SubmitTransaction accepts a signed transaction for inclusion in the next
// block. Failures are distinct, recoverable outcomes: field problems return
// validate.FieldErrors, authorization problems return the database
// signature errors, and overspend returns ErrInsufficientFunds. On any
// failure the transaction does not enter the pool.
func (s *State) SubmitTransaction(signedTx database.SignedTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SubmitTransaction: tx[%s]", signedTx)

	// Reject malformed fields before anything else. The mint literal is a
	// non-empty sender so it passes the presence check.
	sub := submission{
		From:  signedTx.FromID.String(),
		To:    string(signedTx.ToID),
		Value: signedTx.Value,
	}
	if err := validate.Check(sub); err != nil {
		return err
	}

	// Reject transactions whose signature is absent or doesn't verify.
	if err := signedTx.Validate(); err != nil {
		return err
	}

	// Reject overspend for account senders. The balance replays the chain
	// plus the pending pool, so value already committed to a pending
	// transaction can't be spent twice against the same pool.
	if !signedTx.FromID.IsMint() {
		if s.balanceOf(signedTx.FromID.AccountID()) < signedTx.Value {
			return ErrInsufficientFunds
		}
	}

	s.mempool.Append(signedTx)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}
