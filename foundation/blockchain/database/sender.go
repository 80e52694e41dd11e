package database

import (
	"encoding/json"
	"fmt"
)

// mintLiteral is the serialized form of the mint sender. It can never
// collide with an account id, which is always 128 hex characters.
const mintLiteral = "MINT"

// Sender identifies who is debited by a transaction. It is either the mint,
// which funds mining rewards and requires no signature, or the account whose
// key must have signed the transaction. The tagged form keeps reward
// transactions structurally distinct from user transactions.
type Sender struct {
	accountID AccountID
	mint      bool
}

// Mint constructs the reserved sender used for reward transactions.
func Mint() Sender {
	return Sender{mint: true}
}

// Account constructs a sender for the specified account.
func Account(accountID AccountID) Sender {
	return Sender{accountID: accountID}
}

// IsMint reports whether this sender is the mint.
func (s Sender) IsMint() bool {
	return s.mint
}

// AccountID returns the account being debited. It is the empty value when
// the sender is the mint.
func (s Sender) AccountID() AccountID {
	return s.accountID
}

// String implements the fmt.Stringer interface and returns the canonical
// serialized form of the sender.
func (s Sender) String() string {
	if s.mint {
		return mintLiteral
	}
	return string(s.accountID)
}

// =============================================================================

// MarshalJSON implements the json.Marshaler interface so the sender's
// canonical form is stable for signing and hashing.
func (s Sender) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Anything that is
// neither the mint literal nor a well-formed account id is rejected.
func (s *Sender) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == mintLiteral {
		*s = Mint()
		return nil
	}

	accountID, err := ToAccountID(str)
	if err != nil {
		return fmt.Errorf("sender %q: %w", str, err)
	}

	*s = Account(accountID)
	return nil
}
