package state

import "errors"

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transactions in the pool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ErrInsufficientFunds is returned when a sender's replayed balance,
// including pending debits, can't cover the submitted amount. It is kept
// distinct from signature failures so callers can present the right reason.
var ErrInsufficientFunds = errors.New("insufficient funds")
