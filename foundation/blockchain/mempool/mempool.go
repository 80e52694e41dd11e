// Package mempool maintains the pool of transactions waiting to be mined
// into the next block.
package mempool

import (
	"sync"

	"github.com/minichain/blockchain/foundation/blockchain/database"
)

// Mempool represents the pending transactions in insertion order. Order is
// part of the hashed block content, so it is preserved exactly as
// transactions were accepted.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.SignedTx
}

// New constructs a new mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool.
func (mp *Mempool) Append(tx database.SignedTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns the transactions in the pool in insertion order.
func (mp *Mempool) Copy() []database.SignedTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.SignedTx, len(mp.pool))
	copy(txs, mp.pool)

	return txs
}
