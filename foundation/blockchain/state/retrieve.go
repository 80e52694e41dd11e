package state

import (
	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/genesis"
)

// Genesis returns a copy of the chain parameters.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// LatestBlock returns the current chain tip.
func (s *State) LatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.LatestBlock()
}

// RetrieveBlocks returns the chain in order, genesis first.
func (s *State) RetrieveBlocks() []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Blocks()
}

// QueryMempoolLength returns the current number of pending transactions.
func (s *State) QueryMempoolLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Count()
}

// MempoolCopy returns the pending transactions in insertion order.
func (s *State) MempoolCopy() []database.SignedTx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}
