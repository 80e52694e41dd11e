package state

import "github.com/minichain/blockchain/foundation/blockchain/database"

// BalanceOf derives the balance for an account by replaying the chain and
// the pending pool. Folding in pending transactions is a deliberate
// conservative policy: a submitted debit reserves its amount immediately so
// the same funds can't be committed twice against one pool. There is no
// drop path for pending transactions, so a reservation is only ever
// released by mining.
func (s *State) BalanceOf(accountID database.AccountID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balanceOf(accountID)
}

// Balances returns the balance of every account seen on the chain or in
// the pending pool.
func (s *State) Balances() map[database.AccountID]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances()
}

// =============================================================================

// balanceOf expects the state lock to be held.
func (s *State) balanceOf(accountID database.AccountID) float64 {
	return s.balances()[accountID]
}

// balances expects the state lock to be held.
func (s *State) balances() map[database.AccountID]float64 {
	balances := s.db.Balances()

	for _, tx := range s.mempool.Copy() {
		if !tx.FromID.IsMint() {
			balances[tx.FromID.AccountID()] -= tx.Value
		}
		balances[tx.ToID] += tx.Value
	}

	return balances
}
