package state

// Validate checks the full chain for tampering: stored hashes against
// recomputed content, parent linkage, difficulty solutions, and every
// non-mint transaction signature. The returned error, when not nil, is a
// database.ChainError identifying the first offending block.
func (s *State) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Validate(s.evHandler)
}
