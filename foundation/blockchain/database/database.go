// Package database maintains the chain of blocks in memory and the account
// balance replay logic built on top of it.
package database

import (
	"fmt"
	"sync"

	"github.com/minichain/blockchain/foundation/blockchain/genesis"
)

// Database manages the append-only ordered sequence of blocks, anchored by
// the genesis block. Each Database value is an independent chain so multiple
// chains can coexist in one process.
type Database struct {
	mu sync.RWMutex

	genesis genesis.Genesis
	chain   []Block
}

// New constructs a new database anchored with a genesis block.
func New(genesis genesis.Genesis, evHandler func(v string, args ...any)) (*Database, error) {
	if genesis.MiningReward < 0 {
		return nil, fmt.Errorf("mining reward can't be negative, got %v", genesis.MiningReward)
	}

	db := Database{
		genesis: genesis,
		chain:   []Block{NewGenesisBlock()},
	}

	evHandler("database: New: chain[%s]: genesis[%s]", genesis.ChainID, db.chain[0].BlockHash)

	return &db, nil
}

// Write appends a sealed block to the chain.
func (db *Database) Write(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.chain = append(db.chain, block)
}

// LatestBlock returns the current chain tip.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.chain[len(db.chain)-1]
}

// GetBlock returns the contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.chain)) {
		return Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return db.chain[num], nil
}

// Blocks returns a copy of the chain in order, genesis first.
func (db *Database) Blocks() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.chain))
	copy(blocks, db.chain)

	return blocks
}

// Height returns the number of blocks in the chain including genesis.
func (db *Database) Height() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return uint64(len(db.chain))
}

// =============================================================================

// Balances replays every block's transactions in chain order, starting from
// the genesis seed balances, and returns the balance of every account seen.
func (db *Database) Balances() map[AccountID]float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	balances := make(map[AccountID]float64)
	for accountStr, balance := range db.genesis.Balances {
		balances[AccountID(accountStr)] = balance
	}

	for _, block := range db.chain {
		for _, tx := range block.Trans {
			applyTransaction(balances, tx)
		}
	}

	return balances
}

// applyTransaction folds a single transaction into the balance sheet. The
// mint is never debited, which is how reward value enters the system.
func applyTransaction(balances map[AccountID]float64, tx SignedTx) {
	if !tx.FromID.IsMint() {
		balances[tx.FromID.AccountID()] -= tx.Value
	}
	balances[tx.ToID] += tx.Value
}

// =============================================================================

// Validate checks the chain for tampering. The first offending block is
// identified by a ChainError. No repair is attempted.
func (db *Database) Validate(evHandler func(v string, args ...any)) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return ValidateChain(db.chain, db.genesis.Difficulty, evHandler)
}

// ValidateChain walks an ordered sequence of blocks from the first mined
// block to the tip, checking each block's stored hash against its contents,
// its linkage to its parent, its difficulty solution, and every transaction
// signature. It is a pure function so external stores can re-verify blocks
// they captured.
func ValidateChain(chain []Block, difficulty uint, evHandler func(v string, args ...any)) error {
	if len(chain) == 0 {
		return fmt.Errorf("chain has no genesis block")
	}

	// Genesis is exempt from difficulty but not from tampering: its stored
	// hash still has to match its contents since every later linkage check
	// compares against the stored value.
	if chain[0].Hash() != chain[0].BlockHash {
		return &ChainError{Number: 0, Err: fmt.Errorf("genesis hash doesn't match genesis contents")}
	}

	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], difficulty, evHandler); err != nil {
			return &ChainError{Number: uint64(i), Err: err}
		}
	}

	return nil
}
