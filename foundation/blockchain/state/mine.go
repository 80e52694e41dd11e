package state

import (
	"context"

	"github.com/minichain/blockchain/foundation/blockchain/database"
)

// MineNewBlock seals all pending transactions plus a reward transaction for
// the beneficiary into a new block and appends it to the chain. The pool is
// cleared in the same critical section, so no other transaction can join
// the in-flight block and no reader can observe the block without the pool
// cleared. ErrNoTransactions is returned for an empty pool.
func (s *State) MineNewBlock(ctx context.Context, beneficiaryID database.AccountID) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// The reward joins the pending set so the miner is paid by the block
	// they seal.
	rewardTx, err := database.NewRewardTx(beneficiaryID, s.genesis.MiningReward)
	if err != nil {
		return database.Block{}, err
	}
	trans := append(s.mempool.Copy(), rewardTx)

	s.evHandler("state: MineNewBlock: MINING: perform POW: txs[%d]", len(trans))

	// Attempt to create a new block by solving the POW puzzle. This can
	// be cancelled through the context.
	block, err := database.POW(ctx, s.genesis.Difficulty, s.db.LatestBlock(), trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state: blk[%d]", block.Header.Number)

	s.db.Write(block)
	s.mempool.Truncate()

	return block, nil
}
