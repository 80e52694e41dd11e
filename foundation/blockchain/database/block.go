package database

import (
	"context"
	"fmt"
	"time"

	"github.com/minichain/blockchain/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Block number in the chain, 0 for genesis.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was created.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together. A block is not
// sealed until BlockHash holds a hash of its contents that satisfies the
// chain's difficulty.
type Block struct {
	Header    BlockHeader `json:"header"`
	Trans     []SignedTx  `json:"trans"`
	BlockHash string      `json:"block_hash"`
}

// NewGenesisBlock constructs block number zero. Genesis anchors the chain
// with the zero hash as its parent and is exempt from the difficulty
// requirement, but its own hash participates in linkage validation.
func NewGenesisBlock() Block {
	b := Block{
		Header: BlockHeader{
			Number:        0,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			PrevBlockHash: signature.ZeroHash,
			Nonce:         0,
		},
	}
	b.BlockHash = b.Hash()

	return b
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle. The search is unbounded by design;
// the context is the caller's hook for bounding or cancelling it.
func POW(ctx context.Context, difficulty uint, prevBlock Block, trans []SignedTx, evHandler func(v string, args ...any)) (Block, error) {
	nb := Block{
		Header: BlockHeader{
			Number:        prevBlock.Header.Number + 1,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			PrevBlockHash: prevBlock.BlockHash,
			Nonce:         0,
		},
		Trans: trans,
	}

	if err := nb.performPOW(ctx, difficulty, evHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty uint, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: blk[%d] txs[%d]", b.Header.Number, len(b.Trans))
	defer ev("database: performPOW: MINING: completed")

	// Loop from a nonce of zero until the hash solution is found.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		// Did the caller cancel the search.
		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.Hash()
		if !isHashSolved(difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)
		b.BlockHash = hash

		return nil
	}
}

// Hash computes the digest of the full block content: header fields and
// every transaction including its signature. The stored BlockHash is
// excluded so the sealed digest can be checked against a recomputation.
func (b Block) Hash() string {
	content := struct {
		Header BlockHeader `json:"header"`
		Trans  []SignedTx  `json:"trans"`
	}{
		Header: b.Header,
		Trans:  b.Trans,
	}

	return signature.Hash(content)
}

// ValidateBlock takes a block and validates it against its parent and the
// chain's difficulty. The first failing check is returned.
func (b Block) ValidateBlock(previousBlock Block, difficulty uint, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: stored hash matches content", b.Header.Number)

	if b.Hash() != b.BlockHash {
		return fmt.Errorf("block hash doesn't match block contents, got %s, exp %s", b.BlockHash, b.Hash())
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash has been solved", b.Header.Number)

	if !isHashSolved(difficulty, b.BlockHash) {
		return fmt.Errorf("%s invalid block hash for difficulty %d", b.BlockHash, difficulty)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", b.Header.Number)

	if b.Header.Number != previousBlock.Header.Number+1 {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Header.Number, previousBlock.Header.Number+1)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.BlockHash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.BlockHash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: transaction signatures", b.Header.Number)

	for _, tx := range b.Trans {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %s: %w", tx, err)
		}
	}

	return nil
}

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "0x00000000000000000"

	if len(hash) != 66 {
		return false
	}

	if difficulty > uint(len(match)-2) {
		return false
	}

	return hash[2:2+difficulty] == match[2:2+difficulty]
}
