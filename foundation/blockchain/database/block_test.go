package database_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/signature"
)

// noEv silences block events in tests.
func noEv(v string, args ...any) {}

// testDifficulty keeps the POW search fast in the test suite.
const testDifficulty = 1

func signTx(t *testing.T, value float64) database.SignedTx {
	t.Helper()

	pk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}
	pk2, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}

	tx, err := database.NewTx(database.Account(database.PublicKeyToAccountID(pk.PublicKey)), database.PublicKeyToAccountID(pk2.PublicKey), value)
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	signedTx, err := tx.Sign(pk)
	if err != nil {
		t.Fatalf("Should be able to sign a transaction: %s", err)
	}

	return signedTx
}

func Test_GenesisBlock(t *testing.T) {
	genesisBlock := database.NewGenesisBlock()

	if genesisBlock.Header.Number != 0 {
		t.Fatalf("Should number genesis zero, got %d", genesisBlock.Header.Number)
	}
	if genesisBlock.Header.PrevBlockHash != signature.ZeroHash {
		t.Fatalf("Should anchor genesis to the zero hash, got %s", genesisBlock.Header.PrevBlockHash)
	}
	if genesisBlock.BlockHash != genesisBlock.Hash() {
		t.Fatal("Should seal genesis with the hash of its contents.")
	}
}

func Test_POW(t *testing.T) {
	t.Log("Given the need to mine a block that satisfies the difficulty.")
	{
		genesisBlock := database.NewGenesisBlock()
		trans := []database.SignedTx{signTx(t, 10), signTx(t, 20)}

		block, err := database.POW(context.Background(), testDifficulty, genesisBlock, trans, noEv)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if !strings.HasPrefix(block.BlockHash, "0x"+strings.Repeat("0", testDifficulty)) {
			t.Fatalf("\t%s\tShould produce a hash with %d leading zeros: got %s", failed, testDifficulty, block.BlockHash)
		}
		t.Logf("\t%s\tShould produce a hash with %d leading zeros.", success, testDifficulty)

		if block.Hash() != block.BlockHash {
			t.Fatalf("\t%s\tShould reproduce the stored hash with the stored nonce.", failed)
		}
		t.Logf("\t%s\tShould reproduce the stored hash with the stored nonce.", success)

		if block.Header.PrevBlockHash != genesisBlock.BlockHash {
			t.Fatalf("\t%s\tShould link the block to its parent.", failed)
		}
		t.Logf("\t%s\tShould link the block to its parent.", success)

		if err := block.ValidateBlock(genesisBlock, testDifficulty, noEv); err != nil {
			t.Fatalf("\t%s\tShould validate the mined block: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate the mined block.", success)
	}
}

func Test_HashDeterminism(t *testing.T) {
	genesisBlock := database.NewGenesisBlock()
	trans := []database.SignedTx{signTx(t, 10), signTx(t, 20)}

	block, err := database.POW(context.Background(), testDifficulty, genesisBlock, trans, noEv)
	if err != nil {
		t.Fatalf("Should be able to mine a block: %s", err)
	}

	if block.Hash() != block.Hash() {
		t.Fatal("Should compute the same hash for the same content.")
	}

	// Transaction order is part of the hashed content.
	reordered := block
	reordered.Trans = []database.SignedTx{trans[1], trans[0]}
	if reordered.Hash() == block.Hash() {
		t.Fatal("Should compute a different hash when transactions are reordered.")
	}

	// So is the nonce.
	renonced := block
	renonced.Header.Nonce++
	if renonced.Hash() == block.Hash() {
		t.Fatal("Should compute a different hash for a different nonce.")
	}
}

func Test_POWCancellation(t *testing.T) {

	// A difficulty this high can't be solved in the timeout, so the search
	// must come back with the context error.
	const unreachable = 16

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	genesisBlock := database.NewGenesisBlock()
	trans := []database.SignedTx{signTx(t, 10)}

	if _, err := database.POW(ctx, unreachable, genesisBlock, trans, noEv); err == nil {
		t.Fatal("Should return the context error when mining is cancelled.")
	}
}
