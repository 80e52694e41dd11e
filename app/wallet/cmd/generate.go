package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/minichain/blockchain/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new key pair",
	Run:   generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) {
	w, err := wallet.Generate()
	if err != nil {
		log.Fatal(err)
	}

	path := getPrivateKeyPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatal(err)
	}

	if err := w.SaveToFile(path); err != nil {
		log.Fatal(err)
	}
}
