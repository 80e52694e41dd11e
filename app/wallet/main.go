// This program provides wallet tooling: key generation, account display,
// and offline transaction signing.
package main

import "github.com/minichain/blockchain/app/wallet/cmd"

func main() {
	cmd.Execute()
}
