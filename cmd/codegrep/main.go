// Command codegrep searches public source code from the terminal.
package main

import (
	"os"

	"github.com/custodia-labs/codegrep/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
