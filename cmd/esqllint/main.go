// Command esqllint runs static analysis rules over ESQL sources.
package main

import (
	"os"

	"github.com/leapstack-labs/esqllint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
