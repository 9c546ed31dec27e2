// Command iodoc renders I/O example tables from function value traces.
package main

import (
	"os"

	"github.com/leapstack-labs/iodoc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
