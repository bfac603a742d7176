// Command filkompedia is the command line client for the FilkomPedia bookstore.
package main

import (
	"os"

	"github.com/yogarn/filkompedia-client/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
