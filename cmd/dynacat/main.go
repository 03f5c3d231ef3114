package main

import (
	"os"

	"github.com/TFMV/dynacat/cli"
)

func main() {
	// cobra reports the error itself before Execute returns
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
