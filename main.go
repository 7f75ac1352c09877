package main

import (
	"os"

	"github.com/dpshade/pocket-analyst/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
