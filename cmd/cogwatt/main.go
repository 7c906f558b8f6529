package main

import (
	"os"

	"github.com/nkov/cogwatt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
