package main

import (
	"os"

	"github.com/leadmart-dev/leadmart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
