package main

import (
	"os"

	"github.com/finlock/daytrade/cmd/pdtcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
