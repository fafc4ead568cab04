package main

import (
	"fmt"
	"os"

	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(domain.ExitFailure)
	}
}
