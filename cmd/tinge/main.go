// Package main is the entry point for the tinge application.
package main

import (
	"os"

	"github.com/tingeapp/tinge/cmd/tinge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
