// Package main provides the transfield CLI.
package main

import (
	"os"

	"github.com/glossa-labs/transfield/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
