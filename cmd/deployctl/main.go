// Package main is the entry point for the deployctl CLI.
package main

import (
	"os"

	"github.com/deployctl/deployctl/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
