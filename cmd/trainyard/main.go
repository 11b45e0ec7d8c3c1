// Package main provides the trainyard CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/trainyard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
