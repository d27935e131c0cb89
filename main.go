// Package main is the entry point for the ytfetch CLI and server.
package main

import (
	"github.com/samber/lo"
	"github.com/ytfetch-cli/ytfetch/cmd"
	"github.com/ytfetch-cli/ytfetch/config"
	"github.com/ytfetch-cli/ytfetch/internal/sweep"
	"github.com/ytfetch-cli/ytfetch/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Leftovers from crashed extractor runs.
	go sweep.CollectGarbage()

	cmd.Execute()
}
