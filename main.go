// main is the entry point for the calheat CLI.
package main

import (
	"github.com/liushen/calheat/cmd"
	"github.com/liushen/calheat/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
