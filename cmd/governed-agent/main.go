package main

import (
	"os"

	"github.com/codeready-toolchain/governed-agent/cmd/governed-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
