package main

import (
	"os"

	"github.com/rogersnm/launchpad/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
