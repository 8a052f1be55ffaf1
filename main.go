package main

import (
	"os"

	"github.com/wellbot/wellbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
