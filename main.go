package main

import (
	"os"

	"github.com/jeremyhunt/jobscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
