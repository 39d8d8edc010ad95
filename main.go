package main

import (
	"os"

	"github.com/abhisek/teachteam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
