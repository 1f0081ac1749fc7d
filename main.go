package main

import (
	"os"

	"github.com/hashmap-kz/assetsensor/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
