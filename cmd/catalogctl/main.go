package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/shopassist/backend/cmd/catalogctl/commands"
)

func main() {
	if err := commands.NewRootCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
