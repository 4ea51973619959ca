// Package main is the entry point for the skel CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mthorborn/skel/cmd/skel/commands"
	"github.com/mthorborn/skel/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(errors.ExitSystem)
}
