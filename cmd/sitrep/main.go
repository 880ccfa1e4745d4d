// Package main is the entry point for the sitrep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/sitrep/cmd/sitrep/commands"
	"github.com/thoreinstein/sitrep/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		os.Exit(errors.ExitSuccess)
	}

	// Commands signal their exit code through ExitError. An ExitError
	// with a nil cause means the command already reported the outcome
	// and only the code remains.
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errors.ExitUser)
}
