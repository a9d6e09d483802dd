// Command campusconnect is the main entry point for the CLI binary.
// It dispatches to subcommands like setup, ui, and register.
package main

import (
	"fmt"
	"os"

	"campusconnect/internal/cmd/register"
	"campusconnect/internal/cmd/setup"
	"campusconnect/internal/cmd/ui"
)

// main is the process entry point and forwards to run for testable logic.
func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// run parses argv and invokes the matching subcommand handler.
// It returns an error for missing or unknown subcommands.
func run(argv []string) error {
	if len(argv) < 2 {
		usage()
		return fmt.Errorf("missing subcommand")
	}

	switch argv[1] {
	case "setup":
		return setup.Run(argv[2:])
	case "ui":
		return ui.Run(argv[2:])
	case "register":
		return register.Run(argv[2:])
	case "-h", "--help", "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown subcommand: %s", argv[1])
	}
}

// usage prints the canonical CLI syntax to stderr.
func usage() {
	fmt.Fprintln(os.Stderr, "campusconnect <setup|ui|register> [flags]")
}
