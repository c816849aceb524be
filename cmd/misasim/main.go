// Command misasim introduces misassemblies into FASTA sequences and writes
// the edited sequences with a BED track mapping them back to the originals.
//
// Usage:
//
//	misasim <command> [flags]
//
// Commands: misjoin, gap, inversion, false-duplication, break, collapse, multiple.
// Run "misasim <command> -h" for the flags of a command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

// run executes one command line and returns the exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "misasim: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
	return cmd.run(ctx, args[0], args[1:], stderr)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: misasim <command> [flags]\n\nCommands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-18s %s\n", name, commands[name].help)
	}
	fmt.Fprintf(w, "\nEnvironment: %s\n", strings.Join(envVars, ", "))
}
