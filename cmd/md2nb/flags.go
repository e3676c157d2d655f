package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command-line flags.
type cliFlags struct {
	force   bool
	stdout  bool
	verbose bool
	version bool
}

const usageHeader = `usage: md2nb [flags] <input.md> [output.nb]

Convert a Markdown document to a Wolfram Notebook.

If output is omitted, the notebook is written to <input stem>.nb in the
current directory. If output is a directory, the derived file name is
appended to it.

Flags:
`

// parseFlags parses args (including the program name at args[0]) and
// returns the flags and remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2nb", flag.ContinueOnError)
	flags := &cliFlags{}

	fs.BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	fs.BoolVar(&flags.stdout, "stdout", false, "write the notebook to standard output")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "print pipeline progress to standard error")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usageHeader)
		fmt.Fprint(os.Stderr, fs.FlagUsages())
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return flags, fs.Args(), nil
}
