package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	md2nb "github.com/ConnorGray/md2nb"
	"github.com/ConnorGray/md2nb/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input file given")
	ErrTooManyArgs  = errors.New("too many arguments")
	ErrReadInput    = errors.New("failed to read input file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrOutputExists = errors.New("output file already exists (use --force to overwrite)")
)

// run converts the input file named by args and writes the notebook.
func run(flags *cliFlags, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		return ErrNoInput
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: %v", ErrTooManyArgs, args[2:])
	}

	inputPath := args[0]
	var outputArg string
	if len(args) == 2 {
		outputArg = args[1]
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	if flags.verbose {
		fmt.Fprintf(stderr, "Converting %s...\n", inputPath)
	}

	conv := md2nb.NewConverter()
	result, err := conv.Convert(context.Background(), md2nb.Input{Markdown: string(data)})
	if err != nil {
		return err
	}

	if flags.stdout {
		_, err := stdout.Write(result.Notebook)
		return err
	}

	outputPath := fileutil.DeriveOutputPath(inputPath, outputArg)
	if fileutil.FileExists(outputPath) && !flags.force {
		return fmt.Errorf("%w: %s", ErrOutputExists, outputPath)
	}
	if err := os.WriteFile(outputPath, result.Notebook, 0o644); err != nil { // #nosec G306 -- notebook is not sensitive
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	fmt.Fprintf(stdout, "Created %s\n", outputPath)
	return nil
}
