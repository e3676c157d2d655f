package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRun - End-to-end CLI conversion
// ---------------------------------------------------------------------------

func TestRun_CreatesOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "# Notes\n\nSome text.\n")
	output := filepath.Join(dir, "notes.nb")

	var stdout, stderr bytes.Buffer
	err := run(&cliFlags{}, []string{input, output}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(output): %v", err)
	}
	if !bytes.HasPrefix(data, []byte("(* Content-type: application/vnd.wolfram.mathematica *)")) {
		t.Errorf("output missing the content-type header:\n%s", data)
	}
	if !strings.Contains(stdout.String(), "Created "+output) {
		t.Errorf("stdout = %q, want creation notice for %q", stdout.String(), output)
	}
}

func TestRun_DerivesOutputInDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "guide.md", "# Guide\n")

	var stdout, stderr bytes.Buffer
	if err := run(&cliFlags{}, []string{input, dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	derived := filepath.Join(dir, "guide.nb")
	if _, err := os.Stat(derived); err != nil {
		t.Errorf("derived output %q not created: %v", derived, err)
	}
}

func TestRun_StdoutMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "plain text\n")

	var stdout, stderr bytes.Buffer
	if err := run(&cliFlags{stdout: true}, []string{input}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(stdout.String(), `Cell["plain text", "Text"]`) {
		t.Errorf("stdout missing the text cell:\n%s", stdout.String())
	}

	// Stdout mode must not leave a file behind.
	if _, err := os.Stat(filepath.Join(dir, "notes.nb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("notes.nb exists in stdout mode (stat err = %v)", err)
	}
}

func TestRun_RefusesOverwriteWithoutForce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "text\n")
	output := writeInput(t, dir, "notes.nb", "existing")

	var stdout, stderr bytes.Buffer
	err := run(&cliFlags{}, []string{input, output}, &stdout, &stderr)
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("run error = %v, want ErrOutputExists", err)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "existing" {
		t.Error("existing output was modified despite the refusal")
	}
}

func TestRun_ForceOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "text\n")
	output := writeInput(t, dir, "notes.nb", "existing")

	var stdout, stderr bytes.Buffer
	if err := run(&cliFlags{force: true}, []string{input, output}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(output): %v", err)
	}
	if string(data) == "existing" {
		t.Error("output was not overwritten with --force")
	}
}

func TestRun_Verbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "text\n")

	var stdout, stderr bytes.Buffer
	if err := run(&cliFlags{stdout: true, verbose: true}, []string{input}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), "Converting "+input) {
		t.Errorf("stderr = %q, want progress line for %q", stderr.String(), input)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Errors - Argument and I/O failures
// ---------------------------------------------------------------------------

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeInput(t, dir, "notes.md", "text\n")
	broken := writeInput(t, dir, "broken.md", "See [missing ref][nowhere].\n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "no arguments", args: nil, wantErr: ErrNoInput},
		{name: "too many arguments", args: []string{input, "out.nb", "extra"}, wantErr: ErrTooManyArgs},
		{name: "missing input file", args: []string{filepath.Join(dir, "absent.md")}, wantErr: ErrReadInput},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			err := run(&cliFlags{stdout: true}, tt.args, &stdout, &stderr)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("run error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("conversion failure surfaces", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := run(&cliFlags{stdout: true}, []string{broken}, &stdout, &stderr)
		if err == nil || !strings.Contains(err.Error(), "nowhere") {
			t.Errorf("run error = %v, want unresolved reference naming %q", err, "nowhere")
		}
	})
}
