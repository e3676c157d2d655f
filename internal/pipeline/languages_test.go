package pipeline

import (
	"testing"

	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

func TestLanguageSet_Resolve(t *testing.T) {
	t.Parallel()

	fenced := func(lang string) *markdown.CodeBlock {
		return &markdown.CodeBlock{Language: lang, Literal: "1 + 1\n", Fenced: true}
	}

	tests := []struct {
		name       string
		block      *markdown.CodeBlock
		wantKernel string
		wantOK     bool
	}{
		{name: "python", block: fenced("python"), wantKernel: "Python", wantOK: true},
		{name: "shell alias bash", block: fenced("bash"), wantKernel: "Shell", wantOK: true},
		{name: "shell alias zsh", block: fenced("zsh"), wantKernel: "Shell", wantOK: true},
		{name: "node alias js", block: fenced("js"), wantKernel: "NodeJS", wantOK: true},
		{name: "julia", block: fenced("julia"), wantKernel: "Julia", wantOK: true},
		{name: "sql", block: fenced("sql"), wantKernel: "SQL", wantOK: true},
		{name: "wolfram maps to native kernel", block: fenced("wolfram"), wantKernel: notebook.WolframKernel, wantOK: true},
		{name: "mathematica maps to native kernel", block: fenced("mathematica"), wantKernel: notebook.WolframKernel, wantOK: true},
		{name: "unknown tag", block: fenced("fooscript"), wantOK: false},
		{name: "lookup is case sensitive", block: fenced("Python"), wantOK: false},
		{name: "untagged fence", block: fenced(""), wantOK: false},
		{
			name:   "indented code has no language",
			block:  &markdown.CodeBlock{Literal: "x = 1\n", Fenced: false},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			langs := DefaultLanguages()
			kernel, ok := langs.Resolve(tt.block)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.block.Language, ok, tt.wantOK)
			}
			if ok && kernel != tt.wantKernel {
				t.Errorf("Resolve(%q) = %q, want %q", tt.block.Language, kernel, tt.wantKernel)
			}
		})
	}
}

func TestLanguageSet_Add(t *testing.T) {
	t.Parallel()

	langs := DefaultLanguages()
	langs.Add("fooscript", "Foo")

	block := &markdown.CodeBlock{Language: "fooscript", Fenced: true}
	kernel, ok := langs.Resolve(block)
	if !ok || kernel != "Foo" {
		t.Errorf("Resolve(fooscript) = %q, %v; want %q, true", kernel, ok, "Foo")
	}

	// Registrations are per-set, not global.
	fresh := DefaultLanguages()
	if _, ok := fresh.Resolve(block); ok {
		t.Error("Resolve(fooscript) on a fresh set succeeded; want miss")
	}
}
