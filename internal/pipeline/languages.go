package pipeline

import (
	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

// LanguageSet maps fenced-code language tags to the language
// identifiers used by external-evaluation cells. Lookup is
// case-sensitive with no aliasing heuristics: an unknown tag never
// partially matches a known language.
type LanguageSet struct {
	kernels map[string]string
}

// DefaultLanguages returns the built-in recognized-language set.
func DefaultLanguages() *LanguageSet {
	return &LanguageSet{kernels: map[string]string{
		"python":      "Python",
		"julia":       "Julia",
		"r":           "R",
		"ruby":        "Ruby",
		"shell":       "Shell",
		"bash":        "Shell",
		"sh":          "Shell",
		"zsh":         "Shell",
		"node":        "NodeJS",
		"javascript":  "NodeJS",
		"js":          "NodeJS",
		"octave":      "Octave",
		"sql":         "SQL",
		"wolfram":     notebook.WolframKernel,
		"mathematica": notebook.WolframKernel,
		"wl":          notebook.WolframKernel,
	}}
}

// Add registers an additional tag. Registering an existing tag
// overrides its kernel.
func (s *LanguageSet) Add(tag, kernel string) {
	s.kernels[tag] = kernel
}

// Resolve classifies a code block. A fenced block whose tag is in the
// set yields the execution-cell language identifier. Indented blocks
// carry no tag and are always plain code, as are fenced blocks with an
// absent or unrecognized tag.
func (s *LanguageSet) Resolve(block *markdown.CodeBlock) (kernel string, ok bool) {
	if !block.Fenced || block.Language == "" {
		return "", false
	}
	kernel, ok = s.kernels[block.Language]
	return kernel, ok
}
