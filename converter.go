package md2nb

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
	"github.com/ConnorGray/md2nb/internal/pipeline"
)

// Compile-time interface implementation checks.
var _ markdownPreprocessor = (*commonMarkPreprocessor)(nil)

// Converter orchestrates the markdown-to-notebook conversion pipeline.
// Create with NewConverter and use Convert for conversion. A Converter
// is immutable after construction and safe for concurrent use; each
// conversion is independent and synchronous.
type Converter struct {
	cfg          converterConfig
	preprocessor markdownPreprocessor
	mapper       *pipeline.Mapper
}

// NewConverter creates a Converter with default configuration. Use
// options to customize behavior (e.g., WithLanguage).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{preprocessor: &commonMarkPreprocessor{}}
	for _, opt := range opts {
		opt(c)
	}

	langs := pipeline.DefaultLanguages()
	for tag, kernel := range c.cfg.extraLanguages {
		langs.Add(tag, kernel)
	}
	c.mapper = pipeline.NewMapper(langs)
	return c
}

// Convert runs the full pipeline and returns the serialized notebook.
// The context is checked between stages; conversion of one document is
// otherwise a single blocking call. The first error aborts the
// remaining stages.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	body, meta := c.preprocessor.Preprocess(input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := markdown.Parse([]byte(body))

	normalized, err := markdown.Normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes, err := c.mapper.MapDocument(normalized)
	if err != nil {
		return nil, fmt.Errorf("mapping cells: %w", err)
	}

	// A front matter title becomes the document's Title cell unless the
	// Markdown already opens with a level-1 heading.
	if meta != nil && meta.Title != "" && !opensWithTitle(nodes) {
		title := &notebook.Cell{
			Type:    notebook.TitleCell,
			Style:   "Title",
			Content: notebook.StyledRun{{Text: meta.Title}},
		}
		nodes = append([]notebook.Node{title}, nodes...)
	}

	data, err := notebook.Serialize(&notebook.Notebook{Nodes: nodes})
	if err != nil {
		return nil, fmt.Errorf("serializing notebook: %w", err)
	}

	return &Result{Notebook: data, FrontMatter: meta}, nil
}

// validateInput checks that required fields are present and valid.
// This is the trust boundary for library users who build Input
// directly; the CLI path converges here as well.
func validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if !utf8.ValidString(input.Markdown) {
		return ErrInvalidUTF8
	}
	return nil
}

func opensWithTitle(nodes []notebook.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	switch n := nodes[0].(type) {
	case *notebook.Cell:
		return n.Style == "Title"
	case *notebook.CellGroup:
		return n.Header.Style == "Title"
	default:
		return false
	}
}
