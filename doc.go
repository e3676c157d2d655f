// Package md2nb converts Markdown documents to Wolfram Notebook (.nb)
// documents.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv := md2nb.NewConverter()
//	result, err := conv.Convert(ctx, md2nb.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.nb", result.Notebook, 0644)
//
// # Conversion Pipeline
//
// The conversion runs these stages, each a pure function from one
// immutable tree to the next:
//
//  1. Markdown preprocessing (line-ending normalization, YAML front
//     matter extraction)
//  2. Parsing via goldmark into the module's Markdown AST
//  3. Normalization (reference-link resolution, soft-break reflow,
//     nesting-depth annotation)
//  4. Cell mapping: the block tree becomes a grouped, style-tagged
//     notebook cell hierarchy
//  5. Serialization into the notebook expression grammar
//
// A failure at any stage aborts the whole conversion; there is no
// partial output.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := md2nb.NewConverter(
//	    md2nb.WithLanguage("fish", "Shell"),
//	)
//
// Fenced code blocks whose language tag is in the recognized set become
// executable external-language cells; every other code block becomes a
// plain "Program" cell. The lookup is case-sensitive and exact.
//
// # Errors
//
// All errors are classified by sentinel values (ErrUnresolvedReference,
// ErrMalformedTree, ErrUnencodableCharacter, ErrEmptyMarkdown,
// ErrInvalidUTF8) and can be tested with errors.Is. Conversion is
// deterministic, so no error is retryable.
package md2nb
