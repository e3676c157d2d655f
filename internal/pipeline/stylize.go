package pipeline

import (
	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

// Stylize converts a normalized inline subtree into a StyledRun. The
// conversion is total over the normalized inline grammar: unrecognized
// variants are a normalizer-level failure and cannot reach this stage.
//
// Style flags accumulate down the recursion as a bitset union, so
// Strong{Emphasis{x}} and Emphasis{Strong{x}} produce the same
// bold-italic run. Code spans drop accumulated flags: code content is
// rendered verbatim and never restyled. Link labels keep their styling
// inside the hyperlink.
func Stylize(inlines []markdown.Inline) notebook.StyledRun {
	return stylize(inlines, 0, "")
}

func stylize(inlines []markdown.Inline, flags notebook.StyleFlags, link string) notebook.StyledRun {
	var run notebook.StyledRun
	for _, in := range inlines {
		switch node := in.(type) {
		case *markdown.Text:
			run = append(run, notebook.Span{Text: node.Value, Style: flags, Link: link})
		case *markdown.Emphasis:
			run = append(run, stylize(node.Children, flags|notebook.StyleItalic, link)...)
		case *markdown.Strong:
			run = append(run, stylize(node.Children, flags|notebook.StyleBold, link)...)
		case *markdown.Strikethrough:
			run = append(run, stylize(node.Children, flags|notebook.StyleStrike, link)...)
		case *markdown.CodeSpan:
			run = append(run, notebook.Span{Text: node.Value, Code: true, Link: link})
		case *markdown.Link:
			run = append(run, stylize(node.Children, flags, node.Destination)...)
		case *markdown.AutoLink:
			run = append(run, notebook.Span{
				Text:  node.Destination,
				Style: flags,
				Link:  node.Destination,
			})
		case *markdown.Image:
			// Image embedding is out of scope; keep the alt text.
			run = append(run, notebook.Span{Text: node.Alt, Style: flags, Link: link})
		case *markdown.HardBreak:
			run = append(run, notebook.Span{Break: true})
		case *markdown.SoftBreak:
			// Normalization collapses these; tolerate one anyway.
			run = append(run, notebook.Span{Text: " ", Style: flags, Link: link})
		}
	}
	return run
}
