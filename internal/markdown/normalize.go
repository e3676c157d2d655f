package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnresolvedReference reports a reference-style link whose label has
// no definition in the document's reference table. The document fails to
// convert rather than silently dropping the link.
var ErrUnresolvedReference = errors.New("unresolved link reference")

// refRemnant matches reference-shaped bracket spans left in plain text.
// goldmark resolves defined references during parsing, so a surviving
// `[label]` or `[text][label]` in a Text node is an unresolved reference.
var refRemnant = regexp.MustCompile(`\[([^\[\]]+)\](?:\[([^\[\]]*)\])?`)

// Normalize returns a copy of doc with every reference-style link
// resolved, soft breaks collapsed to single spaces, hard breaks kept as
// explicit line boundaries, and every list, list item, and block quote
// annotated with its zero-based same-kind nesting depth.
func Normalize(doc *Document) (*Document, error) {
	refs := doc.Refs
	if refs == nil {
		refs = ReferenceTable{}
	}
	out := &Document{Refs: refs}
	blocks, err := normalizeBlocks(doc.Blocks, refs, 0, 0)
	if err != nil {
		return nil, err
	}
	out.Blocks = blocks
	return out, nil
}

func normalizeBlocks(blocks []Block, refs ReferenceTable, listDepth, quoteDepth int) ([]Block, error) {
	var out []Block
	for _, b := range blocks {
		nb, err := normalizeBlock(b, refs, listDepth, quoteDepth)
		if err != nil {
			return nil, err
		}
		if nb != nil {
			out = append(out, nb)
		}
	}
	return out, nil
}

func normalizeBlock(b Block, refs ReferenceTable, listDepth, quoteDepth int) (Block, error) {
	switch node := b.(type) {
	case *Heading:
		inlines, err := normalizeInlines(node.Inlines, refs)
		if err != nil {
			return nil, err
		}
		return &Heading{Level: node.Level, Inlines: inlines}, nil
	case *Paragraph:
		inlines, err := normalizeInlines(node.Inlines, refs)
		if err != nil {
			return nil, err
		}
		return &Paragraph{Inlines: inlines}, nil
	case *List:
		list := &List{Ordered: node.Ordered, Start: node.Start, Depth: listDepth}
		for _, item := range node.Items {
			children, err := normalizeBlocks(item.Blocks, refs, listDepth+1, quoteDepth)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, &ListItem{
				Depth:  listDepth,
				Task:   item.Task,
				Blocks: children,
			})
		}
		return list, nil
	case *BlockQuote:
		children, err := normalizeBlocks(node.Blocks, refs, listDepth, quoteDepth+1)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Depth: quoteDepth, Blocks: children}, nil
	case *CodeBlock:
		cp := *node
		return &cp, nil
	case *Table:
		return normalizeTable(node, refs)
	case *ThematicBreak:
		return &ThematicBreak{}, nil
	case *ListItem:
		// A bare ListItem can only come from a malformed hand-built
		// tree; the mapper reports it, normalization passes it through.
		return node, nil
	default:
		return b, nil
	}
}

func normalizeTable(t *Table, refs ReferenceTable) (*Table, error) {
	out := &Table{Alignments: append([]Alignment(nil), t.Alignments...)}
	var err error
	if out.Header, err = normalizeRow(t.Header, refs); err != nil {
		return nil, err
	}
	for _, row := range t.Body {
		nr, err := normalizeRow(row, refs)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, nr)
	}
	return out, nil
}

func normalizeRow(row []TableCell, refs ReferenceTable) ([]TableCell, error) {
	var out []TableCell
	for _, cell := range row {
		inlines, err := normalizeInlines(cell.Inlines, refs)
		if err != nil {
			return nil, err
		}
		out = append(out, TableCell{Inlines: inlines})
	}
	return out, nil
}

// normalizeInlines resolves reference links, rejects unresolved ones,
// and collapses soft breaks. Adjacent soft breaks reflow to one space; a
// soft break following emitted whitespace contributes nothing.
func normalizeInlines(inlines []Inline, refs ReferenceTable) ([]Inline, error) {
	if err := checkRemnants(inlines, refs); err != nil {
		return nil, err
	}
	var out []Inline
	for _, in := range inlines {
		switch node := in.(type) {
		case *Text:
			out = append(out, &Text{Value: node.Value})
		case *SoftBreak:
			if endsWithSpace(out) {
				continue
			}
			out = append(out, &Text{Value: " "})
		case *HardBreak:
			out = append(out, &HardBreak{})
		case *Emphasis:
			children, err := normalizeInlines(node.Children, refs)
			if err != nil {
				return nil, err
			}
			out = append(out, &Emphasis{Children: children})
		case *Strong:
			children, err := normalizeInlines(node.Children, refs)
			if err != nil {
				return nil, err
			}
			out = append(out, &Strong{Children: children})
		case *Strikethrough:
			children, err := normalizeInlines(node.Children, refs)
			if err != nil {
				return nil, err
			}
			out = append(out, &Strikethrough{Children: children})
		case *Link:
			link, err := resolveLink(node, refs)
			if err != nil {
				return nil, err
			}
			out = append(out, link)
		case *CodeSpan:
			out = append(out, &CodeSpan{Value: node.Value})
		case *AutoLink:
			out = append(out, &AutoLink{Destination: node.Destination})
		case *Image:
			cp := *node
			out = append(out, &cp)
		default:
			return nil, fmt.Errorf("unrecognized inline node %T", in)
		}
	}
	return out, nil
}

func resolveLink(link *Link, refs ReferenceTable) (*Link, error) {
	children, err := normalizeInlines(link.Children, refs)
	if err != nil {
		return nil, err
	}
	resolved := &Link{Destination: link.Destination, Children: children}
	if link.Destination == "" && link.RefLabel != "" {
		dest, ok := refs[NormalizeLabel(link.RefLabel)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedReference, link.RefLabel)
		}
		resolved.Destination = dest
	}
	return resolved, nil
}

// checkRemnants rejects reference-shaped bracket spans whose label is
// undefined. The parser splits failed link syntax across several Text
// nodes, so the scan runs over the concatenated text of the inline
// sequence; non-text inlines contribute a `[]` separator, which cannot
// occur inside a label and keeps spans from matching across them.
func checkRemnants(inlines []Inline, refs ReferenceTable) error {
	var sb strings.Builder
	for _, in := range inlines {
		if t, ok := in.(*Text); ok {
			sb.WriteString(t.Value)
		} else {
			sb.WriteString("[]")
		}
	}
	return checkTextForRemnants(sb.String(), refs)
}

// checkTextForRemnants scans one text run. Spans preceded by `!` (image
// syntax) or `\` are skipped. Labels that are defined would have been
// linked by the parser already, so they pass through as literal text.
func checkTextForRemnants(text string, refs ReferenceTable) error {
	for _, m := range refRemnant.FindAllStringSubmatchIndex(text, -1) {
		if start := m[0]; start > 0 {
			switch text[start-1] {
			case '!', '\\':
				continue
			}
		}
		label := text[m[2]:m[3]]
		if m[4] >= 0 && m[4] != m[5] {
			// Full reference form [text][label].
			label = text[m[4]:m[5]]
		}
		if _, ok := refs[NormalizeLabel(label)]; !ok {
			return fmt.Errorf("%w: %q", ErrUnresolvedReference, label)
		}
	}
	return nil
}

func endsWithSpace(inlines []Inline) bool {
	if len(inlines) == 0 {
		return false
	}
	if t, ok := inlines[len(inlines)-1].(*Text); ok {
		return strings.HasSuffix(t.Value, " ")
	}
	return false
}
