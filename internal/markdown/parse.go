package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdParser is the goldmark parser shared by all Parse calls. Extensions
// match the supported input grammar: GFM tables, strikethrough, task
// lists, and bare-URL autolinks.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
)

// Parse parses Markdown source into the package AST and collects the
// document's link-reference table. Parsing itself is total: malformed
// input degrades per CommonMark rules rather than failing.
func Parse(source []byte) *Document {
	pctx := parser.NewContext()
	root := mdParser.Parser().Parse(text.NewReader(source), parser.WithContext(pctx))

	b := &builder{source: source}
	doc := &Document{
		Blocks: b.blocks(root),
		Refs:   ReferenceTable{},
	}
	for _, ref := range pctx.References() {
		label := NormalizeLabel(string(ref.Label()))
		if _, dup := doc.Refs[label]; !dup {
			doc.Refs[label] = string(ref.Destination())
		}
	}
	return doc
}

// NormalizeLabel lowercases a link label and collapses interior
// whitespace, per CommonMark label matching.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// builder converts goldmark nodes into the package AST.
type builder struct {
	source []byte
}

func (b *builder) blocks(n gast.Node) []Block {
	var out []Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if blk := b.block(child); blk != nil {
			out = append(out, blk)
		}
	}
	return out
}

func (b *builder) block(n gast.Node) Block {
	switch node := n.(type) {
	case *gast.Heading:
		return &Heading{Level: node.Level, Inlines: b.inlines(node)}
	case *gast.Paragraph:
		return &Paragraph{Inlines: b.inlines(node)}
	case *gast.TextBlock:
		// Tight list items carry TextBlocks instead of Paragraphs.
		return &Paragraph{Inlines: b.inlines(node)}
	case *gast.List:
		return b.list(node)
	case *gast.Blockquote:
		return &BlockQuote{Blocks: b.blocks(node)}
	case *gast.FencedCodeBlock:
		return &CodeBlock{
			Language: string(node.Language(b.source)),
			Literal:  b.codeLines(node),
			Fenced:   true,
		}
	case *gast.CodeBlock:
		return &CodeBlock{Literal: b.codeLines(node)}
	case *gast.ThematicBreak:
		return &ThematicBreak{}
	case *extast.Table:
		return b.table(node)
	case *gast.HTMLBlock:
		// Raw HTML has no notebook counterpart.
		return nil
	default:
		return nil
	}
}

func (b *builder) list(n *gast.List) *List {
	list := &List{Ordered: n.IsOrdered(), Start: n.Start}
	if !list.Ordered {
		list.Start = 0
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*gast.ListItem)
		if !ok {
			continue
		}
		list.Items = append(list.Items, b.listItem(item))
	}
	return list
}

func (b *builder) listItem(n *gast.ListItem) *ListItem {
	item := &ListItem{Blocks: b.blocks(n)}

	// A task marker parses as the first inline of the item's first
	// paragraph. Lift it onto the item and drop it from the text.
	if len(item.Blocks) > 0 {
		if para, ok := item.Blocks[0].(*Paragraph); ok && len(para.Inlines) > 0 {
			if task, ok := para.Inlines[0].(*taskMarker); ok {
				if task.checked {
					item.Task = TaskDone
				} else {
					item.Task = TaskOpen
				}
				para.Inlines = para.Inlines[1:]
			}
		}
	}
	return item
}

func (b *builder) codeLines(n gast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (b *builder) table(n *extast.Table) *Table {
	t := &Table{}
	for _, align := range n.Alignments {
		t.Alignments = append(t.Alignments, tableAlignment(align))
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			t.Header = b.tableRow(row)
		case *extast.TableRow:
			t.Body = append(t.Body, b.tableRow(row))
		}
	}
	return t
}

func (b *builder) tableRow(n gast.Node) []TableCell {
	var cells []TableCell
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if cell, ok := child.(*extast.TableCell); ok {
			cells = append(cells, TableCell{Inlines: b.inlines(cell)})
		}
	}
	return cells
}

func tableAlignment(a extast.Alignment) Alignment {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignCenter:
		return AlignCenter
	case extast.AlignRight:
		return AlignRight
	default:
		return AlignDefault
	}
}

// taskMarker is a parse-time placeholder for a GFM task checkbox; it is
// lifted onto the owning ListItem and never survives into a Document.
type taskMarker struct {
	checked bool
}

func (*taskMarker) inline() {}

func (b *builder) inlines(n gast.Node) []Inline {
	var out []Inline
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, b.inline(child)...)
	}
	return out
}

func (b *builder) inline(n gast.Node) []Inline {
	switch node := n.(type) {
	case *gast.Text:
		var out []Inline
		if value := string(node.Segment.Value(b.source)); value != "" {
			out = append(out, &Text{Value: value})
		}
		if node.HardLineBreak() {
			out = append(out, &HardBreak{})
		} else if node.SoftLineBreak() {
			out = append(out, &SoftBreak{})
		}
		return out
	case *gast.String:
		if len(node.Value) == 0 {
			return nil
		}
		return []Inline{&Text{Value: string(node.Value)}}
	case *gast.CodeSpan:
		return []Inline{&CodeSpan{Value: b.rawText(node)}}
	case *gast.Emphasis:
		children := b.inlines(node)
		if node.Level >= 2 {
			return []Inline{&Strong{Children: children}}
		}
		return []Inline{&Emphasis{Children: children}}
	case *extast.Strikethrough:
		return []Inline{&Strikethrough{Children: b.inlines(node)}}
	case *gast.Link:
		return []Inline{&Link{
			Destination: string(node.Destination),
			Children:    b.inlines(node),
		}}
	case *gast.AutoLink:
		return []Inline{&AutoLink{Destination: string(node.URL(b.source))}}
	case *gast.Image:
		return []Inline{&Image{
			Alt:         b.rawText(node),
			Destination: string(node.Destination),
		}}
	case *extast.TaskCheckBox:
		return []Inline{&taskMarker{checked: node.IsChecked}}
	case *gast.RawHTML:
		return nil
	default:
		// Unknown inline containers contribute their children.
		return b.inlines(n)
	}
}

// rawText concatenates the literal text beneath an inline node.
func (b *builder) rawText(n gast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*gast.Text); ok {
			sb.Write(t.Segment.Value(b.source))
		}
	}
	return sb.String()
}
