package pipeline

import (
	"errors"
	"fmt"

	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

// ErrMalformedTree reports a structurally impossible block tree, such
// as a list item outside a list or a heading level outside 1..6. It
// indicates a parser contract violation and is fatal.
var ErrMalformedTree = errors.New("malformed block tree")

// Task markers render as ballot-box characters prefixed to the item.
const (
	taskOpenPrefix = "☐ "
	taskDonePrefix = "☑ "
)

// Mapper walks a normalized block tree and produces the notebook cell
// hierarchy: heading sections become cell groups, list and quote
// nesting depth selects style tags (saturating at three levels), and
// code blocks are classified against the recognized-language set.
type Mapper struct {
	langs *LanguageSet
}

// NewMapper returns a Mapper using the given language set, or the
// default set when langs is nil.
func NewMapper(langs *LanguageSet) *Mapper {
	if langs == nil {
		langs = DefaultLanguages()
	}
	return &Mapper{langs: langs}
}

// mapContext is the walk state, threaded by value so mapping stays a
// pure function of (node, context).
type mapContext struct {
	inQuote    bool
	quoteDepth int
}

// MapDocument maps every top-level block and folds heading cells into
// outline groups: a heading captures all following same-or-deeper
// content until a heading of equal or shallower level.
func (m *Mapper) MapDocument(doc *markdown.Document) ([]notebook.Node, error) {
	var entries []outlineEntry
	for _, b := range doc.Blocks {
		if h, ok := b.(*markdown.Heading); ok {
			cell, err := m.headingCell(h)
			if err != nil {
				return nil, err
			}
			entries = append(entries, outlineEntry{node: cell, level: h.Level})
			continue
		}
		nodes, err := m.mapBlock(b, mapContext{})
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			entries = append(entries, outlineEntry{node: n})
		}
	}
	return groupOutline(entries), nil
}

func (m *Mapper) headingCell(h *markdown.Heading) (*notebook.Cell, error) {
	style := notebook.HeadingStyle(h.Level)
	if style == "" {
		return nil, fmt.Errorf("%w: heading level %d", ErrMalformedTree, h.Level)
	}
	return &notebook.Cell{
		Type:    headingType(h.Level),
		Style:   style,
		Content: Stylize(h.Inlines),
	}, nil
}

func headingType(level int) notebook.CellType {
	if level == 1 {
		return notebook.TitleCell
	}
	return notebook.SubtitleCell
}

func (m *Mapper) mapBlock(b markdown.Block, ctx mapContext) ([]notebook.Node, error) {
	switch node := b.(type) {
	case *markdown.Heading:
		cell, err := m.headingCell(node)
		if err != nil {
			return nil, err
		}
		return []notebook.Node{cell}, nil
	case *markdown.Paragraph:
		run := Stylize(node.Inlines)
		if len(run) == 0 {
			return nil, nil
		}
		cell := &notebook.Cell{Type: notebook.TextCell, Style: "Text", Content: run}
		if ctx.inQuote {
			cell.Type = notebook.BlockQuoteTextCell
			cell.Style = notebook.BlockQuoteStyle(ctx.quoteDepth)
			cell.Nesting = ctx.quoteDepth
		}
		return []notebook.Node{cell}, nil
	case *markdown.List:
		return m.mapList(node, ctx)
	case *markdown.ListItem:
		return nil, fmt.Errorf("%w: list item outside a list", ErrMalformedTree)
	case *markdown.BlockQuote:
		return m.mapQuote(node, ctx)
	case *markdown.CodeBlock:
		return []notebook.Node{m.codeCell(node)}, nil
	case *markdown.Table:
		return []notebook.Node{&notebook.Cell{
			Type:  notebook.TableCellType,
			Style: "Text",
			Grid:  BuildGrid(node),
		}}, nil
	case *markdown.ThematicBreak:
		return []notebook.Node{&notebook.Cell{
			Type:  notebook.HorizontalRuleCell,
			Style: "HorizontalRule",
		}}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected block %T", ErrMalformedTree, b)
	}
}

// mapList emits one item cell per list item. An item whose extra
// content (nested lists, code blocks, further paragraphs) follows its
// lead paragraph becomes a cell group headed by the item cell.
func (m *Mapper) mapList(list *markdown.List, ctx mapContext) ([]notebook.Node, error) {
	var out []notebook.Node
	for _, item := range list.Items {
		nodes, err := m.mapListItem(list, item, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (m *Mapper) mapListItem(list *markdown.List, item *markdown.ListItem, ctx mapContext) ([]notebook.Node, error) {
	style := notebook.ItemStyle(list.Ordered, item.Depth)

	blocks := item.Blocks
	var head *notebook.Cell
	if len(blocks) > 0 {
		if para, ok := blocks[0].(*markdown.Paragraph); ok {
			run := Stylize(para.Inlines)
			run = prependTaskMarker(run, item.Task)
			head = &notebook.Cell{
				Type:    notebook.ItemCell,
				Style:   style,
				Content: run,
				Nesting: item.Depth,
			}
			blocks = blocks[1:]
		}
	}

	var rest []notebook.Node
	for _, b := range blocks {
		nodes, err := m.mapBlock(b, ctx)
		if err != nil {
			return nil, err
		}
		rest = append(rest, nodes...)
	}

	switch {
	case head == nil && len(rest) == 0:
		// Empty item still occupies a slot in the list.
		return []notebook.Node{&notebook.Cell{
			Type:    notebook.ItemCell,
			Style:   style,
			Content: notebook.StyledRun{{Text: ""}},
			Nesting: item.Depth,
		}}, nil
	case head == nil:
		return rest, nil
	case len(rest) == 0:
		return []notebook.Node{head}, nil
	default:
		return []notebook.Node{&notebook.CellGroup{Header: head, Children: rest}}, nil
	}
}

func prependTaskMarker(run notebook.StyledRun, task markdown.TaskState) notebook.StyledRun {
	switch task {
	case markdown.TaskOpen:
		return append(notebook.StyledRun{{Text: taskOpenPrefix}}, run...)
	case markdown.TaskDone:
		return append(notebook.StyledRun{{Text: taskDonePrefix}}, run...)
	default:
		return run
	}
}

// mapQuote maps each block inside the quote at the quote's nesting
// depth. Code blocks and tables directly inside a quote stay inside the
// quote's group at the same depth as sibling quote paragraphs.
func (m *Mapper) mapQuote(quote *markdown.BlockQuote, ctx mapContext) ([]notebook.Node, error) {
	childCtx := mapContext{inQuote: true, quoteDepth: quote.Depth}
	var cells []notebook.Node
	for _, b := range quote.Blocks {
		nodes, err := m.mapBlock(b, childCtx)
		if err != nil {
			return nil, err
		}
		cells = append(cells, nodes...)
	}
	if len(cells) <= 1 {
		return cells, nil
	}
	if header, ok := cells[0].(*notebook.Cell); ok {
		return []notebook.Node{&notebook.CellGroup{Header: header, Children: cells[1:]}}, nil
	}
	return cells, nil
}

func (m *Mapper) codeCell(cb *markdown.CodeBlock) *notebook.Cell {
	if kernel, ok := m.langs.Resolve(cb); ok {
		style := "ExternalLanguage"
		if kernel == notebook.WolframKernel {
			style = "Input"
		}
		return &notebook.Cell{
			Type:     notebook.ExternalLanguageCell,
			Style:    style,
			Language: kernel,
			Literal:  cb.Literal,
		}
	}
	return &notebook.Cell{
		Type:    notebook.CodeCell,
		Style:   "Program",
		Literal: cb.Literal,
	}
}

//======================================
// Outline grouping
//======================================

type outlineEntry struct {
	node  notebook.Node
	level int // heading level, 0 for body content
}

// groupOutline folds a flat cell sequence into heading sections: each
// heading opens a group that captures following entries until a heading
// of equal or shallower level. Headings with no captured content stay
// plain cells.
func groupOutline(entries []outlineEntry) []notebook.Node {
	var top []notebook.Node
	type openGroup struct {
		group *notebook.CellGroup
		level int
	}
	var stack []openGroup

	appendNode := func(n notebook.Node) {
		if len(stack) > 0 {
			g := stack[len(stack)-1].group
			g.Children = append(g.Children, n)
		} else {
			top = append(top, n)
		}
	}

	for _, e := range entries {
		if e.level == 0 {
			appendNode(e.node)
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].level >= e.level {
			stack = stack[:len(stack)-1]
		}
		group := &notebook.CellGroup{Header: e.node.(*notebook.Cell)}
		appendNode(group)
		stack = append(stack, openGroup{group: group, level: e.level})
	}

	return flattenEmptyGroups(top)
}

// flattenEmptyGroups replaces childless groups with their header cell.
func flattenEmptyGroups(nodes []notebook.Node) []notebook.Node {
	out := make([]notebook.Node, 0, len(nodes))
	for _, n := range nodes {
		if g, ok := n.(*notebook.CellGroup); ok {
			g.Children = flattenEmptyGroups(g.Children)
			if len(g.Children) == 0 {
				out = append(out, g.Header)
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
