// Package markdown defines the Markdown AST consumed by the conversion
// pipeline, a goldmark-backed parser frontend that produces it, and the
// normalizer that resolves reference links and annotates nesting depth.
//
// The AST is deliberately the package's own data model rather than a
// re-export of goldmark's: goldmark nodes reference byte offsets into the
// source and carry none of the annotations (nesting depth, reference
// labels) the later stages depend on. Each stage receives the tree as a
// value and never mutates it in place.
package markdown

// Document is a parsed Markdown document: an ordered sequence of blocks
// plus the link-reference table collected in the same parse pass.
type Document struct {
	Blocks []Block
	Refs   ReferenceTable
}

// ReferenceTable maps normalized link labels to destinations.
type ReferenceTable map[string]string

// Block is a structural Markdown node.
type Block interface{ block() }

// Heading is an ATX or setext heading, level 1-6.
type Heading struct {
	Level   int
	Inlines []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// List is an ordered or unordered list. Depth is the zero-based count of
// ancestor lists, assigned by Normalize.
type List struct {
	Ordered bool
	Start   int
	Depth   int
	Items   []*ListItem
}

// TaskState records a GFM task-list marker on a list item.
type TaskState int

// Task marker states.
const (
	TaskNone TaskState = iota
	TaskOpen
	TaskDone
)

// ListItem holds the blocks of one list item. Depth matches the owning
// list's depth. A ListItem is only valid inside a List; the cell mapper
// rejects one found anywhere else.
type ListItem struct {
	Depth  int
	Task   TaskState
	Blocks []Block
}

// BlockQuote is a quoted region. Depth is the zero-based count of
// ancestor block quotes, assigned by Normalize.
type BlockQuote struct {
	Depth  int
	Blocks []Block
}

// CodeBlock is a fenced or indented code block. Language is the first
// word of the fence info string, empty for indented blocks. Literal is
// the verbatim code text including interior newlines.
type CodeBlock struct {
	Language string
	Literal  string
	Fenced   bool
}

// Alignment is a table column alignment taken from the delimiter row.
type Alignment int

// Column alignments.
const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table is a GFM table with one header row and zero or more body rows.
type Table struct {
	Alignments []Alignment
	Header     []TableCell
	Body       [][]TableCell
}

// TableCell holds the inline content of one table cell.
type TableCell struct {
	Inlines []Inline
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*List) block()          {}
func (*ListItem) block()      {}
func (*BlockQuote) block()    {}
func (*CodeBlock) block()     {}
func (*Table) block()         {}
func (*ThematicBreak) block() {}

// Inline is a textual Markdown node.
type Inline interface{ inline() }

// Text is a literal text run.
type Text struct {
	Value string
}

// Emphasis is *italic* content.
type Emphasis struct {
	Children []Inline
}

// Strong is **bold** content.
type Strong struct {
	Children []Inline
}

// Strikethrough is ~~struck~~ content (GFM).
type Strikethrough struct {
	Children []Inline
}

// CodeSpan is `inline code`. Its value is verbatim and never restyled.
type CodeSpan struct {
	Value string
}

// Link is a hyperlink. Inline links carry Destination directly.
// Reference-style links carry RefLabel and an empty Destination until
// Normalize resolves them against the reference table.
type Link struct {
	Destination string
	RefLabel    string
	Children    []Inline
}

// AutoLink is a bare or angle-bracketed URL; its display text equals its
// destination.
type AutoLink struct {
	Destination string
}

// Image degrades to its alt text during mapping; embedding is out of
// scope.
type Image struct {
	Alt         string
	Destination string
}

// HardBreak forces a line boundary within the same cell.
type HardBreak struct{}

// SoftBreak is a source line break that reflows to a single space.
type SoftBreak struct{}

func (*Text) inline()          {}
func (*Emphasis) inline()      {}
func (*Strong) inline()        {}
func (*Strikethrough) inline() {}
func (*CodeSpan) inline()      {}
func (*Link) inline()          {}
func (*AutoLink) inline()      {}
func (*Image) inline()         {}
func (*HardBreak) inline()     {}
func (*SoftBreak) inline()     {}
