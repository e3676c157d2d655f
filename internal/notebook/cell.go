// Package notebook defines the Wolfram Notebook cell tree produced by
// the cell mapper and the serializer that renders it into the
// notebook's textual expression grammar.
package notebook

import "strings"

// StyleFlags is a bitset of inline text styles. Composition is set
// union, which makes nested style application commutative and
// idempotent: bold-inside-italic and italic-inside-bold both yield
// StyleBold|StyleItalic.
type StyleFlags uint8

// Inline style flags.
const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
	StyleStrike
)

// Span is one run of a StyledRun. Exactly one of the content forms is
// meaningful: Break marks a hard line boundary, Code carries verbatim
// inline code (Style is ignored for code), and otherwise Text carries
// styled text. A non-empty Link makes the span part of a hyperlink.
type Span struct {
	Text  string
	Style StyleFlags
	Code  bool
	Link  string
	Break bool
}

// StyledRun is an ordered sequence of styled text runs.
type StyledRun []Span

// Plain returns true if the run is a single unstyled, unlinked text
// span, in which case it serializes as a bare string.
func (r StyledRun) Plain() bool {
	return len(r) == 1 && r[0].Style == 0 && !r[0].Code && r[0].Link == "" && !r[0].Break
}

// Text concatenates the text of every span, with hard breaks rendered
// as newlines.
func (r StyledRun) Text() string {
	var b strings.Builder
	for _, s := range r {
		if s.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// CellType discriminates the notebook cell kinds.
type CellType int

// Cell kinds.
const (
	TextCell CellType = iota
	TitleCell
	SubtitleCell
	ItemCell
	BlockQuoteTextCell
	CodeCell
	ExternalLanguageCell
	TableCellType
	HorizontalRuleCell
)

// Heading style tags, levels 1 through 6.
var headingStyles = [6]string{
	"Title", "Chapter", "Section", "Subsection", "Subsubsection", "Subsubsubsection",
}

// HeadingStyle returns the style tag for a heading level in 1..6, or
// "" for a level outside that range.
func HeadingStyle(level int) string {
	if level < 1 || level > len(headingStyles) {
		return ""
	}
	return headingStyles[level-1]
}

var (
	bulletItemStyles   = [3]string{"Item", "Subitem", "Subsubitem"}
	numberedItemStyles = [3]string{"ItemNumbered", "SubitemNumbered", "SubsubitemNumbered"}
	blockQuoteStyles   = [3]string{"BlockQuote", "SubBlockQuote", "SubsubBlockQuote"}
)

// ItemStyle returns the list item style tag for the given kind and
// zero-based nesting depth. Depth saturates at the deepest tag.
func ItemStyle(ordered bool, depth int) string {
	depth = clampDepth(depth)
	if ordered {
		return numberedItemStyles[depth]
	}
	return bulletItemStyles[depth]
}

// BlockQuoteStyle returns the quote style tag for a zero-based nesting
// depth, saturating at the deepest tag.
func BlockQuoteStyle(depth int) string {
	return blockQuoteStyles[clampDepth(depth)]
}

func clampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > 2 {
		return 2
	}
	return depth
}

// WolframKernel is the language identifier for natively evaluated
// Wolfram code; such cells serialize as "Input" cells rather than
// external-evaluation cells.
const WolframKernel = "Wolfram"

// Cell is a single typed, styled content unit.
//
// Content is set for text-bearing cells, Literal for code cells (kept
// verbatim, never restyled), Language for external-language cells, and
// Grid for table cells. Nesting records the saturated list or quote
// depth the style tag was derived from.
type Cell struct {
	Type     CellType
	Style    string
	Content  StyledRun
	Literal  string
	Language string
	Grid     *Grid
	Nesting  int
}

// CellGroup groups a header cell with the cells it logically contains:
// a heading section, a nested list, or a nested block quote.
type CellGroup struct {
	Header   *Cell
	Children []Node
}

// Node is a Cell or a CellGroup.
type Node interface{ node() }

func (*Cell) node()      {}
func (*CellGroup) node() {}

// Alignment is a grid column alignment.
type Alignment int

// Grid column alignments; left is the default.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Grid is a fixed-column table body. Every row has the same length;
// short source rows are padded with empty cells by the grid builder.
type Grid struct {
	Alignments []Alignment
	Rows       [][]GridCell
}

// GridCell is one grid entry. Wrap selects the serialization that lets
// long content reflow instead of overflowing; Markdown tables always
// set it.
type GridCell struct {
	Content StyledRun
	Wrap    bool
}

// Notebook is the complete document: the ordered top-level cells and
// groups. Global notebook metadata is fixed and supplied by the
// serializer.
type Notebook struct {
	Nodes []Node
}
