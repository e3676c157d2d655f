package notebook

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnencodableCharacter reports a character with no entry in the
// serializer's escaping table (a control character other than newline
// or tab, or invalid UTF-8). Content is never silently stripped.
var ErrUnencodableCharacter = errors.New("unencodable character")

// contentTypeHeader is the standard first line of a notebook file.
const contentTypeHeader = "(* Content-type: application/vnd.wolfram.mathematica *)"

// Serialize renders the cell tree into the notebook expression grammar
// as a UTF-8 byte sequence. Output is deterministic: the same tree
// always serializes to identical bytes.
func Serialize(nb *Notebook) ([]byte, error) {
	cells := make([]Expr, 0, len(nb.Nodes))
	for _, n := range nb.Nodes {
		cells = append(cells, nodeExpr(n))
	}

	doc := Normal("Notebook",
		ListOf(cells...),
		RuleOf(Sym("WindowSize"), ListOf(Int(700), Int(770))),
		RuleOf(Sym("WindowMargins"), ListOf(
			ListOf(Sym("Automatic"), Sym("Automatic")),
			ListOf(Sym("Automatic"), Sym("Automatic")),
		)),
		RuleOf(Sym("StyleDefinitions"), Str("Default.nb")),
	)

	var sb strings.Builder
	sb.WriteString(contentTypeHeader)
	sb.WriteString("\n\n")
	if err := writeExpr(&sb, doc); err != nil {
		return nil, err
	}
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

func nodeExpr(n Node) Expr {
	switch node := n.(type) {
	case *Cell:
		return cellExpr(node)
	case *CellGroup:
		return groupExpr(node)
	default:
		panic(fmt.Sprintf("notebook: unknown node type %T", n))
	}
}

func groupExpr(g *CellGroup) Expr {
	members := make([]Expr, 0, len(g.Children)+1)
	members = append(members, cellExpr(g.Header))
	for _, child := range g.Children {
		members = append(members, nodeExpr(child))
	}
	return Normal("Cell", Normal("CellGroupData", ListOf(members...), Sym("Open")))
}

func cellExpr(c *Cell) Expr {
	switch c.Type {
	case CodeCell:
		return Normal("Cell", Str(c.Literal), Str("Program"))
	case ExternalLanguageCell:
		if c.Language == WolframKernel {
			return Normal("Cell", Str(c.Literal), Str("Input"))
		}
		return Normal("Cell", Str(c.Literal), Str("ExternalLanguage"),
			RuleOf(Sym("CellEvaluationLanguage"), Str(c.Language)))
	case TableCellType:
		return Normal("Cell", Normal("BoxData", gridBoxExpr(c.Grid)), Str("Text"))
	case HorizontalRuleCell:
		return Normal("Cell", Str(""), Str("HorizontalRule"),
			RuleOf(Sym("CellFrame"), ListOf(
				ListOf(Int(0), Int(0)),
				ListOf(Int(0), Int(2)),
			)),
			RuleOf(Sym("CellMargins"), ListOf(
				ListOf(Int(0), Int(8)),
				ListOf(Int(8), Int(8)),
			)))
	case BlockQuoteTextCell:
		args := []Expr{runExpr(c.Content), Str(c.Style)}
		args = append(args, blockQuoteOptions(c.Nesting)...)
		return Normal("Cell", args...)
	default:
		return Normal("Cell", runExpr(c.Content), Str(c.Style))
	}
}

// blockQuoteOptions gives quote cells a left frame rule and an
// indentation that grows with nesting depth, so the custom quote styles
// render sensibly under Default.nb.
func blockQuoteOptions(depth int) []Expr {
	left := int64(66 + 24*clampDepth(depth))
	return []Expr{
		RuleOf(Sym("CellFrame"), ListOf(
			ListOf(Int(2), Int(0)),
			ListOf(Int(0), Int(0)),
		)),
		RuleOf(Sym("CellMargins"), ListOf(
			ListOf(Int(left), Int(10)),
			ListOf(Int(4), Int(4)),
		)),
	}
}

// runExpr renders a StyledRun as cell content: a bare string for a
// single plain span, otherwise TextData[{...}].
func runExpr(run StyledRun) Expr {
	if run.Plain() {
		return Str(run[0].Text)
	}
	boxes := make([]Expr, 0, len(run))
	for _, span := range run {
		boxes = append(boxes, spanBox(span))
	}
	return Normal("TextData", ListOf(boxes...))
}

func spanBox(span Span) Expr {
	if span.Break {
		return Str("\n")
	}
	if span.Code {
		// Inline code ignores surrounding style flags.
		box := Normal("StyleBox", Str(span.Text), Str("InlineCode"),
			RuleOf(Sym("FontFamily"), Str("Source Code Pro")))
		if span.Link != "" {
			return buttonBox(box, span.Link)
		}
		return box
	}

	box := Str(span.Text)
	if rules := styleRules(span.Style); len(rules) > 0 {
		args := append([]Expr{box}, rules...)
		box = Normal("StyleBox", args...)
	}
	if span.Link != "" {
		return buttonBox(box, span.Link)
	}
	return box
}

// styleRules maps a style bitset to FontWeight/FontSlant/FontVariations
// rules in a fixed order, keeping serialization order-independent of
// how the styles were composed.
func styleRules(flags StyleFlags) []Expr {
	var rules []Expr
	if flags&StyleBold != 0 {
		rules = append(rules, RuleOf(Sym("FontWeight"), Str("Bold")))
	}
	if flags&StyleItalic != 0 {
		rules = append(rules, RuleOf(Sym("FontSlant"), Str("Italic")))
	}
	if flags&StyleStrike != 0 {
		rules = append(rules, RuleOf(Sym("FontVariations"),
			ListOf(RuleOf(Str("StrikeThrough"), Sym("True")))))
	}
	return rules
}

func buttonBox(display Expr, target string) Expr {
	return Normal("ButtonBox", display,
		RuleOf(Sym("BaseStyle"), Str("Hyperlink")),
		RuleOf(Sym("ButtonData"), ListOf(Normal("URL", Str(target)), Sym("None"))))
}

func gridBoxExpr(g *Grid) Expr {
	rows := make([]Expr, 0, len(g.Rows))
	for _, row := range g.Rows {
		entries := make([]Expr, 0, len(row))
		for _, cell := range row {
			entries = append(entries, gridEntryExpr(cell))
		}
		rows = append(rows, ListOf(entries...))
	}

	aligns := make([]Expr, 0, len(g.Alignments))
	for _, a := range g.Alignments {
		aligns = append(aligns, alignSym(a))
	}

	return Normal("GridBox", ListOf(rows...),
		RuleOf(Sym("GridBoxAlignment"), ListOf(
			RuleOf(Str("Columns"), ListOf(aligns...)),
		)),
		RuleOf(Sym("GridBoxDividers"), ListOf(
			RuleOf(Str("Columns"), ListOf(ListOf(Sym("True")))),
			RuleOf(Str("Rows"), ListOf(ListOf(Sym("True")))),
		)))
}

// gridEntryExpr renders one grid entry. Wrapping entries nest a full
// Cell so the front end reflows long content within the column.
func gridEntryExpr(cell GridCell) Expr {
	if cell.Wrap {
		return Normal("Cell", runExpr(cell.Content), Str("Text"))
	}
	if cell.Content.Plain() {
		return Str(cell.Content[0].Text)
	}
	boxes := make([]Expr, 0, len(cell.Content))
	for _, span := range cell.Content {
		boxes = append(boxes, spanBox(span))
	}
	return Normal("RowBox", ListOf(boxes...))
}

func alignSym(a Alignment) Expr {
	switch a {
	case AlignCenter:
		return Sym("Center")
	case AlignRight:
		return Sym("Right")
	default:
		return Sym("Left")
	}
}

//======================================
// Expression rendering
//======================================

func writeExpr(sb *strings.Builder, e Expr) error {
	switch e.kind {
	case exprSymbol:
		sb.WriteString(e.sym)
		return nil
	case exprInteger:
		fmt.Fprintf(sb, "%d", e.num)
		return nil
	case exprString:
		escaped, err := escapeString(e.str)
		if err != nil {
			return err
		}
		sb.WriteString(`"`)
		sb.WriteString(escaped)
		sb.WriteString(`"`)
		return nil
	case exprNormal:
		return writeNormal(sb, e)
	default:
		return fmt.Errorf("notebook: unknown expression kind %d", e.kind)
	}
}

func writeNormal(sb *strings.Builder, e Expr) error {
	if e.isRule() {
		if err := writeExpr(sb, e.args[0]); err != nil {
			return err
		}
		sb.WriteString("->")
		return writeExpr(sb, e.args[1])
	}

	sep := ", "
	open, close := "[", "]"
	if e.isList() {
		open, close = "{", "}"
		if isCellList(e) {
			sep = ",\n"
		}
	} else {
		sb.WriteString(e.sym)
		if e.sym == "Notebook" {
			sep = ",\n"
		}
	}

	sb.WriteString(open)
	for i, arg := range e.args {
		if i > 0 {
			sb.WriteString(sep)
		}
		if err := writeExpr(sb, arg); err != nil {
			return err
		}
	}
	sb.WriteString(close)
	return nil
}

// isCellList reports whether every element of a list is a Cell
// expression; such lists are laid out one cell per line, the way the
// front end saves notebooks.
func isCellList(e Expr) bool {
	if len(e.args) == 0 {
		return false
	}
	for _, arg := range e.args {
		if arg.kind != exprNormal || arg.sym != "Cell" {
			return false
		}
	}
	return true
}

// escapeString applies the serializer's escaping table: backslash,
// quote, newline, and tab escapes; printable ASCII verbatim; other BMP
// runes as \:XXXX and supplementary-plane runes as \|XXXXXX. Any other
// character is unencodable.
func escapeString(s string) (string, error) {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r >= 0x20 && r <= 0x7e:
			sb.WriteRune(r)
		case r == utf8.RuneError:
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return "", fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrUnencodableCharacter, i)
			}
			// A literal U+FFFD encodes like any other BMP rune.
			fmt.Fprintf(&sb, `\:%04x`, r)
		case r < 0x20 || r == 0x7f:
			return "", fmt.Errorf("%w: U+%04X", ErrUnencodableCharacter, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\:%04x`, r)
		default:
			fmt.Fprintf(&sb, `\|%06x`, r)
		}
	}
	return sb.String(), nil
}
