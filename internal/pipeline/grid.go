package pipeline

import (
	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

// BuildGrid converts a table block into a fixed-column grid. The column
// count is the maximum over all rows; short rows are padded with empty
// cells rather than rejected. Every grid cell has word wrap enabled so
// long content reflows instead of overflowing, and each column carries
// the alignment from the table's delimiter row (left by default).
func BuildGrid(t *markdown.Table) *notebook.Grid {
	columns := len(t.Header)
	if len(t.Alignments) > columns {
		columns = len(t.Alignments)
	}
	for _, row := range t.Body {
		if len(row) > columns {
			columns = len(row)
		}
	}

	grid := &notebook.Grid{}
	for col := 0; col < columns; col++ {
		align := markdown.AlignDefault
		if col < len(t.Alignments) {
			align = t.Alignments[col]
		}
		grid.Alignments = append(grid.Alignments, gridAlignment(align))
	}

	grid.Rows = append(grid.Rows, buildRow(t.Header, columns))
	for _, row := range t.Body {
		grid.Rows = append(grid.Rows, buildRow(row, columns))
	}
	return grid
}

func buildRow(row []markdown.TableCell, columns int) []notebook.GridCell {
	cells := make([]notebook.GridCell, 0, columns)
	for _, cell := range row {
		content := Stylize(cell.Inlines)
		if len(content) == 0 {
			content = notebook.StyledRun{{Text: ""}}
		}
		cells = append(cells, notebook.GridCell{Content: content, Wrap: true})
	}
	for len(cells) < columns {
		cells = append(cells, notebook.GridCell{
			Content: notebook.StyledRun{{Text: ""}},
			Wrap:    true,
		})
	}
	return cells
}

func gridAlignment(a markdown.Alignment) notebook.Alignment {
	switch a {
	case markdown.AlignCenter:
		return notebook.AlignCenter
	case markdown.AlignRight:
		return notebook.AlignRight
	default:
		return notebook.AlignLeft
	}
}
