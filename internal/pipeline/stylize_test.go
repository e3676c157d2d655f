package pipeline

import (
	"reflect"
	"testing"

	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
)

func TestStylize_StyleComposition(t *testing.T) {
	t.Parallel()

	text := func(s string) *markdown.Text { return &markdown.Text{Value: s} }

	tests := []struct {
		name    string
		inlines []markdown.Inline
		want    notebook.StyledRun
	}{
		{
			name:    "plain text",
			inlines: []markdown.Inline{text("hello")},
			want:    notebook.StyledRun{{Text: "hello"}},
		},
		{
			name: "emphasis",
			inlines: []markdown.Inline{
				&markdown.Emphasis{Children: []markdown.Inline{text("x")}},
			},
			want: notebook.StyledRun{{Text: "x", Style: notebook.StyleItalic}},
		},
		{
			name: "strong containing emphasis",
			inlines: []markdown.Inline{
				&markdown.Strong{Children: []markdown.Inline{
					&markdown.Emphasis{Children: []markdown.Inline{text("x")}},
				}},
			},
			want: notebook.StyledRun{{Text: "x", Style: notebook.StyleBold | notebook.StyleItalic}},
		},
		{
			name: "emphasis containing strong",
			inlines: []markdown.Inline{
				&markdown.Emphasis{Children: []markdown.Inline{
					&markdown.Strong{Children: []markdown.Inline{text("x")}},
				}},
			},
			want: notebook.StyledRun{{Text: "x", Style: notebook.StyleBold | notebook.StyleItalic}},
		},
		{
			name: "nested same style is idempotent",
			inlines: []markdown.Inline{
				&markdown.Strong{Children: []markdown.Inline{
					&markdown.Strong{Children: []markdown.Inline{text("x")}},
				}},
			},
			want: notebook.StyledRun{{Text: "x", Style: notebook.StyleBold}},
		},
		{
			name: "code span ignores surrounding styles",
			inlines: []markdown.Inline{
				&markdown.Strong{Children: []markdown.Inline{
					&markdown.CodeSpan{Value: "verbatim"},
				}},
			},
			want: notebook.StyledRun{{Text: "verbatim", Code: true}},
		},
		{
			name: "strikethrough",
			inlines: []markdown.Inline{
				&markdown.Strikethrough{Children: []markdown.Inline{text("gone")}},
			},
			want: notebook.StyledRun{{Text: "gone", Style: notebook.StyleStrike}},
		},
		{
			name: "link label keeps styling",
			inlines: []markdown.Inline{
				&markdown.Link{
					Destination: "https://example.com",
					Children: []markdown.Inline{
						&markdown.Strong{Children: []markdown.Inline{text("bold label")}},
					},
				},
			},
			want: notebook.StyledRun{{
				Text:  "bold label",
				Style: notebook.StyleBold,
				Link:  "https://example.com",
			}},
		},
		{
			name: "autolink display equals destination",
			inlines: []markdown.Inline{
				&markdown.AutoLink{Destination: "https://example.com"},
			},
			want: notebook.StyledRun{{
				Text: "https://example.com",
				Link: "https://example.com",
			}},
		},
		{
			name:    "hard break",
			inlines: []markdown.Inline{text("a"), &markdown.HardBreak{}, text("b")},
			want: notebook.StyledRun{
				{Text: "a"},
				{Break: true},
				{Text: "b"},
			},
		},
		{
			name: "image degrades to alt text",
			inlines: []markdown.Inline{
				&markdown.Image{Alt: "diagram", Destination: "diagram.png"},
			},
			want: notebook.StyledRun{{Text: "diagram"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Stylize(tt.inlines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Stylize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

// Style composition must be commutative: the order in which bold and
// italic wrap each other cannot be observed in the output.
func TestStylize_Commutativity(t *testing.T) {
	t.Parallel()

	boldItalic := Stylize([]markdown.Inline{
		&markdown.Strong{Children: []markdown.Inline{
			&markdown.Emphasis{Children: []markdown.Inline{&markdown.Text{Value: "x"}}},
		}},
	})
	italicBold := Stylize([]markdown.Inline{
		&markdown.Emphasis{Children: []markdown.Inline{
			&markdown.Strong{Children: []markdown.Inline{&markdown.Text{Value: "x"}}},
		}},
	})

	if !reflect.DeepEqual(boldItalic, italicBold) {
		t.Errorf("Strong∘Emphasis = %#v, Emphasis∘Strong = %#v; want equal", boldItalic, italicBold)
	}
}
