package md2nb

import (
	"regexp"
	"strings"

	"github.com/ConnorGray/md2nb/internal/yamlutil"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// markdownPreprocessor defines the contract for markdown preprocessing.
type markdownPreprocessor interface {
	Preprocess(content string) (body string, meta *FrontMatter)
}

// commonMarkPreprocessor normalizes line endings and strips YAML front
// matter before CommonMark parsing.
type commonMarkPreprocessor struct{}

// Preprocess prepares Markdown for parsing and returns the parsed front
// matter, if any.
func (p *commonMarkPreprocessor) Preprocess(content string) (string, *FrontMatter) {
	content = normalizeLineEndings(content)
	return extractFrontMatter(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// extractFrontMatter splits a leading `---` YAML block off the content.
// A block that is not valid YAML is left in place and treated as
// ordinary Markdown (a thematic break followed by text), matching the
// lenient behavior of common Markdown tooling.
func extractFrontMatter(content string) (string, *FrontMatter) {
	if !strings.HasPrefix(content, "---\n") {
		return content, nil
	}

	rest := content[len("---\n"):]
	var block, body string
	if idx := strings.Index(rest, "\n---\n"); idx >= 0 {
		block = rest[:idx]
		body = rest[idx+len("\n---\n"):]
	} else if strings.HasSuffix(rest, "\n---") {
		block = strings.TrimSuffix(rest, "\n---")
	} else {
		return content, nil
	}

	var meta FrontMatter
	if err := yamlutil.Unmarshal([]byte(block), &meta); err != nil {
		return content, nil
	}
	return body, &meta
}
