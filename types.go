package md2nb

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
}

// FrontMatter holds the fields read from a leading YAML front matter
// block. Unknown fields are ignored.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Date   string `yaml:"date"`
}

// Result contains the conversion output.
type Result struct {
	// Notebook is the serialized notebook document, UTF-8 encoded.
	Notebook []byte
	// FrontMatter is the parsed front matter, nil if the document had
	// none.
	FrontMatter *FrontMatter
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	extraLanguages map[string]string
}

// WithLanguage registers an additional recognized fenced-code language
// tag and the external-evaluation language identifier it maps to.
// Registering a default tag overrides its identifier. Lookup stays
// case-sensitive and exact.
func WithLanguage(tag, kernel string) Option {
	if tag == "" || kernel == "" {
		panic("md2nb: WithLanguage tag and kernel must be non-empty")
	}
	return func(c *Converter) {
		if c.cfg.extraLanguages == nil {
			c.cfg.extraLanguages = map[string]string{}
		}
		c.cfg.extraLanguages[tag] = kernel
	}
}
