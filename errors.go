package md2nb

import (
	"errors"

	"github.com/ConnorGray/md2nb/internal/markdown"
	"github.com/ConnorGray/md2nb/internal/notebook"
	"github.com/ConnorGray/md2nb/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInvalidUTF8   = errors.New("markdown content is not valid UTF-8")

	// Stage errors, re-exported so callers can classify with errors.Is
	// without importing internal packages.
	ErrUnresolvedReference  = markdown.ErrUnresolvedReference
	ErrMalformedTree        = pipeline.ErrMalformedTree
	ErrUnencodableCharacter = notebook.ErrUnencodableCharacter
)
