package source

import (
	"path/filepath"
	"strings"
)

// File represents one unit of input with its content and metadata.
type File struct {
	Name    string // Display name (e.g., "animals.tova", "<fixture>")
	Path    string // Full file path (empty for in-memory input)
	Content string // The raw input text
	lines   []string
}

// New creates a file with an explicit display name.
func New(name, path, content string) *File {
	return &File{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// FromFile creates a File from a file path and its content.
func FromFile(path, content string) *File {
	return New(filepath.Base(path), path, content)
}

// FromString creates an in-memory file, used by fixtures and tests.
func FromString(content string) *File {
	return New("<fixture>", "", content)
}

// Lines returns the content split into lines (cached).
func (f *File) Lines() []string {
	if f.lines == nil {
		f.lines = strings.Split(f.Content, "\n")
	}
	return f.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (f *File) DisplayPath() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}
