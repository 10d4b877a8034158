package source

import (
	"context"
	"os"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// File reads a JSON dump of a conceptarium, in either response shape.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return "file" }

func (f *File) Thoughts(ctx context.Context) ([]thought.Thought, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fetchError("read dump", err)
	}
	thoughts, err := decodeRecords(data)
	if err != nil {
		return nil, fetchError(f.path, err)
	}
	return thoughts, nil
}
