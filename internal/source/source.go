// Package source loads a conceptarium's thoughts from wherever they live:
// the conceptarium HTTP API, a JSON dump, or a Qdrant, PostgreSQL or Neo4j
// mirror. Every source returns normalized thought.Thought values.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nidhogg/ideoscope/internal/thought"
)

// ErrFetch is returned when the thoughts could not be retrieved. An empty
// collection is not an error.
var ErrFetch = errors.New("fetch thoughts")

// Source yields the full thought collection.
type Source interface {
	Thoughts(ctx context.Context) ([]thought.Thought, error)
	Name() string
}

// record is a thought as the conceptarium serializes it.
type record struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Timestamp  float64   `json:"timestamp"`
	Modality   string    `json:"modality"`
	Content    string    `json:"content"`
	Embedding  []float64 `json:"embedding"`
	Activation float64   `json:"activation"`
}

func (r record) toThought() (thought.Thought, error) {
	id := r.ID
	if id == "" {
		id = r.Filename
	}
	m, err := thought.ParseModality(r.Modality)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("thought %s: %w", id, err)
	}
	content := r.Content
	if m == thought.Image {
		content = ""
	}
	return thought.Thought{
		ID:         id,
		Timestamp:  thought.FromUnix(r.Timestamp),
		Modality:   m,
		Content:    content,
		Embedding:  r.Embedding,
		Activation: r.Activation,
	}, nil
}

type findResponse struct {
	AuthorizedThoughts []record `json:"authorized_thoughts"`
}

// decodeRecords accepts either {"authorized_thoughts": [...]} or a bare
// array of records.
func decodeRecords(data []byte) ([]thought.Thought, error) {
	var records []record
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode thoughts: %w", err)
		}
	} else {
		var resp findResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, fmt.Errorf("decode thoughts: %w", err)
		}
		records = resp.AuthorizedThoughts
	}

	thoughts := make([]thought.Thought, 0, len(records))
	for _, r := range records {
		t, err := r.toThought()
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	return thoughts, nil
}

func fetchError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFetch, op, err)
}
