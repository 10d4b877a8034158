package thought

import (
	"fmt"
	"math"
	"time"
)

// Context is everything a metric needs: the collection, the instant the
// analysis runs at and the timezone used for wall-clock bucketing.
// A Context is read only once built.
type Context struct {
	Thoughts []Thought
	Now      time.Time
	Location *time.Location
}

// NewContext validates the collection and returns an analysis context.
// An empty collection is valid; metrics over it fail with ErrNoData.
// Zero-norm embeddings are accepted here and only fail the cosine-based
// metrics that touch them.
func NewContext(thoughts []Thought, now time.Time, loc *time.Location) (*Context, error) {
	if loc == nil {
		loc = time.UTC
	}
	dim := -1
	for i, t := range thoughts {
		if t.Timestamp.After(now) {
			return nil, fmt.Errorf("thought %d (%s): %w", i, t.ID, ErrFutureThought)
		}
		if math.IsNaN(t.Activation) || math.IsInf(t.Activation, 0) {
			return nil, fmt.Errorf("thought %d (%s): activation is not finite", i, t.ID)
		}
		if t.Modality != Text && t.Modality != Image {
			return nil, fmt.Errorf("thought %d (%s): %w", i, t.ID, ErrUnknownModality)
		}
		if dim == -1 {
			dim = len(t.Embedding)
		} else if len(t.Embedding) != dim {
			return nil, fmt.Errorf("thought %d (%s): got %d, want %d: %w",
				i, t.ID, len(t.Embedding), dim, ErrDimensionMismatch)
		}
	}
	return &Context{Thoughts: thoughts, Now: now, Location: loc}, nil
}

// FixedZone returns the UTC+offset zone the dashboard is configured with.
func FixedZone(offsetHours int) *time.Location {
	if offsetHours == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// Len returns the number of thoughts.
func (c *Context) Len() int {
	return len(c.Thoughts)
}

// Dim returns the embedding dimensionality, or 0 for an empty collection.
func (c *Context) Dim() int {
	if len(c.Thoughts) == 0 {
		return 0
	}
	return len(c.Thoughts[0].Embedding)
}

// Embeddings returns the embedding of every thought, in collection order.
func (c *Context) Embeddings() [][]float64 {
	out := make([][]float64, len(c.Thoughts))
	for i, t := range c.Thoughts {
		out[i] = t.Embedding
	}
	return out
}

// TextThoughts returns the text-modality thoughts, in collection order.
func (c *Context) TextThoughts() []Thought {
	var out []Thought
	for _, t := range c.Thoughts {
		if t.IsText() {
			out = append(out, t)
		}
	}
	return out
}

// Oldest returns the earliest creation time in the collection.
func (c *Context) Oldest() (time.Time, error) {
	if len(c.Thoughts) == 0 {
		return time.Time{}, ErrNoData
	}
	oldest := c.Thoughts[0].Timestamp
	for _, t := range c.Thoughts[1:] {
		if t.Timestamp.Before(oldest) {
			oldest = t.Timestamp
		}
	}
	return oldest, nil
}

// Age returns how long before Now the collection started.
func (c *Context) Age() (time.Duration, error) {
	oldest, err := c.Oldest()
	if err != nil {
		return 0, err
	}
	return c.Now.Sub(oldest), nil
}
