// Package thought holds the conceptarium data model shared by every metric.
package thought

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoData is returned when a metric needs at least one value
	// (mean, max, percentile) and the input has none.
	ErrNoData = errors.New("no data for this metric")

	// ErrFutureThought is returned when a thought was created after the
	// reference instant of an analysis.
	ErrFutureThought = errors.New("thought timestamp is after the reference instant")

	// ErrDimensionMismatch is returned when embeddings in one collection
	// have different lengths.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnknownModality is returned when a record names a modality that
	// is neither text nor image under any known naming scheme.
	ErrUnknownModality = errors.New("unknown modality")
)

// Modality is the kind of content a thought carries.
type Modality int

const (
	Text Modality = iota
	Image
)

func (m Modality) String() string {
	switch m {
	case Text:
		return "text"
	case Image:
		return "image"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// MarshalText encodes the canonical name so JSON output never carries
// the legacy "language"/"imagery" names.
func (m Modality) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts both naming schemes.
func (m *Modality) UnmarshalText(b []byte) error {
	parsed, err := ParseModality(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseModality normalizes "text"/"language" and "image"/"imagery".
func ParseModality(s string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "language":
		return Text, nil
	case "image", "imagery":
		return Image, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModality, s)
	}
}

// Thought is one entry of a conceptarium.
type Thought struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Modality   Modality  `json:"modality"`
	Content    string    `json:"content,omitempty"`
	Embedding  []float64 `json:"embedding"`
	Activation float64   `json:"activation"`
}

// IsText reports whether the thought carries text content.
func (t Thought) IsText() bool {
	return t.Modality == Text
}

// FromUnix converts fractional seconds since the epoch to a time.Time.
func FromUnix(seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
