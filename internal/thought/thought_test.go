package thought

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseModality(t *testing.T) {
	cases := []struct {
		in   string
		want Modality
	}{
		{"text", Text},
		{"language", Text},
		{" Language ", Text},
		{"image", Image},
		{"imagery", Image},
	}
	for _, c := range cases {
		got, err := ParseModality(c.in)
		if err != nil {
			t.Fatalf("ParseModality(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseModality(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParseModality("audio"); !errors.Is(err, ErrUnknownModality) {
		t.Errorf("expected ErrUnknownModality, got %v", err)
	}
}

func TestModalityJSON(t *testing.T) {
	var rec struct {
		Modality Modality `json:"modality"`
	}
	if err := json.Unmarshal([]byte(`{"modality":"imagery"}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Modality != Image {
		t.Fatalf("got %v, want image", rec.Modality)
	}
	out, _ := json.Marshal(rec)
	if string(out) != `{"modality":"image"}` {
		t.Errorf("got %s", out)
	}
}

func TestNewContextValidation(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ok := Thought{ID: "a", Timestamp: now.Add(-time.Hour), Embedding: []float64{1, 0}}

	if _, err := NewContext([]Thought{ok}, now, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	future := ok
	future.Timestamp = now.Add(time.Minute)
	if _, err := NewContext([]Thought{future}, now, nil); !errors.Is(err, ErrFutureThought) {
		t.Errorf("expected ErrFutureThought, got %v", err)
	}

	short := ok
	short.Embedding = []float64{1}
	if _, err := NewContext([]Thought{ok, short}, now, nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	empty, err := NewContext(nil, now, nil)
	if err != nil {
		t.Fatalf("empty collection should be valid: %v", err)
	}
	if _, err := empty.Oldest(); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestFixedZone(t *testing.T) {
	if FixedZone(0) != time.UTC {
		t.Error("offset 0 should be UTC")
	}
	_, off := time.Unix(0, 0).In(FixedZone(3)).Zone()
	if off != 3*3600 {
		t.Errorf("got offset %d, want %d", off, 3*3600)
	}
}

func TestFromUnix(t *testing.T) {
	got := FromUnix(1_600_000_000.5)
	if got.Unix() != 1_600_000_000 || got.Nanosecond() != 500_000_000 {
		t.Errorf("got %v", got)
	}
}
