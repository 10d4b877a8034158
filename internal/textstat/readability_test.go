package textstat

import (
	"errors"
	"math"
	"testing"
)

func TestSyllableCount(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"this", 1},
		{"a", 1},
		{"apple", 1}, // leading vowel + "e" after "l", minus the trailing e
		{"simple", 1},
		{"sentence", 2},
		{"sentences", 3},
		{"total", 2},
		{"readability", 5},
		{"Yellow", 2},
		{"the", 1},
		{"rhythm", 1},
		{"", 1},
	}
	for _, c := range cases {
		if got := SyllableCount(c.word); got != c.want {
			t.Errorf("SyllableCount(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestTokenization(t *testing.T) {
	text := "This is a simple test sentence. It has two sentences total."
	if got := len(Sentences(text)); got != 2 {
		t.Errorf("got %d sentences, want 2", got)
	}
	if got := len(Words(text)); got != 11 {
		t.Errorf("got %d words, want 11", got)
	}
	if got := len(Sentences("Wait... what?! Really")); got != 3 {
		t.Errorf("got %d sentences, want 3", got)
	}
}

func TestReadability(t *testing.T) {
	text := "This is a simple test sentence. It has two sentences total."
	got, err := Readability(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// syllables: this1 is1 a1 simple1 test1 sentence2 it1 has1 two1 sentences3 total2 = 15
	want := 0.39*(11.0/2.0) + 11.8*(15.0/11.0) - 15.59
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %g, want %g", got, want)
	}

	again, _ := Readability(text)
	if again != got {
		t.Error("readability is not deterministic")
	}
}

func TestReadabilityInsufficientText(t *testing.T) {
	for _, text := range []string{"", "   ", "...!?"} {
		if _, err := Readability(text); !errors.Is(err, ErrInsufficientText) {
			t.Errorf("Readability(%q): expected ErrInsufficientText, got %v", text, err)
		}
	}
}

func TestReadingTimeSeconds(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven twelve thirteen"
	if got := ReadingTimeSeconds(text); math.Abs(got-6) > 1e-12 {
		t.Errorf("got %g, want 6", got)
	}
	if got := ReadingTimeSeconds(""); got != 0 {
		t.Errorf("got %g, want 0", got)
	}
}
