package textstat

import (
	"reflect"
	"testing"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestKeyPhrases(t *testing.T) {
	got := KeyPhrases("We trained neural networks and compared the kernel functions.")
	for _, want := range []string{"network", "neural network", "kernel", "function", "kernel function"} {
		if !contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	for _, unwanted := range []string{"trained", "compared", "the", "and"} {
		if contains(got, unwanted) {
			t.Errorf("unexpected %q in %q", unwanted, got)
		}
	}
}

func TestKeyPhrasesSkipsStopwordsAndNumbers(t *testing.T) {
	got := KeyPhrases("It is what it is in 2024.")
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %q", got)
	}
}

func TestFrequentKeyPhrasesIgnoresVerbs(t *testing.T) {
	text := "I keep thinking about the orchard. Thinking about pruning the orchard again. Still thinking, orchard in bloom."
	got := FrequentKeyPhrases(text, 2)
	if !reflect.DeepEqual(got, []string{"orchard"}) {
		t.Errorf("got %q, want [orchard]", got)
	}
}

func TestFrequentKeyPhrases(t *testing.T) {
	text := "Walked through the orchard at dawn. The orchard smells of apples. Planning a new orchard layout."
	got := FrequentKeyPhrases(text, 2)
	if !reflect.DeepEqual(got, []string{"orchard"}) {
		t.Errorf("got %q, want [orchard]", got)
	}

	if got := FrequentKeyPhrases("The orchards were old. An orchard was sold. We saw the orchard.", 2); !reflect.DeepEqual(got, []string{"orchard"}) {
		t.Errorf("plural forms should merge, got %q", got)
	}
}
