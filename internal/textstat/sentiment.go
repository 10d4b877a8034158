package textstat

import (
	"math"
	"strings"
	"unicode"
)

// negationFactor flips and dampens the polarity of a negated word.
const negationFactor = -0.5

// Score is a lexicon-based sentiment assessment.
type Score struct {
	Polarity     float64 `json:"polarity"`     // -1 negative .. 1 positive
	Subjectivity float64 `json:"subjectivity"` // 0 objective .. 1 subjective
}

// Objectivity returns 1 - Subjectivity.
func (s Score) Objectivity() float64 {
	return 1 - s.Subjectivity
}

// Sentiment scores text by averaging the lexicon entries it contains.
// A preceding intensifier scales a hit, a preceding negation within the
// same clause flips its polarity. Text without lexicon hits is neutral
// and fully objective.
func Sentiment(text string) (Score, error) {
	tokens := sentimentTokens(text)
	if len(tokens) == 0 {
		return Score{}, ErrInsufficientText
	}

	var polarity, subjectivity float64
	hits := 0
	negated := false
	intensity := 1.0
	for _, tok := range tokens {
		if tok == "" {
			// clause boundary
			negated = false
			intensity = 1.0
			continue
		}
		if negations[tok] {
			negated = true
			continue
		}
		if f, ok := intensifiers[tok]; ok {
			intensity *= f
			continue
		}
		e, ok := lexicon[tok]
		if !ok {
			intensity = 1.0
			continue
		}
		p := e.polarity * intensity
		if negated {
			p *= negationFactor
			negated = false
		}
		polarity += p
		subjectivity += math.Min(1, e.subjectivity*intensity)
		hits++
		intensity = 1.0
	}

	if hits == 0 {
		return Score{}, nil
	}
	n := float64(hits)
	return Score{
		Polarity:     clamp(polarity/n, -1, 1),
		Subjectivity: clamp(subjectivity/n, 0, 1),
	}, nil
}

// sentimentTokens lowercases text into words, splitting contractions so
// "isn't" yields "is" and "n't", and emits "" at clause punctuation.
func sentimentTokens(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := b.String()
		b.Reset()
		if strings.HasSuffix(w, "n't") && len(w) > 3 {
			out = append(out, w[:len(w)-3], "n't")
			return
		}
		out = append(out, strings.Trim(w, "'"))
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || r == '\'' || r == '’':
			if r == '’' {
				r = '\''
			}
			b.WriteRune(r)
		case strings.ContainsRune(".,;:!?", r):
			flush()
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		default:
			flush()
		}
	}
	flush()
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
