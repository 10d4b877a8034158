package textstat

import (
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/jinzhu/inflection"
)

// minKeywordLen drops short fragments ("ok", "eh") from candidate runs.
const minKeywordLen = 3

var stopwords = toSet(`a about above after again against all also am an and any are as at be
because been before being below between both but by can could did do does doing down
during each either else ever every few for from further get gets got had has have having
he her here hers herself him himself his how however i if in into is it its itself just
least less let like made make many may me might more most much must my myself need neither
new no nor not now of off often on once one only or other our ours ourselves out over own
per quite rather really same say says she should since so some still such than that the
their theirs them themselves then there these they thing things this those though through
thus to too under until up upon us use used using very via was way we well were what when
where whether which while who whom whose why will with within without would yet you your
yours yourself yourselves it's i'm i've don't can't won't isn't that's there's`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// KeyPhrases returns noun-phrase keyword candidates from text, in order
// of appearance and with repeats. Tokens are part-of-speech tagged and cut
// into runs of adjectives and nouns; every noun is a candidate, and so is
// every adjacent pair in a run that ends in a noun ("apple orchard",
// "neural network"). Candidates are lowercased and singularized so
// "orchards" and "orchard" count together.
func KeyPhrases(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	var out []string
	var run []prose.Token
	emit := func() {
		for i, tok := range run {
			if !isNoun(tok.Tag) {
				continue
			}
			w := strings.ToLower(tok.Text)
			out = append(out, inflection.Singular(w))
			if i > 0 {
				out = append(out, inflection.Singular(strings.ToLower(run[i-1].Text)+" "+w))
			}
		}
		run = run[:0]
	}
	for _, tok := range doc.Tokens() {
		if !isNominal(tok.Tag) || !isContentWord(strings.ToLower(tok.Text)) {
			emit()
			continue
		}
		run = append(run, tok)
	}
	emit()
	return out
}

// isNoun reports a Penn Treebank noun tag (NN, NNS, NNP, NNPS).
func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func isNominal(tag string) bool {
	return isNoun(tag) || strings.HasPrefix(tag, "JJ")
}

// FrequentKeyPhrases counts KeyPhrases over text and keeps those seen more
// than minCount times, sorted by descending count then alphabetically.
func FrequentKeyPhrases(text string, minCount int) []string {
	counts := make(map[string]int)
	for _, k := range KeyPhrases(text) {
		counts[k]++
	}
	var out []string
	for k, c := range counts {
		if c > minCount {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

func isContentWord(w string) bool {
	if len([]rune(w)) < minKeywordLen || stopwords[w] {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}
