// Package textstat scores text spans: syllables, readability, sentiment,
// reading time and keyword candidates.
package textstat

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrInsufficientText is returned when a span has no words or no
// sentences to average over.
var ErrInsufficientText = errors.New("insufficient text")

// WordsPerMinute is the reading speed assumed by ReadingTimeSeconds.
const WordsPerMinute = 130

const vowels = "aeiouy"

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// SyllableCount estimates syllables from vowel-group transitions: a leading
// vowel counts, every vowel after a non-vowel counts, a trailing "e" is
// silent, and every word has at least one syllable.
func SyllableCount(word string) int {
	w := []rune(strings.ToLower(word))
	if len(w) == 0 {
		return 1
	}
	isVowel := func(r rune) bool { return strings.ContainsRune(vowels, r) }

	count := 0
	if isVowel(w[0]) {
		count++
	}
	for i := 1; i < len(w); i++ {
		if isVowel(w[i]) && !isVowel(w[i-1]) {
			count++
		}
	}
	if w[len(w)-1] == 'e' {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Sentences splits text on runs of '.', '!' and '?', dropping blank
// fragments.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Readability returns the Flesch-Kincaid grade level of text.
func Readability(text string) (float64, error) {
	words := Words(text)
	sentences := Sentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return 0, ErrInsufficientText
	}

	syllables := 0
	for _, w := range words {
		syllables += SyllableCount(stripPunct(w))
	}

	nw := float64(len(words))
	return 0.39*(nw/float64(len(sentences))) + 11.8*(float64(syllables)/nw) - 15.59, nil
}

// ReadingTimeSeconds returns how long text takes to read at WordsPerMinute.
func ReadingTimeSeconds(text string) float64 {
	return float64(len(Words(text))) / WordsPerMinute * 60
}

func stripPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
