// Package extract derives structural feature counts from raw text. Only the
// counts leave this package; the text itself is never retained.
package extract

// #region imports
import (
	"strings"
	"unicode"

	"github.com/mwestbrook/prismatic/go-engine/internal/signature"
)

// #endregion

// #region extractor

// Extractor tokenizes text and counts the structural markers that feed a
// dimensional signature.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Features counts the structural markers of text and returns them as a
// feature record. The record carries no fragment of the input.
func (e *Extractor) Features(text string) signature.FeatureRecord {
	lower := strings.ToLower(text)
	words := tokenize(lower)

	var rec signature.FeatureRecord
	rec.WordCount = len(words)
	rec.ClauseCount = countClauses(text)
	rec.Exclamations = strings.Count(text, "!")
	rec.ThematicRepeats = countThematicRepeats(words)
	rec.MetaphorHits = countMetaphors(words)

	for i, w := range words {
		switch {
		case contains(activationMarkers, w):
			if i > 0 && contains(negationMarkers, words[i-1]) {
				rec.NegatedActivationHits++
			} else {
				rec.ActivationHits++
			}
		case contains(amplifierMarkers, w):
			rec.AmplifierHits++
		}
		if contains(allPronouns, w) {
			rec.TotalPronouns++
			if contains(collectivePronouns, w) {
				rec.CollectivePronouns++
			}
		}
		if contains(eternalMarkers, w) {
			rec.EternalHits++
		}
		if contains(ephemeralMarkers, w) {
			rec.EphemeralHits++
		}
	}
	return rec
}

// #endregion extractor

// #region helpers

// tokenize splits lowered text into alphanumeric word tokens, keeping
// apostrophes so contractions match the negation table.
func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// countClauses approximates clause boundaries from punctuation. A text with
// no punctuation still counts as one clause when non-empty.
func countClauses(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case ',', ';', ':', '.', '!', '?':
			n++
		}
	}
	if n == 0 && strings.TrimSpace(text) != "" {
		n = 1
	}
	return n
}

// countThematicRepeats counts concept words that occur more than once;
// each extra occurrence of a theme is one repeat.
func countThematicRepeats(words []string) int {
	seen := make(map[string]int)
	for _, w := range words {
		if contains(thematicConcepts, w) {
			seen[w]++
		}
	}
	repeats := 0
	for _, n := range seen {
		if n > 1 {
			repeats += n - 1
		}
	}
	return repeats
}

// countMetaphors counts bridge words flanked by content words on both sides,
// a cheap proxy for figurative construction.
func countMetaphors(words []string) int {
	hits := 0
	for i := 1; i < len(words)-1; i++ {
		if !contains(metaphorBridges, words[i]) {
			continue
		}
		if isContentWord(words[i-1]) && isContentWord(words[i+1]) {
			hits++
		}
	}
	return hits
}

// isContentWord filters out pronouns and short function words.
func isContentWord(w string) bool {
	if len(w) < 3 {
		return false
	}
	return !contains(allPronouns, w)
}

func contains(table []string, w string) bool {
	for _, t := range table {
		if t == w {
			return true
		}
	}
	return false
}

// #endregion helpers
