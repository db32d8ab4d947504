package verification

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var levenshtein = metrics.NewLevenshtein()

// similarityRatio computes a normalized edit-distance similarity between two
// strings (1.0 = identical). Inputs are expected to be normalized already.
func similarityRatio(a, b string) float64 {
	return strutil.Similarity(a, b, levenshtein)
}

// FuzzyMatch reports whether pattern occurs in text, tolerating OCR noise up
// to the given similarity threshold. On success it also returns the matching
// span of the original text with its casing preserved.
//
// An exact substring match on the normalized strings is the fast path. When
// that fails, a window of pattern's word count slides across the text's words
// and the window with the highest similarity >= threshold wins.
func FuzzyMatch(text, pattern string, threshold float64) (bool, string) {
	textNorm := NormalizeText(text)
	patternNorm := NormalizeText(pattern)

	if patternNorm == "" {
		return true, ""
	}

	if strings.Contains(textNorm, patternNorm) {
		// Recover the original-cased span when the raw text lines up;
		// spacing differences fall through to the word-window search.
		if idx := strings.Index(strings.ToLower(text), patternNorm); idx >= 0 {
			if span, ok := lowerSpan(text, idx, idx+len(patternNorm)); ok {
				return true, span
			}
		}
	}

	textWords := strings.Fields(textNorm)
	origWords := strings.Fields(text)
	patternWords := strings.Fields(patternNorm)

	if len(patternWords) > len(textWords) {
		return false, ""
	}

	bestIdx := -1
	bestSim := 0.0
	for i := 0; i+len(patternWords) <= len(textWords); i++ {
		window := strings.Join(textWords[i:i+len(patternWords)], " ")
		sim := similarityRatio(window, patternNorm)
		if sim >= threshold && sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return false, ""
	}
	return true, strings.Join(origWords[bestIdx:bestIdx+len(patternWords)], " ")
}

// lowerSpan maps a byte range located in strings.ToLower(text) back to the
// corresponding span of text. Lowercasing can change a rune's byte length
// (e.g. U+023A is two bytes, its lowercase U+2C65 is three), so offsets into
// the lowered string cannot index the original directly; the two strings are
// walked rune by rune instead. Returns false when the range does not fall on
// rune boundaries.
func lowerSpan(text string, lowerStart, lowerEnd int) (string, bool) {
	start := -1
	lowerOff := 0
	for i, r := range text {
		if lowerOff == lowerStart {
			start = i
		}
		if lowerOff == lowerEnd {
			if start < 0 {
				return "", false
			}
			return text[start:i], true
		}
		lowerOff += utf8.RuneLen(unicode.ToLower(r))
	}
	if lowerOff == lowerEnd && start >= 0 {
		return text[start:], true
	}
	return "", false
}
