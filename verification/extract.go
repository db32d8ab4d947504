package verification

import (
	"regexp"
	"strconv"
	"strings"
)

// Percentage patterns in priority order; earlier patterns win on ties.
var percentagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`(\d+\.?\d*)\s*percent`),
	regexp.MustCompile(`alc\.?\s*(\d+\.?\d*)`),
	regexp.MustCompile(`alcohol\s*(\d+\.?\d*)`),
}

// Volume patterns in fixed priority order: mL, L, oz, fl oz.
var volumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:ml|milliliters?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:l|liters?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:oz|ounces?)`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*fl\.?\s*oz`),
}

var vintageYearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// Known product class vocabulary. The product-type guess returns the longest
// term present, so compound classes beat their substrings ("kentucky straight
// bourbon whiskey" over "bourbon").
var productVocabulary = []string{
	"kentucky straight bourbon whiskey",
	"straight bourbon whiskey",
	"bourbon whiskey",
	"tennessee whiskey",
	"rye whiskey",
	"irish whiskey",
	"single malt scotch whisky",
	"scotch whisky",
	"blended whiskey",
	"bourbon",
	"whiskey",
	"whisky",
	"vodka",
	"gin",
	"rum",
	"tequila",
	"brandy",
	"cognac",
	"sparkling wine",
	"table wine",
	"red wine",
	"white wine",
	"wine",
	"india pale ale",
	"pale ale",
	"lager",
	"stout",
	"porter",
	"ale",
	"beer",
}

// Keywords whose combined presence indicates an ingredients list. A single
// incidental occurrence is not enough; at least two must appear.
var ingredientsKeywords = []string{
	"ingredients", "contains", "water", "barley", "hops", "yeast", "malt",
}

// ExtractPercentage pulls an alcohol percentage out of free text. Recognized
// formats include "45%", "45 %", "45 percent", "alc. 45" and "alcohol 45".
func ExtractPercentage(text string) (float64, bool) {
	lower := strings.ToLower(text)
	for _, re := range percentagePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// ExtractVolume pulls a net-contents number out of free text, e.g. "750" from
// "750 mL". The captured numeric string is returned without unit conversion.
func ExtractVolume(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, re := range volumePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		return m[1], true
	}
	return "", false
}

// ExtractBrandName guesses the brand from OCR text by taking the first
// non-empty line longer than one character. Label layouts print the brand
// first and largest, and OCR line breaks roughly track the visual lines.
func ExtractBrandName(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 1 {
			return line, true
		}
	}
	return "", false
}

// ExtractProductType guesses the product class by scanning for known beverage
// terms and returning the longest one present.
func ExtractProductType(text string) (string, bool) {
	norm := NormalizeText(text)
	best := ""
	for _, term := range productVocabulary {
		if len(term) > len(best) && strings.Contains(norm, term) {
			best = term
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// ExtractVintageYear returns the first 4-digit token that looks like a
// plausible vintage (1900-2099).
func ExtractVintageYear(text string) (string, bool) {
	m := vintageYearRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// HasSulfiteDeclaration reports whether the text declares sulfites, covering
// both the US and UK spellings.
func HasSulfiteDeclaration(text string) bool {
	norm := NormalizeText(text)
	return strings.Contains(norm, "sulfite") || strings.Contains(norm, "sulphite")
}

// HasIngredientsList reports whether the text appears to carry an ingredients
// list, requiring at least two ingredient keywords.
func HasIngredientsList(text string) bool {
	norm := NormalizeText(text)
	hits := 0
	for _, kw := range ingredientsKeywords {
		if strings.Contains(norm, kw) {
			hits++
		}
	}
	return hits >= 2
}
