package verification

import (
	"regexp"
	"strings"
)

// ReferenceWarningText is the health warning statement mandated by
// 27 CFR 16.21, used as the reference for the similarity sub-check.
const ReferenceWarningText = "GOVERNMENT WARNING: (1) According to the Surgeon General, " +
	"women should not drink alcoholic beverages during pregnancy because of the risk of " +
	"birth defects. (2) Consumption of alcoholic beverages impairs your ability to drive " +
	"a car or operate machinery, and may cause health problems."

// requiredWarningPhrases must each appear (case-insensitively) in the warning.
var requiredWarningPhrases = []struct {
	phrase      string
	description string
}{
	{"women should not drink alcoholic beverages during pregnancy", "pregnancy statement"},
	{"birth defects", "birth defects statement"},
	{"impairs your ability to drive a car or operate machinery", "impaired driving statement"},
	{"health problems", "health problems statement"},
}

var warningStartRe = regexp.MustCompile(`(?i)government\s+warning\s*:`)
var warningEndRe = regexp.MustCompile(`(?i)health\s+problems`)

const warningSimilarityThreshold = 0.90

// ExtractGovernmentWarning locates the government warning section in OCR text,
// spanning from "GOVERNMENT WARNING:" to "health problems" or end of text.
// The raw span is returned with casing and line breaks preserved so that
// capitalization checks can run against it.
func ExtractGovernmentWarning(text string) (string, bool) {
	start := warningStartRe.FindStringIndex(text)
	if start == nil {
		return "", false
	}

	rest := text[start[0]:]
	if end := warningEndRe.FindStringIndex(rest); end != nil {
		return rest[:end[1]], true
	}
	return rest, true
}

// ValidateWarningCompliance checks a located warning span against the 27 CFR
// 16.21 requirements and returns an itemized violation list. All sub-checks
// run independently so a non-compliant label reports every defect at once.
// The warning is compliant iff the violation list is empty.
func ValidateWarningCompliance(warning string) (bool, []string) {
	if strings.TrimSpace(warning) == "" {
		return false, []string{"Government warning statement not found on label (required by 27 CFR 16.21)"}
	}

	var violations []string

	collapsed := collapseWhitespace(warning)
	lower := strings.ToLower(collapsed)

	// The header must appear in capital letters.
	if !strings.Contains(collapsed, "GOVERNMENT WARNING:") {
		violations = append(violations, `"GOVERNMENT WARNING:" must appear in capital letters`)
	}

	// "Surgeon General" must be capitalized exactly when present at all.
	if strings.Contains(lower, "surgeon general") && !strings.Contains(collapsed, "Surgeon General") {
		violations = append(violations, `"Surgeon General" must be capitalized`)
	}

	// Both numbered statements must be present.
	if !strings.Contains(collapsed, "(1)") && !strings.Contains(collapsed, "1)") {
		violations = append(violations, `statement (1) marker is missing`)
	}
	if !strings.Contains(collapsed, "(2)") && !strings.Contains(collapsed, "2)") {
		violations = append(violations, `statement (2) marker is missing`)
	}

	for _, req := range requiredWarningPhrases {
		if !strings.Contains(lower, req.phrase) {
			violations = append(violations, "required "+req.description+" is missing or altered")
		}
	}

	// The warning as a whole must stay close to the required wording; minor
	// OCR noise passes, paraphrasing does not.
	sim := similarityRatio(NormalizeText(collapsed), NormalizeText(ReferenceWarningText))
	if sim < warningSimilarityThreshold {
		violations = append(violations, "warning text deviates from the required wording")
	}

	return len(violations) == 0, violations
}
