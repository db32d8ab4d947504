package verification

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"labelcheck-backend/models"
)

// identityMatchThreshold is the similarity floor for brand and product class
// matching. Identity fields tolerate moderate OCR noise; regulatory text has
// its own, stricter floor (warningSimilarityThreshold).
const identityMatchThreshold = 0.75

// Alcohol content tolerance in percentage points, symmetric and inclusive.
const alcoholTolerance = 0.5

var leadingNumberRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func strPtr(s string) *string { return &s }

// VerifyLabelData evaluates OCR-extracted label text against the claimed
// attributes and produces the ordered per-field verdict. Field evaluation is
// linear: brand, product class, alcohol content, net contents (when claimed),
// government warning compliance, then beverage-specific checks. OverallMatch
// is the AND over mandatory checks only; informational checks are recorded
// but never gate the verdict.
func VerifyLabelData(extractedText string, attrs models.ClaimedAttributes) *models.VerificationResult {
	if strings.TrimSpace(extractedText) == "" {
		return &models.VerificationResult{
			Success:       false,
			OverallMatch:  false,
			Message:       "No label text available for verification",
			ExtractedText: extractedText,
		}
	}

	var checks models.FieldChecks
	var failedFields []string

	addMandatory := func(check models.FieldCheck) {
		checks = append(checks, check)
		if !check.Matched {
			failedFields = append(failedFields, check.FieldName)
		}
	}
	addInformational := func(check models.FieldCheck) {
		checks = append(checks, check)
	}

	// Check 1: Brand Name
	brandMatched, brandSpan := FuzzyMatch(extractedText, attrs.BrandName, identityMatchThreshold)
	brandCheck := models.FieldCheck{
		FieldName:     "Brand Name",
		ExpectedValue: attrs.BrandName,
		Matched:       brandMatched,
	}
	if brandMatched {
		brandCheck.FoundValue = strPtr(brandSpan)
		brandCheck.Message = fmt.Sprintf("Brand name '%s' found on label", attrs.BrandName)
	} else {
		if guess, ok := ExtractBrandName(extractedText); ok {
			brandCheck.FoundValue = strPtr(guess)
		}
		brandCheck.Message = fmt.Sprintf("Brand name '%s' not found on label", attrs.BrandName)
	}
	addMandatory(brandCheck)

	// Check 2: Product Class/Type
	productMatched, productSpan := FuzzyMatch(extractedText, attrs.ProductClass, identityMatchThreshold)
	productCheck := models.FieldCheck{
		FieldName:     "Product Class/Type",
		ExpectedValue: attrs.ProductClass,
		Matched:       productMatched,
	}
	if productMatched {
		productCheck.FoundValue = strPtr(productSpan)
		productCheck.Message = fmt.Sprintf("Product class '%s' found on label", attrs.ProductClass)
	} else {
		if guess, ok := ExtractProductType(extractedText); ok {
			productCheck.FoundValue = strPtr(guess)
		}
		productCheck.Message = fmt.Sprintf("Product class '%s' not found on label", attrs.ProductClass)
	}
	addMandatory(productCheck)

	// Check 3: Alcohol Content (±0.5 percentage points for OCR misreads)
	abvCheck := models.FieldCheck{
		FieldName:     "Alcohol Content",
		ExpectedValue: formatPercent(attrs.AlcoholContent),
	}
	if extractedABV, ok := ExtractPercentage(extractedText); ok {
		abvCheck.FoundValue = strPtr(formatPercent(extractedABV))
		diff := extractedABV - attrs.AlcoholContent
		if diff < 0 {
			diff = -diff
		}
		if diff <= alcoholTolerance {
			abvCheck.Matched = true
			abvCheck.Message = fmt.Sprintf("Alcohol content %s matches form (%s)",
				formatPercent(extractedABV), formatPercent(attrs.AlcoholContent))
		} else {
			abvCheck.Message = fmt.Sprintf("Alcohol content on label (%s) differs from form (%s)",
				formatPercent(extractedABV), formatPercent(attrs.AlcoholContent))
		}
	} else {
		abvCheck.Message = fmt.Sprintf("Could not find alcohol content on label (expected %s)",
			formatPercent(attrs.AlcoholContent))
	}
	addMandatory(abvCheck)

	// Check 4: Net Contents (only when claimed; exact number equality so that
	// a claimed 750 never matches an extracted 1750)
	if attrs.NetContents != nil && *attrs.NetContents != "" {
		claimed := *attrs.NetContents
		m := leadingNumberRe.FindStringSubmatch(claimed)
		if m == nil {
			// Unparsable claimed value: the field is optional, skip the check.
			log.Printf("Warning: could not parse net contents from form: %s", claimed)
		} else {
			claimedVolume := m[1]
			netCheck := models.FieldCheck{
				FieldName:     "Net Contents",
				ExpectedValue: claimed,
			}
			extractedVolume, found := ExtractVolume(extractedText)
			switch {
			case found && extractedVolume == claimedVolume:
				netCheck.FoundValue = strPtr(extractedVolume)
				netCheck.Matched = true
				netCheck.Message = fmt.Sprintf("Net contents '%s' found on label", claimed)
			case found:
				netCheck.FoundValue = strPtr(extractedVolume)
				netCheck.Message = fmt.Sprintf("Net contents on label (%s) differs from form (%s)",
					extractedVolume, claimed)
			default:
				netCheck.Message = fmt.Sprintf("Net contents '%s' not found on label", claimed)
			}
			addMandatory(netCheck)
		}
	}

	// Check 5: Government Warning compliance
	warningSpan, warningFound := ExtractGovernmentWarning(extractedText)
	compliant, violations := ValidateWarningCompliance(warningSpan)
	warningCheck := models.FieldCheck{
		FieldName:     "Government Warning",
		ExpectedValue: "27 CFR 16.21 health warning statement",
		Matched:       compliant,
		Violations:    violations,
	}
	if warningFound {
		warningCheck.FoundValue = strPtr(collapseWhitespace(warningSpan))
	}
	if compliant {
		warningCheck.Message = "Government warning statement is compliant"
	} else {
		warningCheck.Message = fmt.Sprintf("Government warning statement is non-compliant (%d violation(s))",
			len(violations))
	}
	addMandatory(warningCheck)

	// Beverage-specific checks
	switch attrs.BeverageType {
	case models.BeverageWine:
		sulfiteCheck := models.FieldCheck{
			FieldName:     "Sulfite Declaration",
			ExpectedValue: "Contains sulfites",
			Matched:       HasSulfiteDeclaration(extractedText),
		}
		if sulfiteCheck.Matched {
			sulfiteCheck.FoundValue = strPtr("Present")
			sulfiteCheck.Message = "Sulfite declaration found on label"
		} else {
			sulfiteCheck.Message = "Sulfite declaration not found on label (required for wine)"
		}
		addMandatory(sulfiteCheck)

		vintageCheck := models.FieldCheck{
			FieldName:     "Vintage Year",
			ExpectedValue: "Vintage year (informational)",
		}
		if year, ok := ExtractVintageYear(extractedText); ok {
			vintageCheck.FoundValue = strPtr(year)
			vintageCheck.Matched = true
			vintageCheck.Message = fmt.Sprintf("Vintage year %s found on label", year)
		} else {
			vintageCheck.Message = "No vintage year found on label"
		}
		addInformational(vintageCheck)

	case models.BeverageBeer:
		ingredientsCheck := models.FieldCheck{
			FieldName:     "Ingredients List",
			ExpectedValue: "Ingredients list (informational)",
			Matched:       HasIngredientsList(extractedText),
		}
		if ingredientsCheck.Matched {
			ingredientsCheck.FoundValue = strPtr("Present")
			ingredientsCheck.Message = "Ingredients list found on label"
		} else {
			ingredientsCheck.Message = "No ingredients list found on label"
		}
		addInformational(ingredientsCheck)
	}

	overallMatch := len(failedFields) == 0
	var message string
	if overallMatch {
		message = "The label matches the form data. All required information is consistent."
	} else {
		message = "The label does not match the form. Issues found in: " + strings.Join(failedFields, ", ")
	}

	return &models.VerificationResult{
		Success:       true,
		OverallMatch:  overallMatch,
		Message:       message,
		ExtractedText: extractedText,
		Checks:        checks,
	}
}
