package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/evindia/evbot/internal/catalog"
)

var (
	pincodeRE = regexp.MustCompile(`\b\d{6}\b`)

	compareRE = regexp.MustCompile(`(?i)compare\s+([\w\s.-]+?)\s+(?:and|with|to)\s+([\w\s.-]+)`)
	versusRE  = regexp.MustCompile(`(?i)([\w\s.-]+?)\s+(?:vs\.?|versus)\s+([\w\s.-]+)`)

	priceTokenRE = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(k|lakh|l)?\b`)
	underRE      = regexp.MustCompile(`(?i)under|less than|below|not more than|maximum|max of|up to|upto`)
	betweenRE    = regexp.MustCompile(`(?i)between|from|range of`)
)

// ExtractPincode returns the first standalone 6-digit group in the message.
func ExtractPincode(text string) (string, bool) {
	m := pincodeRE.FindString(text)
	return m, m != ""
}

// ExtractComparisonPair returns the two model phrases of a comparison
// request. The phrases are trimmed but not validated against the catalog.
func ExtractComparisonPair(text string) (a, b string, ok bool) {
	for _, re := range []*regexp.Regexp{compareRE, versusRE} {
		if m := re.FindStringSubmatch(text); m != nil {
			a = strings.TrimSpace(m[1])
			b = strings.TrimSpace(m[2])
			if a != "" && b != "" {
				return a, b, true
			}
		}
	}
	return "", "", false
}

// PriceRange is a rupee interval. Min is zero for open-ended "under" queries.
type PriceRange struct {
	Min int
	Max int
}

// ExtractPriceRange reads rupee amounts out of the message. Bare numbers are
// rupees; "k" multiplies by a thousand and "lakh"/"l" by a hundred thousand.
// "under X" means [0, X], "between X and Y" means [min, max], a single bare
// number means [0, n].
func ExtractPriceRange(text string) (PriceRange, bool) {
	cleaned := strings.ReplaceAll(text, ",", "")

	var amounts []int
	for _, m := range priceTokenRE.FindAllStringSubmatch(cleaned, -1) {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "k":
			n *= 1_000
		case "lakh", "l":
			n *= 100_000
		}
		amounts = append(amounts, int(n))
	}
	if len(amounts) == 0 {
		return PriceRange{}, false
	}

	min, max := amounts[0], amounts[0]
	for _, n := range amounts[1:] {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	switch {
	case underRE.MatchString(cleaned):
		return PriceRange{Min: 0, Max: max}, true
	case betweenRE.MatchString(cleaned) && len(amounts) >= 2:
		return PriceRange{Min: min, Max: max}, true
	case len(amounts) == 1:
		return PriceRange{Min: 0, Max: amounts[0]}, true
	}
	return PriceRange{}, false
}

// ExtractCandidateModels returns the model names mentioned in the message.
// A bare model mention is suppressed when it is a substring of another
// model's name that is itself literally present in the text.
func ExtractCandidateModels(text string, specs []catalog.ScooterSpec) []string {
	lower := strings.ToLower(text)
	var found []string
	seen := map[string]struct{}{}

	for _, sc := range specs {
		model := strings.ToLower(sc.Model)
		brand := strings.ToLower(sc.Brand)
		if _, dup := seen[model]; dup {
			continue
		}
		if strings.Contains(lower, brand+" "+model) {
			seen[model] = struct{}{}
			found = append(found, sc.Model)
			continue
		}
		if !strings.Contains(lower, model) {
			continue
		}
		shadowed := false
		for _, other := range specs {
			otherModel := strings.ToLower(other.Model)
			if otherModel != model && strings.Contains(otherModel, model) && strings.Contains(lower, otherModel) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			seen[model] = struct{}{}
			found = append(found, sc.Model)
		}
	}
	return found
}

var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand",
	"Karnataka", "Kerala", "Madhya Pradesh", "Maharashtra", "Manipur",
	"Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura",
	"Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Delhi", "Chandigarh", "Jammu and Kashmir", "Ladakh",
	"Andaman and Nicobar Islands", "Dadra and Nagar Haveli and Daman and Diu",
	"Lakshadweep", "Puducherry",
}

// ExtractState returns the first Indian state or union territory named in the
// message, in canonical casing.
func ExtractState(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, state := range indianStates {
		if strings.Contains(lower, strings.ToLower(state)) {
			return state, true
		}
	}
	return "", false
}
