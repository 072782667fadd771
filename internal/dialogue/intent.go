package dialogue

import "regexp"

// Intent is the coarse classification of a user message. It is advisory:
// routes combine it with the extracted entities.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentComparison   Intent = "comparison"
	IntentPriceRange   Intent = "price_range"
	IntentSubsidy      Intent = "subsidy"
	IntentAvailability Intent = "availability"
	IntentScooterInfo  Intent = "scooter_info"
	IntentHelp         Intent = "help"
	IntentGeneralQuery Intent = "general_query"
)

var intentRules = []struct {
	intent Intent
	re     *regexp.Regexp
}{
	{IntentGreeting, regexp.MustCompile(`(?i)^(?:hi|hello|hey|namaste|good morning|good afternoon|good evening)`)},
	{IntentComparison, regexp.MustCompile(`(?i)\b(?:compare|vs|versus|better|difference)\b|which is better`)},
	{IntentPriceRange, regexp.MustCompile(`(?i)price range|budget|under|less than|between|affordable|cost|costly`)},
	{IntentSubsidy, regexp.MustCompile(`(?i)subsidy|incentive|fame|promotion|discount|state policy|government benefit`)},
	{IntentAvailability, regexp.MustCompile(`(?i)available|dealer|showroom|near me|in my area|test ride|pincode|pin code`)},
	{IntentScooterInfo, regexp.MustCompile(`(?i)feature|specification|range|battery|speed|charging|warranty|tell me about`)},
	{IntentHelp, regexp.MustCompile(`(?i)help|menu|what can you do|how to use|commands`)},
}

// ClassifyIntent matches the rules top-down; the first hit wins.
func ClassifyIntent(text string) Intent {
	for _, rule := range intentRules {
		if rule.re.MatchString(text) {
			return rule.intent
		}
	}
	return IntentGeneralQuery
}
