package dialogue

import (
	"regexp"
	"strings"
)

// FAQEntry is a pre-computed answer for a common EV question. These bypass
// the LLM for instant, deterministic responses.
type FAQEntry struct {
	Question string
	Answer   string
	Category string
	Pattern  *regexp.Regexp
	Keywords []string
}

var faqEntries = []FAQEntry{
	{
		Question: "How long does it take to charge an EV scooter?",
		Answer:   "Most EV scooters in India take between 3-6 hours for a full charge using a standard charger. Some models offer fast charging options that can charge up to 80% in 1 hour.",
		Category: "Charging",
		Pattern:  regexp.MustCompile(`(?i)how (?:long|much time).*(charg)`),
		Keywords: []string{"charging", "time", "hours", "full charge"},
	},
	{
		Question: "What is the average range of EV scooters in India?",
		Answer:   "The average range of EV scooters in India is between 70-120 km on a full charge. Premium models like Ola S1 Pro offer up to 180 km range.",
		Category: "Performance",
		Pattern:  regexp.MustCompile(`(?i)(average|typical) range`),
		Keywords: []string{"average", "range", "distance"},
	},
	{
		Question: "Are there any government subsidies available for EV scooters?",
		Answer:   "Yes, the Indian government offers subsidies under the FAME II scheme, providing up to ₹15,000 for electric two-wheelers. Additionally, many states offer their own subsidies ranging from ₹5,000 to ₹30,000.",
		Category: "Subsidies",
		Pattern:  regexp.MustCompile(`(?i)(any|what|which).*(government|govt).*(subsid|incentive)`),
		Keywords: []string{"government", "subsidy", "scheme"},
	},
	{
		Question: "What is the maintenance cost of an EV scooter?",
		Answer:   "EV scooters have lower maintenance costs compared to petrol scooters, typically ₹2,000-₹5,000 per year. This includes battery checks, software updates, and minor repairs. No oil changes or engine maintenance are required.",
		Category: "Maintenance",
		Pattern:  regexp.MustCompile(`(?i)maintenance cost|cost of maintenance|maintain an? ev`),
		Keywords: []string{"maintenance", "cost", "yearly"},
	},
	{
		Question: "What is the warranty period for EV scooter batteries?",
		Answer:   "Most EV scooter batteries come with a warranty of 3-5 years or up to 50,000 km, whichever comes first. Some brands like Ather and Ola offer extended warranties up to 8 years.",
		Category: "Warranty",
		Pattern:  regexp.MustCompile(`(?i)(battery|batteries).*(warranty)|warranty.*(battery|batteries)`),
		Keywords: []string{"warranty", "battery", "years"},
	},
}

// FAQs returns the full FAQ table, for listing endpoints.
func FAQs() []FAQEntry {
	return faqEntries
}

// CheckFAQ looks for a deterministic answer to the message. A pattern hit
// answers immediately; otherwise at least two keywords must match.
func CheckFAQ(message string) (string, bool) {
	message = strings.ToLower(strings.TrimSpace(message))
	if message == "" {
		return "", false
	}

	for _, faq := range faqEntries {
		if faq.Pattern != nil && faq.Pattern.MatchString(message) {
			return faq.Answer, true
		}
		if len(faq.Keywords) > 0 {
			matched := 0
			for _, kw := range faq.Keywords {
				if strings.Contains(message, kw) {
					matched++
				}
			}
			if matched >= 2 {
				return faq.Answer, true
			}
		}
	}
	return "", false
}
