package dialogue

import "strings"

// SubsidyEntry describes one state's EV incentive scheme.
type SubsidyEntry struct {
	State          string
	Amount         int
	Eligibility    string
	Documents      []string
	ProcessingTime string
	AdditionalInfo string
}

var stateSubsidies = []SubsidyEntry{
	{
		State:          "Delhi",
		Amount:         30000,
		Eligibility:    "For the first 1000 e-scooters registered in Delhi. Applicable to scooters with advanced batteries.",
		Documents:      []string{"Purchase Invoice", "Registration Certificate", "Aadhar Card", "Cancelled Cheque"},
		ProcessingTime: "4-6 weeks after application",
		AdditionalInfo: "Road tax and registration fees waived for electric vehicles.",
	},
	{
		State:          "Maharashtra",
		Amount:         25000,
		Eligibility:    "For all electric two-wheelers with battery capacity over 2 kWh.",
		Documents:      []string{"Purchase Invoice", "Registration Certificate", "Aadhar Card", "PAN Card"},
		ProcessingTime: "6-8 weeks after application",
		AdditionalInfo: "5% subsidy on base price up to ₹25,000. Road tax exemption available.",
	},
	{
		State:          "Gujarat",
		Amount:         20000,
		Eligibility:    "For electric two-wheelers with battery capacity of at least 1.5 kWh.",
		Documents:      []string{"Purchase Invoice", "Registration Certificate", "Aadhar Card", "Proof of Residence"},
		ProcessingTime: "4-5 weeks after application",
		AdditionalInfo: "Registration fee waiver for electric vehicles.",
	},
	{
		State:          "Karnataka",
		Amount:         15000,
		Eligibility:    "For electric two-wheelers with motor power not less than 250W.",
		Documents:      []string{"Purchase Invoice", "Registration Certificate", "Aadhar Card", "Address Proof"},
		ProcessingTime: "6-10 weeks after application",
		AdditionalInfo: "Additional 5% exemption on road tax.",
	},
	{
		State:          "Tamil Nadu",
		Amount:         15000,
		Eligibility:    "For all electric two-wheelers with battery capacity over 1.5 kWh.",
		Documents:      []string{"Purchase Invoice", "Registration Certificate", "Aadhar Card", "PAN Card"},
		ProcessingTime: "8-10 weeks after application",
		AdditionalInfo: "100% road tax exemption until 2023.",
	},
}

// Subsidies returns every known state scheme, for listing endpoints.
func Subsidies() []SubsidyEntry {
	return stateSubsidies
}

// LookupSubsidy returns the scheme for a state, matched case-insensitively.
func LookupSubsidy(state string) (SubsidyEntry, bool) {
	for _, s := range stateSubsidies {
		if strings.EqualFold(s.State, state) {
			return s, true
		}
	}
	return SubsidyEntry{}, false
}
