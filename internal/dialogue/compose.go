package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
)

// Reply-keyboard button labels. The transport short-circuits these before
// the message reaches extraction.
const (
	ButtonCompare     = "Compare Scooters"
	ButtonPincode     = "Find Scooters by Pincode"
	ButtonAllScooters = "All Scooters"
	ButtonHelp        = "/help"
)

const (
	ComparePrompt = "Please tell me which two models you'd like to compare. For example:\n- \"Compare Ola S1 Pro and Ather 450X\"\n- \"TVS iQube S vs Bajaj Chetak Premium\""
	PincodePrompt = "Please share your 6-digit pincode to find EV scooters and dealers in your area."
)

// FormatINR renders a rupee amount with Indian digit grouping: the last
// three digits form one group, everything above groups in pairs (1,23,456).
func FormatINR(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FactSheet renders the full Markdown card for one scooter.
func FactSheet(sc catalog.ScooterSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", sc.FullName())
	fmt.Fprintf(&b, "*Price (Ex-showroom):* ₹%s\n", FormatINR(sc.Price.Base))
	fmt.Fprintf(&b, "*Price (On-Road):* ₹%s\n", FormatINR(sc.Price.OnRoad))
	if sc.Price.Fame2Subsidy > 0 || sc.Price.StateSubsidy > 0 {
		fmt.Fprintf(&b, "*After Subsidies:* ₹%s\n", FormatINR(sc.Price.Effective()))
	}
	fmt.Fprintf(&b, "*Range:* %s km\n", formatFloat(sc.RangeKM))
	fmt.Fprintf(&b, "*Battery:* %s kWh\n", formatFloat(sc.BatteryKWH))
	fmt.Fprintf(&b, "*Charging Time:* %s hours\n", formatFloat(sc.ChargingHours))
	if sc.MotorPowerW > 0 {
		fmt.Fprintf(&b, "*Motor Power:* %d W\n", sc.MotorPowerW)
	}
	fmt.Fprintf(&b, "*Top Speed:* %s km/h\n", formatFloat(sc.TopSpeedKMH))
	if len(sc.Colors) > 0 {
		fmt.Fprintf(&b, "*Colors:* %s\n", strings.Join(sc.Colors, ", "))
	}
	if len(sc.Features) > 0 {
		b.WriteString("\n*Features:*\n")
		for _, f := range sc.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if sc.BookingDetails != nil {
		b.WriteString("\n*Booking Information:*\n")
		if sc.BookingDetails.BookingAmount > 0 {
			fmt.Fprintf(&b, "Booking Amount: ₹%s\n", FormatINR(sc.BookingDetails.BookingAmount))
		}
		if sc.BookingDetails.DeliveryTime != "" {
			fmt.Fprintf(&b, "Delivery Time: %s\n", sc.BookingDetails.DeliveryTime)
		}
	}
	if sc.Description != "" {
		fmt.Fprintf(&b, "\n*Description:* %s\n", sc.Description)
	}
	if sc.ImageURL != "" {
		fmt.Fprintf(&b, "\n[View Image](%s)\n", sc.ImageURL)
	}
	b.WriteString("\nCheck availability with your 6-digit pincode.")
	return b.String()
}

// SuggestionList renders the "did you mean" reply for a near-miss lookup.
func SuggestionList(query string, suggestions []catalog.ScooterSpec) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf("No info found for %q. Try listing available models or check spelling.", query)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "No exact match for %q. Did you mean:\n\n", query)
	for _, sc := range suggestions {
		fmt.Fprintf(&b, "- %s\n", sc.FullName())
	}
	b.WriteString("\nAsk again with the full name.")
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// ComparisonTable renders the side-by-side Markdown table for two scooters.
// Columns are padded to the longer model name so the table stays aligned in
// a monospace render.
func ComparisonTable(a, b catalog.ScooterSpec) string {
	width := len(a.Model)
	if len(b.Model) > width {
		width = len(b.Model)
	}
	if width < 10 {
		width = 10
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*Comparison: %s vs %s*\n\n", a.FullName(), b.FullName())
	fmt.Fprintf(&sb, "| Metric                 | %s | %s |\n", padRight(a.Model, width), padRight(b.Model, width))
	fmt.Fprintf(&sb, "|------------------------|%s|%s|\n", strings.Repeat("-", width+2), strings.Repeat("-", width+2))

	row := func(label, left, right string) {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", padRight(label, 22), padRight(left, width), padRight(right, width))
	}
	row("Brand", a.Brand, b.Brand)
	row("Ex-Showroom Price", "₹"+FormatINR(a.Price.Base), "₹"+FormatINR(b.Price.Base))
	row("On-Road Price", "₹"+FormatINR(a.Price.OnRoad), "₹"+FormatINR(b.Price.OnRoad))
	row("Range", formatFloat(a.RangeKM)+" km", formatFloat(b.RangeKM)+" km")
	row("Battery", formatFloat(a.BatteryKWH)+" kWh", formatFloat(b.BatteryKWH)+" kWh")
	row("Charging Time", formatFloat(a.ChargingHours)+" hrs", formatFloat(b.ChargingHours)+" hrs")
	row("Top Speed", formatFloat(a.TopSpeedKMH)+" km/h", formatFloat(b.TopSpeedKMH)+" km/h")

	features := func(sc catalog.ScooterSpec) {
		fmt.Fprintf(&sb, "\n*Features for %s:*\n", sc.FullName())
		if len(sc.Features) == 0 {
			sb.WriteString("- Not listed\n")
			return
		}
		for _, f := range sc.Features {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	features(a)
	features(b)

	sb.WriteString("\nCheck availability with your pincode.")
	return sb.String()
}

// DealerListing renders an availability result, including the no-dealers
// case.
func DealerListing(res catalog.AvailabilityResult) string {
	switch res.Outcome {
	case catalog.AvailabilityNone:
		return fmt.Sprintf("No dealers found in pincode %s. Try a nearby pincode.\n\nWould you like to check availability in another area? Or would you like information about specific EV scooter models?", res.Pincode)
	case catalog.AvailabilityError:
		return "Error checking availability. Please try again."
	}

	var b strings.Builder
	if len(res.Models) > 0 {
		fmt.Fprintf(&b, "Found %d dealer(s) in %s with models: %s.\n\n", len(res.Dealers), res.Pincode, strings.Join(res.Models, ", "))
	} else {
		fmt.Fprintf(&b, "Found %d dealer(s) in %s, but no specific models listed. Contact them directly:\n\n", len(res.Dealers), res.Pincode)
	}
	if res.Outcome == catalog.AvailabilityNearby {
		b.WriteString("Here are dealers in nearby areas:\n\n")
	} else {
		b.WriteString("Here are the dealers in your area:\n\n")
	}
	for i, listing := range res.Dealers {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, listing.Dealer.Name)
		fmt.Fprintf(&b, "   Address: %s\n", listing.Dealer.Address)
		contact := listing.Dealer.Contact
		if contact == "" {
			contact = "N/A"
		}
		fmt.Fprintf(&b, "   Contact: %s\n", contact)
		models := "Not specified"
		if len(listing.Models) > 0 {
			models = strings.Join(listing.Models, ", ")
		}
		fmt.Fprintf(&b, "   Available Models: %s\n", models)
		if listing.Dealer.TestRideAvailable {
			b.WriteString("   Test rides available\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("Would you like more information about any of these scooters?")
	return b.String()
}

const maxPriceListEntries = 8

// PriceList renders the scooters inside a budget, capped at eight entries.
func PriceList(pr PriceRange, specs []catalog.ScooterSpec) string {
	if len(specs) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find any scooters between ₹%s and ₹%s. Try a different budget.", FormatINR(pr.Min), FormatINR(pr.Max))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d scooter(s) between ₹%s and ₹%s:\n\n", len(specs), FormatINR(pr.Min), FormatINR(pr.Max))
	for i, sc := range specs {
		if i >= maxPriceListEntries {
			break
		}
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, sc.FullName())
		fmt.Fprintf(&b, "   Price: ₹%s\n", FormatINR(sc.Price.OnRoad))
		fmt.Fprintf(&b, "   Range: %s km\n\n", formatFloat(sc.RangeKM))
	}
	if len(specs) > maxPriceListEntries {
		fmt.Fprintf(&b, "...and %d more models.\n\n", len(specs)-maxPriceListEntries)
	}
	b.WriteString("Would you like detailed information about any of these models?")
	return b.String()
}

// SubsidySheet renders one state's incentive scheme.
func SubsidySheet(s SubsidyEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here's EV subsidy information for %s:\n\n", s.State)
	fmt.Fprintf(&b, "*State:* %s\n", s.State)
	fmt.Fprintf(&b, "*Subsidy Amount:* ₹%s\n\n", FormatINR(s.Amount))
	fmt.Fprintf(&b, "*Eligibility:*\n%s\n\n", s.Eligibility)
	b.WriteString("*Required Documents:*\n")
	for _, doc := range s.Documents {
		fmt.Fprintf(&b, "- %s\n", doc)
	}
	fmt.Fprintf(&b, "\n*Processing Time:* %s\n", s.ProcessingTime)
	if s.AdditionalInfo != "" {
		fmt.Fprintf(&b, "\n*Additional Information:*\n%s\n", s.AdditionalInfo)
	}
	b.WriteString("\nWould you like to know which models are eligible for this subsidy?")
	return b.String()
}

// SubsidyNotFound is the reply for a state without a known scheme.
func SubsidyNotFound(state string) string {
	return fmt.Sprintf("Sorry, I couldn't find subsidy information for %s.", state)
}

// Greeting personalizes the hello when preferences have accumulated.
func Greeting(prefs conversation.Preferences) string {
	if prefs.PreferredPincode == "" && len(prefs.PreferredBrands) == 0 {
		return "Hello! How can I help you with EV scooters today? You can ask about specific models, check availability in your area, or compare different scooters."
	}
	var b strings.Builder
	b.WriteString("Hello! Welcome back. I remember that you're interested in ")
	if len(prefs.PreferredBrands) > 0 {
		fmt.Fprintf(&b, "%s scooters. ", strings.Join(prefs.PreferredBrands, ", "))
	}
	if prefs.PreferredPincode != "" {
		fmt.Fprintf(&b, "I also have your pincode: %s. ", prefs.PreferredPincode)
	}
	b.WriteString("How can I help you today?")
	return b.String()
}

// WelcomeText is the /start reply.
func WelcomeText() string {
	return `Namaste! Welcome to EV India Bot!

I'm your assistant for electric scooters in India. I can:
- Provide scooter specs, prices, and features
- Check availability by pincode
- Compare scooter models
- Share price range and subsidy information

Type /help for examples. How can I assist you?`
}

// HelpText is the /help reply.
func HelpText() string {
	return `Here's how I can help:

*General Info:*
  "Tell me about Ola S1 Pro"
  "Features of Ather 450X"

*Availability:*
  "Scooters in 400001"
  (Or send a 6-digit pincode)

*Compare:*
  "Compare Ola S1 Pro and Ather 450X"
  "TVS iQube S vs Bajaj Chetak Premium"

*Pricing:*
  "Show scooters under 1 lakh"
  "Scooters between 80,000 and 1.2 lakh"

*Subsidies:*
  "What's the EV subsidy in Maharashtra?"

Ask away! If I don't know something, I'll suggest alternatives.`
}

// KeyboardButtons are the reply-keyboard labels sent with /start and /help.
func KeyboardButtons() []string {
	return []string{ButtonCompare, ButtonPincode, ButtonAllScooters, ButtonHelp}
}

// AllScootersList renders the catalog grouped by brand.
func AllScootersList(specs []catalog.ScooterSpec) string {
	if len(specs) == 0 {
		return "Sorry, I couldn't find any scooters in our database."
	}
	byBrand := map[string][]string{}
	var brands []string
	for _, sc := range specs {
		if _, ok := byBrand[sc.Brand]; !ok {
			brands = append(brands, sc.Brand)
		}
		byBrand[sc.Brand] = append(byBrand[sc.Brand], sc.Model)
	}
	var b strings.Builder
	b.WriteString("Here are all the available EV scooters in India:\n\n")
	for _, brand := range brands {
		fmt.Fprintf(&b, "*%s*:\n", brand)
		for _, model := range byBrand[brand] {
			fmt.Fprintf(&b, "- %s\n", model)
		}
		b.WriteString("\n")
	}
	b.WriteString("To get details about any model, just ask me about it!")
	return b.String()
}
