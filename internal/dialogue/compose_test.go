package dialogue

import (
	"strings"
	"testing"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{500, "500"},
		{1000, "1,000"},
		{15000, "15,000"},
		{123456, "1,23,456"},
		{145000, "1,45,000"},
		{1234567, "12,34,567"},
		{12345678, "1,23,45,678"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.n), "n=%d", tt.n)
	}
}

func seedSpec(t *testing.T, model string) catalog.ScooterSpec {
	t.Helper()
	for _, sc := range catalog.SeedScooters() {
		if sc.Model == model {
			return sc
		}
	}
	t.Fatalf("seed model %q not found", model)
	return catalog.ScooterSpec{}
}

func TestFactSheetFieldOrder(t *testing.T) {
	sc := seedSpec(t, "S1 Pro")
	sheet := FactSheet(sc)

	fields := []string{
		"*Ola Electric S1 Pro*",
		"*Price (Ex-showroom):* ₹1,29,999",
		"*Price (On-Road):* ₹1,45,000",
		"*After Subsidies:* ₹1,20,000",
		"*Range:* 181 km",
		"*Battery:* 4 kWh",
		"*Charging Time:* 6.5 hours",
		"*Top Speed:* 116 km/h",
		"*Colors:*",
		"*Features:*",
		"Check availability with your 6-digit pincode.",
	}
	pos := -1
	for _, f := range fields {
		idx := strings.Index(sheet, f)
		require.GreaterOrEqual(t, idx, 0, "missing field %q", f)
		assert.Greater(t, idx, pos, "field %q out of order", f)
		pos = idx
	}
}

func TestFactSheetOmitsAbsentFields(t *testing.T) {
	sc := seedSpec(t, "Vida V1 Pro")
	sc.Price.Fame2Subsidy = 0
	sc.Price.StateSubsidy = 0
	sc.MotorPowerW = 0
	sc.BookingDetails = nil
	sheet := FactSheet(sc)

	assert.NotContains(t, sheet, "After Subsidies")
	assert.NotContains(t, sheet, "Motor Power")
	assert.NotContains(t, sheet, "Booking Information")
}

func TestComparisonTableContent(t *testing.T) {
	a := seedSpec(t, "S1 Pro")
	b := seedSpec(t, "450X")
	table := ComparisonTable(a, b)

	assert.Contains(t, table, "*Comparison: Ola Electric S1 Pro vs Ather 450X*")
	for _, metric := range []string{"Brand", "Ex-Showroom Price", "On-Road Price", "Range", "Battery", "Charging Time", "Top Speed"} {
		assert.Contains(t, table, "| "+metric)
	}
	assert.Contains(t, table, "*Features for Ola Electric S1 Pro:*")
	assert.Contains(t, table, "*Features for Ather 450X:*")
}

func TestComparisonTablePadsNarrowNames(t *testing.T) {
	a := catalog.ScooterSpec{Model: "S1", Brand: "Ola"}
	b := catalog.ScooterSpec{Model: "X", Brand: "Y"}
	table := ComparisonTable(a, b)

	// Column width floors at 10.
	assert.Contains(t, table, "| "+padRight("S1", 10)+" | "+padRight("X", 10)+" |")
}

func TestDealerListingVariants(t *testing.T) {
	none := DealerListing(catalog.AvailabilityResult{Outcome: catalog.AvailabilityNone, Pincode: "110001"})
	assert.Contains(t, none, "No dealers found in pincode 110001")
	assert.NotContains(t, none, "1. *")

	found := DealerListing(catalog.AvailabilityResult{
		Outcome: catalog.AvailabilityFound,
		Pincode: "400058",
		Dealers: []catalog.DealerListing{{
			Dealer: catalog.Dealer{Name: "Ola Experience Centre - Mumbai", Address: "123 Andheri West", Contact: "+91 9000000001", TestRideAvailable: true},
			Models: []string{"Ola Electric S1 Pro"},
		}},
		Models: []string{"Ola Electric S1 Pro"},
	})
	assert.Contains(t, found, "Found 1 dealer(s) in 400058 with models: Ola Electric S1 Pro.")
	assert.Contains(t, found, "1. *Ola Experience Centre - Mumbai*")
	assert.Contains(t, found, "Test rides available")

	nearby := DealerListing(catalog.AvailabilityResult{
		Outcome: catalog.AvailabilityNearby,
		Pincode: "400001",
		Dealers: []catalog.DealerListing{{Dealer: catalog.Dealer{Name: "Hero Vida Hub"}, Models: []string{"N/A"}}},
	})
	assert.Contains(t, nearby, "nearby areas")
}

func TestPriceListOverflow(t *testing.T) {
	var specs []catalog.ScooterSpec
	for i := 0; i < 11; i++ {
		specs = append(specs, catalog.ScooterSpec{Model: "M", Brand: "B", Price: catalog.Price{OnRoad: 100000 + i}})
	}
	out := PriceList(PriceRange{Min: 0, Max: 200000}, specs)

	assert.Contains(t, out, "Found 11 scooter(s)")
	assert.Contains(t, out, "...and 3 more models.")
	assert.NotContains(t, out, "9. *")
}

func TestPriceListEmpty(t *testing.T) {
	out := PriceList(PriceRange{Min: 0, Max: 50000}, nil)
	assert.Contains(t, out, "couldn't find any scooters between ₹0 and ₹50,000")
}

func TestSubsidySheet(t *testing.T) {
	entry, ok := LookupSubsidy("Delhi")
	require.True(t, ok)
	sheet := SubsidySheet(entry)

	assert.Contains(t, sheet, "*State:* Delhi")
	assert.Contains(t, sheet, "*Subsidy Amount:* ₹30,000")
	assert.Contains(t, sheet, "- Purchase Invoice")
	assert.Contains(t, sheet, "*Processing Time:* 4-6 weeks after application")
}

func TestGreetingPersonalization(t *testing.T) {
	plain := Greeting(conversation.Preferences{})
	assert.Contains(t, plain, "How can I help you with EV scooters today?")

	personalized := Greeting(conversation.Preferences{
		PreferredPincode: "400058",
		PreferredBrands:  []string{"Ola Electric", "Ather"},
	})
	assert.Contains(t, personalized, "Welcome back")
	assert.Contains(t, personalized, "Ola Electric, Ather scooters")
	assert.Contains(t, personalized, "pincode: 400058")
}

func TestAllScootersListGroupsByBrand(t *testing.T) {
	out := AllScootersList(catalog.SeedScooters())
	assert.Contains(t, out, "*Ola Electric*:")
	assert.Contains(t, out, "- S1 Pro")
	assert.Contains(t, out, "*TVS*:")
}
