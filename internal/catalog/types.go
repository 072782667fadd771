package catalog

import "strings"

// Price holds the rupee figures for one model. Subsidy fields are additive
// extensions and default to zero when a model carries none.
type Price struct {
	Base         int `json:"base"`
	OnRoad       int `json:"onRoad"`
	Fame2Subsidy int `json:"fame2Subsidy,omitempty"`
	StateSubsidy int `json:"stateSubsidy,omitempty"`
}

// Effective returns the on-road price after all subsidies, never negative.
func (p Price) Effective() int {
	effective := p.OnRoad - p.Fame2Subsidy - p.StateSubsidy
	if effective <= 0 {
		return p.OnRoad
	}
	return effective
}

// Specifications carries the optional dimensional/warranty block.
type Specifications struct {
	WeightKG          int    `json:"weightKg,omitempty"`
	LoadCapacityKG    int    `json:"loadCapacityKg,omitempty"`
	GroundClearanceMM int    `json:"groundClearanceMm,omitempty"`
	TyreType          string `json:"tyreType,omitempty"`
	BrakeSystem       string `json:"brakeSystem,omitempty"`
	Suspension        string `json:"suspension,omitempty"`
	BatteryType       string `json:"batteryType,omitempty"`
	BatteryWarranty   string `json:"batteryWarranty,omitempty"`
	MotorWarranty     string `json:"motorWarranty,omitempty"`
	VehicleWarranty   string `json:"vehicleWarranty,omitempty"`
}

// Availability carries the optional booking block.
type Availability struct {
	DeliveryTime  string `json:"deliveryTime,omitempty"`
	BookingAmount int    `json:"bookingAmount,omitempty"`
}

// Certification carries the optional feature-certification flags.
type Certification struct {
	PMSSCertified   bool `json:"pmssCertified,omitempty"`
	PortableCharger bool `json:"portableCharger,omitempty"`
	MobileApp       bool `json:"mobileApp,omitempty"`
	GeoFencing      bool `json:"geoFencing,omitempty"`
	AntiTheft       bool `json:"antitheft,omitempty"`
}

// ScooterSpec describes one scooter model. The (Brand, Model) pair is unique
// across the catalog.
type ScooterSpec struct {
	Model          string          `json:"model"`
	Brand          string          `json:"brand"`
	Price          Price           `json:"price"`
	RangeKM        float64         `json:"range"`
	ChargingHours  float64         `json:"chargingTime"`
	TopSpeedKMH    float64         `json:"topSpeed"`
	BatteryKWH     float64         `json:"batteryCapacity"`
	MotorPowerW    int             `json:"motorPower,omitempty"`
	Features       []string        `json:"features,omitempty"`
	Colors         []string        `json:"colors,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Description    string          `json:"description,omitempty"`
	Specifications *Specifications `json:"specifications,omitempty"`
	BookingDetails *Availability   `json:"availability,omitempty"`
	Certification  *Certification  `json:"additionalInfo,omitempty"`
}

// FullName returns the "Brand Model" display name.
func (s ScooterSpec) FullName() string {
	return s.Brand + " " + s.Model
}

// Slug returns a lowercase hyphenated identifier used by the HTTP API.
func (s ScooterSpec) Slug() string {
	return strings.ToLower(strings.ReplaceAll(s.FullName(), " ", "-"))
}

// Dealer is one showroom record. AvailableModels holds model names; entries
// that do not resolve against the catalog are tolerated and rendered "N/A".
type Dealer struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Pincode           string   `json:"pincode"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	Contact           string   `json:"contact"`
	Email             string   `json:"email,omitempty"`
	AvailableModels   []string `json:"availableModels"`
	OperatingHours    string   `json:"operatingHours,omitempty"`
	Latitude          float64  `json:"latitude,omitempty"`
	Longitude         float64  `json:"longitude,omitempty"`
	ServicesOffered   []string `json:"servicesOffered,omitempty"`
	TestRideAvailable bool     `json:"testRideAvailable,omitempty"`
}
