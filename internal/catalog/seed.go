package catalog

import "github.com/google/uuid"

// SeedScooters returns the built-in scooter catalog used when no database is
// configured.
func SeedScooters() []ScooterSpec {
	return []ScooterSpec{
		{
			Model: "S1 Pro",
			Brand: "Ola Electric",
			Price: Price{Base: 129999, OnRoad: 145000, Fame2Subsidy: 15000, StateSubsidy: 10000},
			RangeKM: 181, ChargingHours: 6.5, TopSpeedKMH: 116, BatteryKWH: 4, MotorPowerW: 8500,
			Features: []string{"Digital Console", "Reverse Mode", "Fast Charging", "Bluetooth", "GPS", "Anti-theft alarm", "Hill Hold"},
			Colors:   []string{"Jet Black", "Porcelain White", "Neo Mint", "Coral Glam", "Liquid Silver"},
			ImageURL: "https://placehold.co/600x400/EBF4FA/CCCCCC?text=Ola+S1+Pro",
			Description: "The Ola S1 Pro is a flagship electric scooter known for its performance, range, and smart features.",
			Specifications: &Specifications{
				WeightKG: 125, LoadCapacityKG: 150, GroundClearanceMM: 165,
				TyreType: "Tubeless", BrakeSystem: "Disc", Suspension: "Telescopic Front, Mono Rear",
				BatteryType: "Lithium-ion", BatteryWarranty: "3 years", MotorWarranty: "3 years", VehicleWarranty: "3 years",
			},
			BookingDetails: &Availability{DeliveryTime: "2-4 weeks", BookingAmount: 499},
			Certification:  &Certification{PMSSCertified: true, PortableCharger: true, MobileApp: true, GeoFencing: true, AntiTheft: true},
		},
		{
			Model: "450X",
			Brand: "Ather",
			Price: Price{Base: 138000, OnRoad: 160000, Fame2Subsidy: 15000, StateSubsidy: 7500},
			RangeKM: 111, ChargingHours: 5.7, TopSpeedKMH: 90, BatteryKWH: 3.7, MotorPowerW: 6000,
			Features: []string{"Touchscreen Dashboard", "OTA Updates", "Navigation", "Riding Modes", "Reverse Assist", "Auto Indicator Off"},
			Colors:   []string{"Space Grey", "Mint Green", "True Red", "Cosmic Black"},
			ImageURL: "https://placehold.co/600x400/EBF4FA/CCCCCC?text=Ather+450X",
			Description: "The Ather 450X is a premium smart electric scooter offering a thrilling ride and connected features.",
			BookingDetails: &Availability{DeliveryTime: "3-5 weeks", BookingAmount: 999},
			Certification:  &Certification{PMSSCertified: true, PortableCharger: true, MobileApp: true, GeoFencing: true, AntiTheft: true},
		},
		{
			Model: "iQube S",
			Brand: "TVS",
			Price: Price{Base: 120000, OnRoad: 135000, Fame2Subsidy: 15000, StateSubsidy: 5000},
			RangeKM: 100, ChargingHours: 4.5, TopSpeedKMH: 78, BatteryKWH: 3.04, MotorPowerW: 4400,
			Features: []string{"SmartXonnect", "Geo-fencing", "Anti-theft Alert", "Q-Park Assist", "USB Charging"},
			Colors:   []string{"Titanium Grey Matte", "Starlight Blue Glossy", "Mint Blue"},
			ImageURL: "https://placehold.co/600x400/EBF4FA/CCCCCC?text=TVS+iQube+S",
			Description: "The TVS iQube S is a reliable electric scooter with practical features for urban commuting.",
			BookingDetails: &Availability{DeliveryTime: "2-3 weeks", BookingAmount: 500},
		},
		{
			Model: "Chetak Premium",
			Brand: "Bajaj",
			Price: Price{Base: 145000, OnRoad: 158000, Fame2Subsidy: 15000, StateSubsidy: 5000},
			RangeKM: 90, ChargingHours: 5, TopSpeedKMH: 63, BatteryKWH: 2.88, MotorPowerW: 4000,
			Features: []string{"Metal Body", "Keyless Start", "IP67 Rating", "Sequential Blinkers", "Digital Console"},
			Colors:   []string{"Hazelnut", "Brooklyn Black", "Velluto Rosso", "Indigo Metallic"},
			ImageURL: "https://placehold.co/600x400/EBF4FA/CCCCCC?text=Bajaj+Chetak",
			Description: "The Bajaj Chetak electric revives a classic name with modern electric technology and premium build quality.",
			BookingDetails: &Availability{DeliveryTime: "3-4 weeks", BookingAmount: 1000},
		},
		{
			Model: "Vida V1 Pro",
			Brand: "Hero",
			Price: Price{Base: 125000, OnRoad: 140000},
			RangeKM: 110, ChargingHours: 5.9, TopSpeedKMH: 80, BatteryKWH: 3.94,
			Features: []string{"Removable Batteries", "Cruise Control", "SOS Alert", "Follow-me-home lights", "Two-way throttle"},
			Colors:   []string{"Matte White", "Matte Sports Red", "Matte Abrax Orange"},
			ImageURL: "https://placehold.co/600x400/EBF4FA/CCCCCC?text=Hero+Vida+V1",
			Description: "The Hero Vida V1 Pro offers innovative features like removable batteries and a customizable riding experience.",
		},
	}
}

// SeedDealers returns the built-in dealer records.
func SeedDealers() []Dealer {
	return []Dealer{
		{
			ID: uuid.NewString(), Name: "Ola Experience Centre - Mumbai",
			Address: "123 Andheri West", Pincode: "400058", City: "Mumbai", State: "Maharashtra",
			Contact: "+91 9000000001", Email: "mumbai.ec@olaelectric.com",
			AvailableModels: []string{"S1 Pro"},
			OperatingHours:  "10:00 AM - 8:00 PM",
			Latitude:        19.1196, Longitude: 72.8465,
			ServicesOffered: []string{"Sales", "Service", "Charging", "Test Ride"}, TestRideAvailable: true,
		},
		{
			ID: uuid.NewString(), Name: "Ather Space - Delhi",
			Address: "456 Connaught Place", Pincode: "110001", City: "New Delhi", State: "Delhi",
			Contact: "+91 9000000002", Email: "delhi.as@atherenergy.com",
			AvailableModels: []string{"450X"},
			OperatingHours:  "10:00 AM - 7:00 PM",
			Latitude:        28.6329, Longitude: 77.2195,
			ServicesOffered: []string{"Sales", "Service", "Test Ride"}, TestRideAvailable: true,
		},
		{
			ID: uuid.NewString(), Name: "TVS Green Motors - Bangalore",
			Address: "789 Koramangala", Pincode: "560034", City: "Bangalore", State: "Karnataka",
			Contact: "+91 9000000003", Email: "bangalore.tvs@greenmotors.com",
			AvailableModels: []string{"iQube S"},
			OperatingHours:  "9:30 AM - 7:30 PM",
			Latitude:        12.9351, Longitude: 77.6245,
			ServicesOffered: []string{"Sales", "Service", "Charging"},
		},
		{
			ID: uuid.NewString(), Name: "Bajaj EV World - Pune",
			Address: "Plot 10, FC Road", Pincode: "411004", City: "Pune", State: "Maharashtra",
			Contact: "+91 9000000004", Email: "pune.bajaj@evworld.com",
			AvailableModels: []string{"Chetak Premium"},
			OperatingHours:  "10:00 AM - 8:00 PM",
			Latitude:        18.5204, Longitude: 73.8567,
			ServicesOffered: []string{"Sales", "Service"}, TestRideAvailable: true,
		},
		{
			ID: uuid.NewString(), Name: "Hero Vida Hub - South Mumbai",
			Address: "234 Marine Drive", Pincode: "400002", City: "Mumbai", State: "Maharashtra",
			Contact: "+91 9000000005", Email: "mumbai.vida@heromotocorp.com",
			AvailableModels: []string{"Vida V1 Pro", "S1 Pro"},
			OperatingHours:  "11:00 AM - 7:00 PM",
			Latitude:        18.9442, Longitude: 72.8237,
			ServicesOffered: []string{"Sales", "Test Ride"}, TestRideAvailable: true,
		},
	}
}

// NewSeededMemoryStore is a convenience constructor for the built-in catalog.
func NewSeededMemoryStore() *MemoryStore {
	return NewMemoryStore(SeedScooters(), SeedDealers())
}
