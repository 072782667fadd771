package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore reads the catalog from PostgreSQL. Optional nested blocks are
// stored as JSONB and may be NULL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a catalog store over the supplied database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	if db == nil {
		return nil
	}
	return &PostgresStore{db: db}
}

const scooterColumns = `model, brand, price_base, price_onroad, fame2_subsidy, state_subsidy,
	range_km, charging_hours, top_speed_kmh, battery_kwh, motor_power_w,
	features, colors, image_url, description, specifications, availability, certification`

func (s *PostgresStore) All(ctx context.Context) ([]ScooterSpec, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM scooters ORDER BY brand, model
	`, scooterColumns))
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list scooters: %w", err)
	}
	defer rows.Close()
	return scanScooters(rows)
}

func (s *PostgresStore) GetByName(ctx context.Context, q string) (*ScooterSpec, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM scooters
		WHERE LOWER(model) = LOWER($1) OR LOWER(brand || ' ' || model) = LOWER($1)
		LIMIT 1
	`, scooterColumns), q)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to get scooter: %w", err)
	}
	defer rows.Close()

	specs, err := scanScooters(rows)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}
	return &specs[0], nil
}

func (s *PostgresStore) Search(ctx context.Context, q string, limit int) ([]ScooterSpec, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM scooters
		WHERE model ILIKE '%%' || $1 || '%%' OR brand ILIKE '%%' || $1 || '%%'
		ORDER BY brand, model
		LIMIT $2
	`, scooterColumns), q, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to search scooters: %w", err)
	}
	defer rows.Close()
	return scanScooters(rows)
}

func (s *PostgresStore) ByPriceRange(ctx context.Context, min, max int) ([]ScooterSpec, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM scooters
		WHERE price_onroad BETWEEN $1 AND $2
		ORDER BY price_onroad
	`, scooterColumns), min, max)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to query price range: %w", err)
	}
	defer rows.Close()
	return scanScooters(rows)
}

const dealerColumns = `id, name, address, pincode, city, state, contact, COALESCE(email, ''),
	available_models, COALESCE(operating_hours, ''), COALESCE(latitude, 0), COALESCE(longitude, 0),
	services_offered, test_ride_available`

func (s *PostgresStore) DealersByPincode(ctx context.Context, pincode string) ([]Dealer, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM dealers WHERE pincode = $1 ORDER BY name
	`, dealerColumns), pincode)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to query dealers: %w", err)
	}
	defer rows.Close()
	return scanDealers(rows)
}

func (s *PostgresStore) DealersByPincodePrefix(ctx context.Context, prefix string) ([]Dealer, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM dealers WHERE pincode LIKE $1 || '%%' ORDER BY name
	`, dealerColumns), prefix)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to query dealers by area: %w", err)
	}
	defer rows.Close()
	return scanDealers(rows)
}

func (s *PostgresStore) AllDealers(ctx context.Context) ([]Dealer, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM dealers ORDER BY name
	`, dealerColumns))
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list dealers: %w", err)
	}
	defer rows.Close()
	return scanDealers(rows)
}

func scanScooters(rows *sql.Rows) ([]ScooterSpec, error) {
	var out []ScooterSpec
	for rows.Next() {
		var (
			sc                             ScooterSpec
			motorPower                     sql.NullInt64
			imageURL, description          sql.NullString
			specsJSON, availJSON, certJSON []byte
		)
		err := rows.Scan(
			&sc.Model, &sc.Brand, &sc.Price.Base, &sc.Price.OnRoad,
			&sc.Price.Fame2Subsidy, &sc.Price.StateSubsidy,
			&sc.RangeKM, &sc.ChargingHours, &sc.TopSpeedKMH, &sc.BatteryKWH,
			&motorPower, pq.Array(&sc.Features), pq.Array(&sc.Colors),
			&imageURL, &description, &specsJSON, &availJSON, &certJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to scan scooter: %w", err)
		}
		if motorPower.Valid {
			sc.MotorPowerW = int(motorPower.Int64)
		}
		sc.ImageURL = imageURL.String
		sc.Description = description.String
		if len(specsJSON) > 0 {
			sc.Specifications = &Specifications{}
			if err := json.Unmarshal(specsJSON, sc.Specifications); err != nil {
				return nil, fmt.Errorf("catalog: bad specifications payload for %s: %w", sc.Model, err)
			}
		}
		if len(availJSON) > 0 {
			sc.BookingDetails = &Availability{}
			if err := json.Unmarshal(availJSON, sc.BookingDetails); err != nil {
				return nil, fmt.Errorf("catalog: bad availability payload for %s: %w", sc.Model, err)
			}
		}
		if len(certJSON) > 0 {
			sc.Certification = &Certification{}
			if err := json.Unmarshal(certJSON, sc.Certification); err != nil {
				return nil, fmt.Errorf("catalog: bad certification payload for %s: %w", sc.Model, err)
			}
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func scanDealers(rows *sql.Rows) ([]Dealer, error) {
	var out []Dealer
	for rows.Next() {
		var d Dealer
		err := rows.Scan(
			&d.ID, &d.Name, &d.Address, &d.Pincode, &d.City, &d.State,
			&d.Contact, &d.Email, pq.Array(&d.AvailableModels),
			&d.OperatingHours, &d.Latitude, &d.Longitude,
			pq.Array(&d.ServicesOffered), &d.TestRideAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("catalog: failed to scan dealer: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ Store = (*PostgresStore)(nil)
