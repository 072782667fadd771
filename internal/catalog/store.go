package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Store is the queryable scooter/dealer collection the chat pipeline reads.
// The pipeline never writes to it.
type Store interface {
	// All returns every scooter spec, sorted by brand then model.
	All(ctx context.Context) ([]ScooterSpec, error)
	// GetByName returns the spec whose full name or model matches q exactly,
	// case-insensitively.
	GetByName(ctx context.Context, q string) (*ScooterSpec, error)
	// Search returns up to limit specs whose brand or model contains q.
	Search(ctx context.Context, q string, limit int) ([]ScooterSpec, error)
	// ByPriceRange returns specs with on-road price in [min, max], cheapest first.
	ByPriceRange(ctx context.Context, min, max int) ([]ScooterSpec, error)
	// DealersByPincode returns dealers registered at exactly that pincode.
	DealersByPincode(ctx context.Context, pincode string) ([]Dealer, error)
	// DealersByPincodePrefix returns dealers whose pincode starts with prefix.
	DealersByPincodePrefix(ctx context.Context, prefix string) ([]Dealer, error)
	// AllDealers returns every dealer record.
	AllDealers(ctx context.Context) ([]Dealer, error)
}

// MemoryStore is an in-memory Store used for development and tests. Reads
// vastly outnumber writes, so a plain RWMutex suffices.
type MemoryStore struct {
	mu       sync.RWMutex
	scooters []ScooterSpec
	dealers  []Dealer
}

// NewMemoryStore builds a store holding the supplied records.
func NewMemoryStore(scooters []ScooterSpec, dealers []Dealer) *MemoryStore {
	s := &MemoryStore{
		scooters: append([]ScooterSpec(nil), scooters...),
		dealers:  append([]Dealer(nil), dealers...),
	}
	sort.Slice(s.scooters, func(i, j int) bool {
		if s.scooters[i].Brand != s.scooters[j].Brand {
			return s.scooters[i].Brand < s.scooters[j].Brand
		}
		return s.scooters[i].Model < s.scooters[j].Model
	})
	return s
}

func (s *MemoryStore) All(ctx context.Context) ([]ScooterSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ScooterSpec(nil), s.scooters...), nil
}

func (s *MemoryStore) GetByName(ctx context.Context, q string) (*ScooterSpec, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.scooters {
		sc := &s.scooters[i]
		if strings.EqualFold(sc.Model, q) || strings.EqualFold(sc.FullName(), q) {
			copied := *sc
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) Search(ctx context.Context, q string, limit int) ([]ScooterSpec, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ScooterSpec
	for _, sc := range s.scooters {
		if strings.Contains(strings.ToLower(sc.Model), q) || strings.Contains(strings.ToLower(sc.Brand), q) {
			out = append(out, sc)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) ByPriceRange(ctx context.Context, min, max int) ([]ScooterSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ScooterSpec
	for _, sc := range s.scooters {
		if sc.Price.OnRoad >= min && sc.Price.OnRoad <= max {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.OnRoad < out[j].Price.OnRoad })
	return out, nil
}

func (s *MemoryStore) DealersByPincode(ctx context.Context, pincode string) ([]Dealer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Dealer
	for _, d := range s.dealers {
		if d.Pincode == pincode {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) DealersByPincodePrefix(ctx context.Context, prefix string) ([]Dealer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Dealer
	for _, d := range s.dealers {
		if strings.HasPrefix(d.Pincode, prefix) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) AllDealers(ctx context.Context) ([]Dealer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Dealer(nil), s.dealers...), nil
}

var _ Store = (*MemoryStore)(nil)
