package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/evindia/evbot/pkg/logging"
)

const maxSuggestions = 3

// LookupOutcome tags the result of a single-model lookup.
type LookupOutcome int

const (
	LookupFound LookupOutcome = iota
	LookupNotFound
	LookupError
)

// LookupResult is the typed outcome of FindScooter. When the outcome is
// LookupNotFound, Suggestions may carry up to three near matches.
type LookupResult struct {
	Outcome     LookupOutcome
	Query       string
	Spec        *ScooterSpec
	Suggestions []ScooterSpec
}

// AvailabilityOutcome tags the result of a pincode lookup.
type AvailabilityOutcome int

const (
	AvailabilityFound AvailabilityOutcome = iota
	AvailabilityNearby
	AvailabilityNone
	AvailabilityError
)

// AvailabilityResult aggregates dealers for one pincode query. Models holds
// the distinct "Brand Model" strings stocked across all matching dealers;
// dangling model references surface as "N/A".
type AvailabilityResult struct {
	Outcome AvailabilityOutcome
	Pincode string
	Dealers []DealerListing
	Models  []string
}

// DealerListing is one dealer with its stocked models resolved to names.
type DealerListing struct {
	Dealer Dealer
	Models []string
}

// Comparison is the typed outcome of a two-sided lookup: both sides resolve
// independently and either may miss.
type Comparison struct {
	Left  LookupResult
	Right LookupResult
}

// Service answers catalog questions for the dialogue pipeline. All reads go
// through the Store; errors surface as typed outcomes, never as raw errors.
type Service struct {
	store  Store
	logger *logging.Logger
}

// NewService wires a lookup service over the supplied store.
func NewService(store Store, logger *logging.Logger) *Service {
	if store == nil {
		panic("catalog: store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, logger: logger}
}

// FindScooter resolves a free-text model query. Exact matches win: the full
// "Brand Model" name, the bare model name, or a (brand, remainder) split at
// the first space. On a miss it falls back to a substring search capped at
// three suggestions.
func (s *Service) FindScooter(ctx context.Context, query string) LookupResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return LookupResult{Outcome: LookupNotFound, Query: query}
	}

	spec, err := s.store.GetByName(ctx, query)
	if err != nil {
		s.logger.Error("catalog lookup failed", "query", truncate(query, 80), "error", err)
		return LookupResult{Outcome: LookupError, Query: query}
	}
	if spec == nil {
		spec, err = s.findByBrandSplit(ctx, query)
		if err != nil {
			s.logger.Error("catalog lookup failed", "query", truncate(query, 80), "error", err)
			return LookupResult{Outcome: LookupError, Query: query}
		}
	}
	if spec != nil {
		return LookupResult{Outcome: LookupFound, Query: query, Spec: spec}
	}

	suggestions, err := s.store.Search(ctx, query, maxSuggestions)
	if err != nil {
		s.logger.Error("catalog suggestion search failed", "query", truncate(query, 80), "error", err)
		return LookupResult{Outcome: LookupError, Query: query}
	}
	return LookupResult{Outcome: LookupNotFound, Query: query, Suggestions: suggestions}
}

// findByBrandSplit retries the lookup treating the first word as a brand
// prefix: "Ather 450X" resolves even when the stored brand differs in case.
func (s *Service) findByBrandSplit(ctx context.Context, query string) (*ScooterSpec, error) {
	brand, rest, ok := strings.Cut(query, " ")
	if !ok || strings.TrimSpace(rest) == "" {
		return nil, nil
	}
	spec, err := s.store.GetByName(ctx, strings.TrimSpace(rest))
	if err != nil {
		return nil, err
	}
	if spec != nil && strings.Contains(strings.ToLower(spec.Brand), strings.ToLower(brand)) {
		return spec, nil
	}
	return nil, nil
}

// Availability looks up dealers for an exact pincode, then falls back to the
// same three-digit area prefix before reporting the pincode unavailable.
func (s *Service) Availability(ctx context.Context, pincode string) AvailabilityResult {
	dealers, err := s.store.DealersByPincode(ctx, pincode)
	if err != nil {
		s.logger.Error("dealer lookup failed", "pincode", pincode, "error", err)
		return AvailabilityResult{Outcome: AvailabilityError, Pincode: pincode}
	}
	if len(dealers) > 0 {
		listings, models := s.resolveListings(ctx, dealers)
		return AvailabilityResult{Outcome: AvailabilityFound, Pincode: pincode, Dealers: listings, Models: models}
	}

	if len(pincode) >= 3 {
		nearby, err := s.store.DealersByPincodePrefix(ctx, pincode[:3])
		if err != nil {
			s.logger.Error("nearby dealer lookup failed", "pincode", pincode, "error", err)
			return AvailabilityResult{Outcome: AvailabilityError, Pincode: pincode}
		}
		if len(nearby) > 0 {
			listings, models := s.resolveListings(ctx, nearby)
			return AvailabilityResult{Outcome: AvailabilityNearby, Pincode: pincode, Dealers: listings, Models: models}
		}
	}

	return AvailabilityResult{Outcome: AvailabilityNone, Pincode: pincode}
}

func (s *Service) resolveListings(ctx context.Context, dealers []Dealer) ([]DealerListing, []string) {
	known := map[string]ScooterSpec{}
	if specs, err := s.store.All(ctx); err == nil {
		for _, sc := range specs {
			known[strings.ToLower(sc.Model)] = sc
		}
	}

	stocked := map[string]struct{}{}
	listings := make([]DealerListing, 0, len(dealers))
	for _, d := range dealers {
		names := make([]string, 0, len(d.AvailableModels))
		for _, m := range d.AvailableModels {
			if sc, ok := known[strings.ToLower(m)]; ok {
				names = append(names, sc.FullName())
				stocked[sc.FullName()] = struct{}{}
			} else {
				names = append(names, "N/A")
			}
		}
		listings = append(listings, DealerListing{Dealer: d, Models: names})
	}

	models := make([]string, 0, len(stocked))
	for name := range stocked {
		models = append(models, name)
	}
	sort.Strings(models)
	return listings, models
}

// CompareTwo resolves both sides concurrently. There is no ordering
// dependency between the lookups and no shared mutable state.
func (s *Service) CompareTwo(ctx context.Context, left, right string) Comparison {
	results := make(chan struct {
		side   int
		result LookupResult
	}, 2)

	for i, q := range []string{left, right} {
		go func(side int, query string) {
			results <- struct {
				side   int
				result LookupResult
			}{side, s.FindScooter(ctx, query)}
		}(i, q)
	}

	var cmp Comparison
	for i := 0; i < 2; i++ {
		r := <-results
		if r.side == 0 {
			cmp.Left = r.result
		} else {
			cmp.Right = r.result
		}
	}
	return cmp
}

// InPriceRange returns specs priced on-road within [min, max], cheapest first.
func (s *Service) InPriceRange(ctx context.Context, min, max int) ([]ScooterSpec, error) {
	return s.store.ByPriceRange(ctx, min, max)
}

// AllScooters lists the full catalog.
func (s *Service) AllScooters(ctx context.Context) ([]ScooterSpec, error) {
	return s.store.All(ctx)
}

// AllDealers lists every known dealer.
func (s *Service) AllDealers(ctx context.Context) ([]Dealer, error) {
	return s.store.AllDealers(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
