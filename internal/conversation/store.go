package conversation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists per-user conversation records and feedback. Implementations
// must keep appends for a single user atomic and in receipt order.
type Store interface {
	// UpsertAppend creates the user's record if missing, refreshes the
	// details snapshot and appends the interaction, trimming to cap.
	UpsertAppend(ctx context.Context, userID int64, details UserDetails, in Interaction, cap int) error
	// Recent returns the newest n interactions, oldest first.
	Recent(ctx context.Context, userID int64, n int) ([]Interaction, error)
	// Get returns the full record, or found=false when the user is unknown.
	Get(ctx context.Context, userID int64) (*Record, bool, error)
	// All returns every record, ordered by user ID.
	All(ctx context.Context) ([]Record, error)
	// SaveFeedback stores one feedback press. A missing ID is generated.
	SaveFeedback(ctx context.Context, fb FeedbackRecord) error
}

// MemoryStore is the in-process Store used for development and tests.
type MemoryStore struct {
	mu       sync.Mutex
	records  map[int64]*Record
	feedback []FeedbackRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int64]*Record)}
}

func (s *MemoryStore) UpsertAppend(ctx context.Context, userID int64, details UserDetails, in Interaction, cap int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		rec = &Record{UserID: userID, CreatedAt: time.Now().UTC()}
		s.records[userID] = rec
	}
	rec.Details = details
	rec.Append(in, cap)
	return nil
}

func (s *MemoryStore) Recent(ctx context.Context, userID int64, n int) ([]Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	return lastN(rec.Interactions, n), nil
}

func (s *MemoryStore) Get(ctx context.Context, userID int64) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, false, nil
	}
	copied := copyRecord(rec)
	return &copied, true, nil
}

func (s *MemoryStore) All(ctx context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *MemoryStore) SaveFeedback(ctx context.Context, fb FeedbackRecord) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, fb)
	return nil
}

// Feedback returns the stored feedback records in receipt order.
func (s *MemoryStore) Feedback() []FeedbackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FeedbackRecord(nil), s.feedback...)
}

// copyRecord detaches the returned record from the store's live slices.
func copyRecord(rec *Record) Record {
	copied := *rec
	copied.Interactions = append([]Interaction(nil), rec.Interactions...)
	copied.Preferences.PreferredBrands = append([]string(nil), rec.Preferences.PreferredBrands...)
	return copied
}

func lastN(in []Interaction, n int) []Interaction {
	if n <= 0 || len(in) == 0 {
		return nil
	}
	if len(in) > n {
		in = in[len(in)-n:]
	}
	return append([]Interaction(nil), in...)
}

var _ Store = (*MemoryStore)(nil)
