package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const recordTTL = 30 * 24 * time.Hour

// RedisStore keeps one JSON record per user. Updates are read-modify-write;
// a single user talks to one chat at a time, so there is no write contention
// to guard against.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

func NewRedisStore(client *redis.Client, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("evbot.internal.conversation")
	}
	return &RedisStore{redis: client, tracer: tracer}
}

func recordKey(userID int64) string {
	return fmt.Sprintf("conversation:%d", userID)
}

func feedbackKey(id string) string {
	return fmt.Sprintf("feedback:%s", id)
}

func (s *RedisStore) UpsertAppend(ctx context.Context, userID int64, details UserDetails, in Interaction, cap int) error {
	ctx, span := s.tracer.Start(ctx, "conversation.upsert_append")
	defer span.End()

	rec, _, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if rec == nil {
		rec = &Record{UserID: userID, CreatedAt: time.Now().UTC()}
	}
	rec.Details = details
	rec.Append(in, cap)

	data, err := json.Marshal(rec)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal record: %w", err)
	}
	if err := s.redis.Set(ctx, recordKey(userID), data, recordTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist record: %w", err)
	}
	return nil
}

func (s *RedisStore) Recent(ctx context.Context, userID int64, n int) ([]Interaction, error) {
	rec, found, err := s.Get(ctx, userID)
	if err != nil || !found {
		return nil, err
	}
	return lastN(rec.Interactions, n), nil
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*Record, bool, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_record")
	defer span.End()

	rec, found, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
	}
	return rec, found, err
}

func (s *RedisStore) load(ctx context.Context, userID int64) (*Record, bool, error) {
	data, err := s.redis.Get(ctx, recordKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("conversation: failed to load record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("conversation: failed to decode record: %w", err)
	}
	return &rec, true, nil
}

func (s *RedisStore) All(ctx context.Context) ([]Record, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_all")
	defer span.End()

	var out []Record
	iter := s.redis.Scan(ctx, 0, "conversation:*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			span.RecordError(err)
			return nil, fmt.Errorf("conversation: failed to load record %s: %w", iter.Val(), err)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("conversation: failed to decode record %s: %w", iter.Val(), err)
		}
		out = append(out, rec)
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: scan failed: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *RedisStore) SaveFeedback(ctx context.Context, fb FeedbackRecord) error {
	ctx, span := s.tracer.Start(ctx, "conversation.save_feedback")
	defer span.End()

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(fb)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal feedback: %w", err)
	}
	if err := s.redis.Set(ctx, feedbackKey(fb.ID), data, recordTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist feedback: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
