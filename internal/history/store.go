package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/truthguard/truthguard/pkg/logging"
)

const historyKey = "truthguard:history"

// Store persists the analysis log as one JSON record, newest first.
// Every mutation rewrites the full sequence; a read failure degrades to
// an empty store rather than propagating.
type Store struct {
	redis  *redis.Client
	tracer trace.Tracer
	logger *logging.Logger
}

// NewStore creates a history store.
func NewStore(rdb *redis.Client, tracer trace.Tracer, logger *logging.Logger) *Store {
	if rdb == nil {
		panic("history: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("truthguard.internal.history")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: rdb, tracer: tracer, logger: logger}
}

// All returns every entry, newest first. Missing or corrupt data yields
// an empty sequence.
func (s *Store) All(ctx context.Context) []Entry {
	ctx, span := s.tracer.Start(ctx, "history.all")
	defer span.End()

	data, err := s.redis.Get(ctx, historyKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			span.RecordError(err)
			s.logger.Warn("history read failed, degrading to empty", "error", err)
		}
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		span.RecordError(err)
		s.logger.Warn("history record corrupt, degrading to empty", "error", err)
		return []Entry{}
	}
	return entries
}

// Append prepends the entry so the sequence stays newest first.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	ctx, span := s.tracer.Start(ctx, "history.append")
	defer span.End()

	entries := append([]Entry{entry}, s.All(ctx)...)
	return s.persist(ctx, span, entries)
}

// Remove deletes a single entry by id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "history.remove")
	defer span.End()

	entries := s.All(ctx)
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.persist(ctx, span, kept)
}

// Clear empties the log.
func (s *Store) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "history.clear")
	defer span.End()

	return s.persist(ctx, span, []Entry{})
}

// Find returns the entry with the given id.
func (s *Store) Find(ctx context.Context, id string) (Entry, bool) {
	for _, e := range s.All(ctx) {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) persist(ctx context.Context, span trace.Span, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: marshal entries: %w", err)
	}
	if err := s.redis.Set(ctx, historyKey, data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: persist entries: %w", err)
	}
	return nil
}
