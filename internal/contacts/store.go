// Package contacts stores the user's emergency contacts and builds SOS
// location-share links.
package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/truthguard/truthguard/pkg/logging"
)

const contactsKey = "truthguard:contacts"

// ErrInvalidContact is returned when name or phone is blank.
var ErrInvalidContact = errors.New("contacts: name and phone are required")

// Contact is one emergency contact.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Store persists contacts as one JSON record, rewritten in full on
// every mutation. Corrupt data degrades to an empty collection.
type Store struct {
	redis  *redis.Client
	tracer trace.Tracer
	logger *logging.Logger
	now    func() time.Time
}

// NewStore creates a contacts store.
func NewStore(rdb *redis.Client, tracer trace.Tracer, logger *logging.Logger) *Store {
	if rdb == nil {
		panic("contacts: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("truthguard.internal.contacts")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{redis: rdb, tracer: tracer, logger: logger, now: time.Now}
}

// All returns the stored contacts in insertion order.
func (s *Store) All(ctx context.Context) []Contact {
	ctx, span := s.tracer.Start(ctx, "contacts.all")
	defer span.End()

	data, err := s.redis.Get(ctx, contactsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			span.RecordError(err)
			s.logger.Warn("contacts read failed, degrading to empty", "error", err)
		}
		return []Contact{}
	}

	var list []Contact
	if err := json.Unmarshal(data, &list); err != nil {
		span.RecordError(err)
		s.logger.Warn("contacts record corrupt, degrading to empty", "error", err)
		return []Contact{}
	}
	return list
}

// Add appends a new contact and persists the full collection.
func (s *Store) Add(ctx context.Context, name, phone string) (Contact, error) {
	ctx, span := s.tracer.Start(ctx, "contacts.add")
	defer span.End()

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return Contact{}, ErrInvalidContact
	}

	contact := Contact{
		ID:    strconv.FormatInt(s.now().UnixMilli(), 10),
		Name:  name,
		Phone: phone,
	}
	list := append(s.All(ctx), contact)
	if err := s.persist(ctx, span, list); err != nil {
		return Contact{}, err
	}
	return contact, nil
}

// Delete removes a contact by id. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "contacts.delete")
	defer span.End()

	list := s.All(ctx)
	kept := list[:0]
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.persist(ctx, span, kept)
}

// Find returns the contact with the given id.
func (s *Store) Find(ctx context.Context, id string) (Contact, bool) {
	for _, c := range s.All(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

func (s *Store) persist(ctx context.Context, span trace.Span, list []Contact) error {
	data, err := json.Marshal(list)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("contacts: marshal: %w", err)
	}
	if err := s.redis.Set(ctx, contactsKey, data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("contacts: persist: %w", err)
	}
	return nil
}
