package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lumina-accesorios/lumina-backend/pkg/logger"
	redislib "github.com/redis/go-redis/v9"
)

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type slotKeyer interface {
	CartKey(sessionID string) string
}

// Store persists one cart document per visitor session in a single Redis
// slot. A missing or unreadable slot always deserializes to an empty cart.
type Store struct {
	redis slotStore
	keyer slotKeyer
	ttl   time.Duration
	logg  *logger.Logger
}

// NewStore builds a cart store on top of the shared Redis client.
func NewStore(redis slotStore, keyer slotKeyer, ttl time.Duration, logg *logger.Logger) (*Store, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis store required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cart keyer required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{redis: redis, keyer: keyer, ttl: ttl, logg: logg}, nil
}

// Load reads the session's cart. Corrupt payloads are discarded rather than
// failing the request.
func (s *Store) Load(ctx context.Context, sessionID string) (Document, error) {
	raw, err := s.redis.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Document{Items: []Item{}}, nil
		}
		return Document{}, fmt.Errorf("loading cart slot: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logg.Warn(ctx, "discarding unreadable cart document")
		return Document{Items: []Item{}}, nil
	}
	if doc.Items == nil {
		doc.Items = []Item{}
	}
	return doc, nil
}

// Save writes the whole document back, refreshing the slot TTL.
func (s *Store) Save(ctx context.Context, sessionID string, doc Document) error {
	doc.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding cart document: %w", err)
	}
	if err := s.redis.Set(ctx, s.keyer.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("saving cart slot: %w", err)
	}
	return nil
}

// Delete drops the session's cart slot entirely.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.keyer.CartKey(sessionID)); err != nil {
		return fmt.Errorf("deleting cart slot: %w", err)
	}
	return nil
}
