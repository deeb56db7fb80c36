package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"form-template-api/internal/sequence"
)

// SequenceState is a stored wizard: the controller snapshot plus the request
// context it was started with
type SequenceState struct {
	ID            uuid.UUID         `json:"id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	OrderID       *uuid.UUID        `json:"order_id"`
	CategoryIDs   []uuid.UUID       `json:"category_ids"`
	Snapshot      sequence.Snapshot `json:"snapshot"`
	SubmissionIDs []uuid.UUID       `json:"submission_ids,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SequenceStateRepository stores in-progress wizards with a TTL.
// Get returns gorm.ErrRecordNotFound for unknown or expired ids, so callers
// can treat it like any other missing record.
type SequenceStateRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*SequenceState, error)
	Save(ctx context.Context, state *SequenceState) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// redisSequenceStateRepository keeps states in redis as JSON
type redisSequenceStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSequenceStateRepository creates a redis backed SequenceStateRepository
func NewRedisSequenceStateRepository(client *redis.Client, ttl time.Duration) SequenceStateRepository {
	return &redisSequenceStateRepository{client: client, ttl: ttl}
}

func sequenceKey(id uuid.UUID) string {
	return fmt.Sprintf("form-sequence:%s", id)
}

func (r *redisSequenceStateRepository) Get(ctx context.Context, id uuid.UUID) (*SequenceState, error) {
	v, err := r.client.Get(ctx, sequenceKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	var state SequenceState
	if err := json.Unmarshal([]byte(v), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *redisSequenceStateRepository) Save(ctx context.Context, state *SequenceState) error {
	state.UpdatedAt = time.Now()
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sequenceKey(state.ID), b, r.ttl).Err()
}

func (r *redisSequenceStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, sequenceKey(id)).Err()
}

// memorySequenceStateRepository is used when redis is not configured.
// States are stored serialised so callers never share memory with the store.
type memorySequenceStateRepository struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemorySequenceStateRepository creates an in-process SequenceStateRepository
func NewMemorySequenceStateRepository(ttl time.Duration) SequenceStateRepository {
	return &memorySequenceStateRepository{ttl: ttl, states: make(map[uuid.UUID]memoryEntry)}
}

func (r *memorySequenceStateRepository) Get(ctx context.Context, id uuid.UUID) (*SequenceState, error) {
	r.mu.Lock()
	entry, ok := r.states[id]
	if ok && time.Now().After(entry.expiresAt) {
		delete(r.states, id)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var state SequenceState
	if err := json.Unmarshal(entry.data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *memorySequenceStateRepository) Save(ctx context.Context, state *SequenceState) error {
	state.UpdatedAt = time.Now()
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.states[state.ID] = memoryEntry{data: b, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

func (r *memorySequenceStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.states, id)
	r.mu.Unlock()
	return nil
}
