package repository

import (
    "context"
    "encoding/json"
    "errors"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/unclebandit/brandplay-backend/internal/model"
)

// SessionStore holds the signed-in user snapshot of each session token.
// A missing entry means the session was logged out or expired.
type SessionStore interface {
    Put(ctx context.Context, tokenID string, user *model.User, ttl time.Duration) error
    Get(ctx context.Context, tokenID string) (*model.User, error)
    Delete(ctx context.Context, tokenID string) error
}

type RedisSessionStore struct {
    Client *redis.Client
    Prefix string
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
    return &RedisSessionStore{Client: client, Prefix: "session:"}
}

func (s *RedisSessionStore) Put(ctx context.Context, tokenID string, user *model.User, ttl time.Duration) error {
    b, err := json.Marshal(user)
    if err != nil {
        return err
    }
    return s.Client.Set(ctx, s.Prefix+tokenID, b, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, tokenID string) (*model.User, error) {
    b, err := s.Client.Get(ctx, s.Prefix+tokenID).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    var u model.User
    if err := json.Unmarshal(b, &u); err != nil {
        return nil, err
    }
    return &u, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tokenID string) error {
    return s.Client.Del(ctx, s.Prefix+tokenID).Err()
}

type memorySession struct {
    user      model.User
    expiresAt time.Time
}

type MemorySessionStore struct {
    mu       sync.Mutex
    sessions map[string]memorySession
    now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
    return &MemorySessionStore{sessions: map[string]memorySession{}, now: time.Now}
}

func (s *MemorySessionStore) Put(_ context.Context, tokenID string, user *model.User, ttl time.Duration) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.sessions[tokenID] = memorySession{user: *user, expiresAt: s.now().Add(ttl)}
    return nil
}

func (s *MemorySessionStore) Get(_ context.Context, tokenID string) (*model.User, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    sess, ok := s.sessions[tokenID]
    if !ok {
        return nil, nil
    }
    if s.now().After(sess.expiresAt) {
        delete(s.sessions, tokenID)
        return nil, nil
    }
    u := sess.user
    return &u, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, tokenID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sessions, tokenID)
    return nil
}

var (
    _ SessionStore = (*RedisSessionStore)(nil)
    _ SessionStore = (*MemorySessionStore)(nil)
)
