package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/session"
)

const (
	redisKeyPrefix  = "teachteam:session:"
	redisLockPrefix = "teachteam:lock:"

	// redisLockTTL bounds how long a crashed writer can hold a session. It
	// must outlast a generation call.
	redisLockTTL  = 2 * time.Minute
	redisLockPoll = 50 * time.Millisecond
)

// unlockScript deletes the lock only if it still carries our token.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps sessions as JSON in Redis. Writers take a per-session
// lock, so fn runs exactly once per Update; the save is a WATCH/MULTI
// transaction that fails with ErrConflict if the lock lapsed and another
// writer got in.
type RedisStore struct {
	rdb   *goredis.Client
	ttl   time.Duration
	rules badges.Rules

	lockTTL  time.Duration
	lockWait time.Duration
}

// NewRedisStore connects to addr and checks the connection.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration, rules badges.Rules) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		rdb:      rdb,
		ttl:      ttl,
		rules:    rules,
		lockTTL:  redisLockTTL,
		lockWait: redisLockTTL,
	}, nil
}

func redisKey(id string) string     { return redisKeyPrefix + id }
func redisLockKey(id string) string { return redisLockPrefix + id }

func (r *RedisStore) Create(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKey(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) decode(data []byte) (*session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.SetRules(r.rules)
	return &s, nil
}

// View loads the session and slides its expiry, like MemoryStore does on
// every access.
func (r *RedisStore) View(ctx context.Context, id string, fn func(*session.Session) error) error {
	data, err := r.rdb.GetEx(ctx, redisKey(id), r.ttl).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s, err := r.decode(data)
	if err != nil {
		return err
	}
	return fn(s)
}

func (r *RedisStore) Update(ctx context.Context, id string, fn func(*session.Session) error) error {
	token, err := r.lock(ctx, id)
	if err != nil {
		return err
	}
	defer r.unlock(ctx, id, token)

	key := redisKey(id)
	var fnErr error
	txf := func(tx *goredis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		s, err := r.decode(data)
		if err != nil {
			return err
		}

		fnErr = fn(s)

		out, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		return err
	}

	err = r.rdb.Watch(ctx, txf, key)
	if errors.Is(err, goredis.TxFailedErr) {
		return fmt.Errorf("update session %s: %w", id, ErrConflict)
	}
	if err != nil {
		return err
	}
	return fnErr
}

// lock waits up to lockWait for the session's write lock and returns the
// token that releases it.
func (r *RedisStore) lock(ctx context.Context, id string) (string, error) {
	token := uuid.NewString()
	key := redisLockKey(id)
	deadline := time.Now().Add(r.lockWait)

	for {
		ok, err := r.rdb.SetNX(ctx, key, token, r.lockTTL).Result()
		if err != nil {
			return "", fmt.Errorf("lock session: %w", err)
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("lock session %s: %w", id, ErrConflict)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(redisLockPoll):
		}
	}
}

func (r *RedisStore) unlock(ctx context.Context, id, token string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	_ = unlockScript.Run(ctx, r.rdb, []string{redisLockKey(id)}, token).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
