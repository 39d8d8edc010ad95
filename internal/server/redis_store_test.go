package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/badges"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/session"
)

func newRedisStore(t *testing.T, rules badges.Rules) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	st, err := NewRedisStore(context.Background(), mr.Addr(), time.Hour, rules)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, mr
}

func createRedisSession(t *testing.T, st *RedisStore, rules badges.Rules) string {
	t.Helper()
	s := session.New(rules)
	require.NoError(t, s.SetTopic("Go concurrency"))
	require.NoError(t, st.Create(context.Background(), s))
	return s.ID
}

// blockingChat counts ContinueChat calls and holds each one until released.
type blockingChat struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func newBlockingChat() *blockingChat {
	return &blockingChat{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingChat) ContinueChat(ctx context.Context, _ string) (string, error) {
	b.calls.Add(1)
	select {
	case b.started <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
		return "Goroutines are cheap threads.", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type failingChat struct{}

func (failingChat) ContinueChat(context.Context, string) (string, error) {
	return "", errors.New("upstream down")
}

func TestRedisStoreNotFound(t *testing.T) {
	st, _ := newRedisStore(t, badges.DefaultRules())
	ctx := context.Background()
	noop := func(*session.Session) error { return nil }

	assert.ErrorIs(t, st.View(ctx, "missing", noop), ErrNotFound)
	assert.ErrorIs(t, st.Update(ctx, "missing", noop), ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, "missing"), ErrNotFound)
}

func TestRedisStoreKeepsScoreAndRules(t *testing.T) {
	rules := badges.DefaultRules()
	rules.PointsPerLevel = 20
	st, _ := newRedisStore(t, rules)
	ctx := context.Background()
	id := createRedisSession(t, st, rules)

	for range 10 {
		require.NoError(t, st.Update(ctx, id, func(s *session.Session) error {
			s.SubmitQuizAnswer("channels")
			return nil
		}))
	}

	require.NoError(t, st.View(ctx, id, func(s *session.Session) error {
		assert.Equal(t, "Go concurrency", s.Topic)
		assert.Equal(t, 100, s.Points)
		assert.Equal(t, 100, s.Progress)
		assert.Equal(t, 6, s.Level(), "level must use the store's rules after decoding")
		assert.True(t, s.HasBadge(badges.QuizMaster))
		return nil
	}))

	require.NoError(t, st.Delete(ctx, id))
	assert.ErrorIs(t, st.View(ctx, id, func(*session.Session) error { return nil }), ErrNotFound)
}

func TestRedisStoreSavesStateWhenFnFails(t *testing.T) {
	st, _ := newRedisStore(t, badges.DefaultRules())
	ctx := context.Background()
	id := createRedisSession(t, st, badges.DefaultRules())

	err := st.Update(ctx, id, func(s *session.Session) error {
		_, err := s.SendChatMessage(ctx, failingChat{}, "What is a goroutine?")
		return err
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")

	require.NoError(t, st.View(ctx, id, func(s *session.Session) error {
		require.Len(t, s.ChatHistory, 1)
		assert.Equal(t, session.RoleUser, s.ChatHistory[0].Role)
		return nil
	}))
}

func TestRedisStoreSlidingExpiry(t *testing.T) {
	st, mr := newRedisStore(t, badges.DefaultRules())
	ctx := context.Background()
	id := createRedisSession(t, st, badges.DefaultRules())
	key := redisKey(id)
	noop := func(*session.Session) error { return nil }

	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(40 * time.Minute)
	require.NoError(t, st.View(ctx, id, noop))
	assert.Equal(t, time.Hour, mr.TTL(key), "reads refresh the expiry")

	mr.FastForward(40 * time.Minute)
	require.NoError(t, st.Update(ctx, id, noop))
	assert.Equal(t, time.Hour, mr.TTL(key), "writes refresh the expiry")

	mr.FastForward(2 * time.Hour)
	assert.ErrorIs(t, st.View(ctx, id, noop), ErrNotFound)
}

func TestRedisStoreOneGenerationPerChatUnderContention(t *testing.T) {
	st, _ := newRedisStore(t, badges.DefaultRules())
	ctx := context.Background()
	id := createRedisSession(t, st, badges.DefaultRules())
	gen := newBlockingChat()

	var wg sync.WaitGroup
	var chatErr, quizErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		chatErr = st.Update(ctx, id, func(s *session.Session) error {
			_, err := s.SendChatMessage(ctx, gen, "Explain goroutines")
			return err
		})
	}()
	<-gen.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		quizErr = st.Update(ctx, id, func(s *session.Session) error {
			s.SubmitQuizAnswer("they share an address space")
			return nil
		})
	}()

	// Give the second writer time to queue behind the first.
	time.Sleep(3 * redisLockPoll)
	close(gen.release)
	wg.Wait()

	require.NoError(t, chatErr)
	require.NoError(t, quizErr)
	assert.EqualValues(t, 1, gen.calls.Load())

	require.NoError(t, st.View(ctx, id, func(s *session.Session) error {
		assert.Len(t, s.ChatHistory, 2)
		assert.Equal(t, 10, s.Points)
		return nil
	}))
}

func TestRedisStoreBusySessionIsConflict(t *testing.T) {
	st, mr := newRedisStore(t, badges.DefaultRules())
	st.lockWait = 2 * redisLockPoll
	ctx := context.Background()
	id := createRedisSession(t, st, badges.DefaultRules())

	require.NoError(t, mr.Set(redisLockKey(id), "another-writer"))

	called := false
	err := st.Update(ctx, id, func(*session.Session) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, called)

	// The foreign lock is left alone.
	got, err := mr.Get(redisLockKey(id))
	require.NoError(t, err)
	assert.Equal(t, "another-writer", got)

	srv := New(Config{Addr: ":0"}, agents.NewTeam(llm.NewEchoProvider(), nil, nil), st, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/chat", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "session_busy", errorCode(t, rec))
}

func TestRedisStoreReleasesLock(t *testing.T) {
	st, mr := newRedisStore(t, badges.DefaultRules())
	ctx := context.Background()
	id := createRedisSession(t, st, badges.DefaultRules())

	require.NoError(t, st.Update(ctx, id, func(s *session.Session) error {
		assert.True(t, mr.Exists(redisLockKey(id)))
		s.ShareNote("select blocks until a case is ready")
		return nil
	}))
	assert.False(t, mr.Exists(redisLockKey(id)))
}
