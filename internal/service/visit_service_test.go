package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/meeting"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVisitService(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc := NewVisitService(nil, "http://localhost:8080", time.Minute, nil, discardLogger())
	svc.now = func() time.Time { return now }

	user := domain.NewUser("user_1", "Ada", "")

	t.Run("open and get", func(t *testing.T) {
		id, list := svc.Open(user)
		list.Select(meeting.StateJoining)

		got, err := svc.Get(id, user)
		require.NoError(t, err)
		require.Same(t, list, got)
		require.Equal(t, meeting.StateJoining, got.State())
	})

	t.Run("visits are scoped to their user", func(t *testing.T) {
		id, _ := svc.Open(user)

		_, err := svc.Get(id, domain.NewUser("user_2", "Bob", ""))
		require.ErrorIs(t, err, ErrVisitNotFound)
		_, err = svc.Get(id, nil)
		require.ErrorIs(t, err, ErrVisitNotFound)
	})

	t.Run("unknown visit", func(t *testing.T) {
		_, err := svc.Get(uuid.New(), user)
		require.ErrorIs(t, err, ErrVisitNotFound)
	})

	t.Run("discard", func(t *testing.T) {
		id, _ := svc.Open(user)
		svc.Discard(id)
		_, err := svc.Get(id, user)
		require.ErrorIs(t, err, ErrVisitNotFound)
	})

	t.Run("expired visit is dropped on access", func(t *testing.T) {
		id, _ := svc.Open(user)
		now = now.Add(2 * time.Minute)
		_, err := svc.Get(id, user)
		require.ErrorIs(t, err, ErrVisitNotFound)
	})
}

func TestVisitServiceEvictsLeastRecentlyUsedPerUser(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc := NewVisitService(nil, "", time.Hour, nil, discardLogger())
	svc.now = func() time.Time { return now }
	svc.perUser = 2

	ada := domain.NewUser("user_1", "Ada", "")
	bob := domain.NewUser("user_2", "Bob", "")

	first, _ := svc.Open(ada)
	now = now.Add(time.Second)
	second, _ := svc.Open(ada)
	now = now.Add(time.Second)
	other, _ := svc.Open(bob)

	// Touching the first visit makes the second one the oldest.
	now = now.Add(time.Second)
	_, err := svc.Get(first, ada)
	require.NoError(t, err)

	now = now.Add(time.Second)
	third, _ := svc.Open(ada)
	require.Equal(t, 3, svc.Len())

	_, err = svc.Get(second, ada)
	require.ErrorIs(t, err, ErrVisitNotFound)
	for _, id := range []uuid.UUID{first, third} {
		_, err = svc.Get(id, ada)
		require.NoError(t, err)
	}
	_, err = svc.Get(other, bob)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		svc.Open(ada)
	}
	require.Equal(t, 3, svc.Len())
}

func TestVisitServiceSweep(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc := NewVisitService(nil, "", time.Minute, nil, discardLogger())
	svc.now = func() time.Time { return now }

	svc.Open(nil)
	svc.Open(nil)
	require.Equal(t, 2, svc.Len())

	require.Zero(t, svc.Sweep(now.Add(30*time.Second)))
	require.Equal(t, 2, svc.Sweep(now.Add(2*time.Minute)))
	require.Zero(t, svc.Len())
}

func TestVisitServiceRunStops(t *testing.T) {
	svc := NewVisitService(nil, "", 10*time.Millisecond, nil, discardLogger())
	svc.Open(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return svc.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
