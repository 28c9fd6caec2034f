package repository

import (
	"context"
	"testing"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCallRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCallRepository()
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	call := &domain.Call{
		ID:        "a",
		Type:      domain.DefaultCallType,
		CreatedBy: "user_1",
		StartsAt:  start,
		Custom:    map[string]any{domain.CustomDescription: "first"},
	}

	stored, created, err := repo.GetOrCreate(ctx, call)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "first", stored.Description())

	// A second create with the same type and id returns the stored call.
	stored, created, err = repo.GetOrCreate(ctx, &domain.Call{
		ID:     "a",
		Type:   domain.DefaultCallType,
		Custom: map[string]any{domain.CustomDescription: "second"},
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, "first", stored.Description())

	// Returned calls are copies.
	stored.Custom[domain.CustomDescription] = "mutated"
	got, err := repo.GetByID(ctx, domain.DefaultCallType, "a")
	require.NoError(t, err)
	require.Equal(t, "first", got.Description())

	_, err = repo.GetByID(ctx, "livestream", "a")
	require.ErrorIs(t, err, ErrCallNotFound)

	_, _, err = repo.GetOrCreate(ctx, &domain.Call{ID: "b", Type: domain.DefaultCallType, CreatedBy: "user_1", StartsAt: start.Add(time.Hour)})
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, &domain.Call{ID: "c", Type: domain.DefaultCallType, CreatedBy: "user_2", StartsAt: start})
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, &domain.Call{ID: "d", Type: domain.DefaultCallType, CreatedBy: "user_1"})
	require.NoError(t, err)

	calls, err := repo.ListByCreator(ctx, "user_1", 0)
	require.NoError(t, err)
	require.Len(t, calls, 2)
	require.Equal(t, "b", calls[0].ID)
	require.Equal(t, "a", calls[1].ID)

	calls, err = repo.ListByCreator(ctx, "user_1", 1)
	require.NoError(t, err)
	require.Len(t, calls, 1)
}

func TestInMemoryRecordingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRecordingRepository()

	rec := &domain.Recording{CallType: domain.DefaultCallType, CallID: "a", Filename: "a.mp4", URL: "https://cdn.example.com/a.mp4"}
	require.NoError(t, repo.Create(ctx, rec))
	require.ErrorIs(t, repo.Create(ctx, rec), ErrRecordingExists)
	require.NoError(t, repo.Create(ctx, &domain.Recording{CallType: domain.DefaultCallType, CallID: "a", Filename: "b.mp4"}))

	recs, err := repo.ListByCall(ctx, domain.DefaultCallType, "a")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	recs, err = repo.ListByCall(ctx, domain.DefaultCallType, "missing")
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewInMemoryCallRepository().GetOrCreate(ctx, &domain.Call{ID: "a", Type: domain.DefaultCallType})
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, NewInMemoryRecordingRepository().Create(ctx, &domain.Recording{}), context.Canceled)
}
