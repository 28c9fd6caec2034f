package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/immxrtalbeast/yoom/internal/domain"
)

type InMemoryCallRepository struct {
	mu    sync.RWMutex
	calls map[string]*domain.Call
}

func NewInMemoryCallRepository() *InMemoryCallRepository {
	return &InMemoryCallRepository{
		calls: make(map[string]*domain.Call),
	}
}

func (r *InMemoryCallRepository) GetOrCreate(ctx context.Context, call *domain.Call) (*domain.Call, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.calls[call.CID()]; ok {
		return cloneCall(existing), false, nil
	}

	r.calls[call.CID()] = cloneCall(call)
	return cloneCall(call), true, nil
}

func (r *InMemoryCallRepository) GetByID(ctx context.Context, callType string, id string) (*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	call, ok := r.calls[callType+":"+id]
	if !ok {
		return nil, ErrCallNotFound
	}

	return cloneCall(call), nil
}

func (r *InMemoryCallRepository) ListByCreator(ctx context.Context, userID string, limit int) ([]*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]*domain.Call, 0, len(r.calls))
	for _, call := range r.calls {
		if call.CreatedBy != userID || call.StartsAt.IsZero() {
			continue
		}
		result = append(result, cloneCall(call))
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartsAt.After(result[j].StartsAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type InMemoryRecordingRepository struct {
	mu         sync.RWMutex
	recordings map[string][]*domain.Recording
}

func NewInMemoryRecordingRepository() *InMemoryRecordingRepository {
	return &InMemoryRecordingRepository{
		recordings: make(map[string][]*domain.Recording),
	}
}

func (r *InMemoryRecordingRepository) Create(ctx context.Context, recording *domain.Recording) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recording.CallType + ":" + recording.CallID
	for _, existing := range r.recordings[key] {
		if existing.Filename == recording.Filename {
			return ErrRecordingExists
		}
	}

	copied := *recording
	r.recordings[key] = append(r.recordings[key], &copied)
	return nil
}

func (r *InMemoryRecordingRepository) ListByCall(ctx context.Context, callType string, callID string) ([]*domain.Recording, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.recordings[callType+":"+callID]
	result := make([]*domain.Recording, 0, len(stored))
	for _, rec := range stored {
		copied := *rec
		result = append(result, &copied)
	}
	return result, nil
}

func cloneCall(call *domain.Call) *domain.Call {
	copied := *call
	if call.Custom != nil {
		copied.Custom = make(map[string]any, len(call.Custom))
		for k, v := range call.Custom {
			copied.Custom[k] = v
		}
	}
	return &copied
}
