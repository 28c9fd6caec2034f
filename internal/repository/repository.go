package repository

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/yoom/internal/domain"
)

var (
	ErrCallNotFound    = errors.New("call not found")
	ErrRecordingExists = errors.New("recording already exists")
)

type CallRepository interface {
	// GetOrCreate stores call unless a call with the same type and id exists,
	// in which case the stored call is returned and created is false.
	GetOrCreate(ctx context.Context, call *domain.Call) (stored *domain.Call, created bool, err error)
	GetByID(ctx context.Context, callType string, id string) (*domain.Call, error)
	// ListByCreator returns calls with a start time, latest start first.
	ListByCreator(ctx context.Context, userID string, limit int) ([]*domain.Call, error)
}

type RecordingRepository interface {
	Create(ctx context.Context, recording *domain.Recording) error
	ListByCall(ctx context.Context, callType string, callID string) ([]*domain.Recording, error)
}
