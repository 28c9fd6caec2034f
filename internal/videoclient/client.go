package videoclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
)

var (
	ErrCallNotFound    = errors.New("call not found")
	ErrInvalidRequest  = errors.New("invalid call request")
	ErrRecordingExists = errors.New("recording already exists")
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

// Client is the subset of the video platform API the pages rely on.
type Client interface {
	// GetOrCreateCall returns the call identified by req.Type/req.ID, creating
	// it with the supplied data when it does not exist yet.
	GetOrCreateCall(ctx context.Context, req CreateCallRequest) (*domain.Call, error)
	GetCall(ctx context.Context, callType string, id string) (*domain.Call, error)
	// QueryCalls lists calls with a start time that the user created or was
	// invited to, most recent start first.
	QueryCalls(ctx context.Context, query CallQuery) ([]*domain.Call, error)
	ListRecordings(ctx context.Context, callType string, id string) ([]*domain.Recording, error)
	// UserToken issues a token the browser SDK uses to connect as userID.
	UserToken(userID string, ttl time.Duration) (string, error)
}

// RecordingRegistrar is implemented by backends that accept recordings from
// an external recorder instead of producing them.
type RecordingRegistrar interface {
	AddRecording(ctx context.Context, recording *domain.Recording) error
}

type CreateCallRequest struct {
	Type      string
	ID        string
	CreatedBy string
	StartsAt  time.Time
	Custom    map[string]any
	Members   []string
}

func (r CreateCallRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" {
		return errors.Join(ErrInvalidRequest, errors.New("call type is required"))
	}
	if strings.TrimSpace(r.ID) == "" {
		return errors.Join(ErrInvalidRequest, errors.New("call id is required"))
	}
	return nil
}

type CallQuery struct {
	UserID string
	Limit  int
}

const defaultQueryLimit = 25

func (q CallQuery) limit() int {
	if q.Limit <= 0 {
		return defaultQueryLimit
	}
	return q.Limit
}
