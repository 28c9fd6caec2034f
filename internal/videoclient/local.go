package videoclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/repository"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

// LocalClient keeps call records in the repository layer instead of a hosted
// platform. It backs development setups and self-hosted deployments.
type LocalClient struct {
	calls      repository.CallRepository
	recordings repository.RecordingRepository
	secret     []byte
	log        *slog.Logger
	now        func() time.Time
}

func NewLocalClient(calls repository.CallRepository, recordings repository.RecordingRepository, secret string, log *slog.Logger) *LocalClient {
	if log == nil {
		log = slog.Default()
	}
	return &LocalClient{
		calls:      calls,
		recordings: recordings,
		secret:     []byte(secret),
		log:        log,
		now:        time.Now,
	}
}

func (c *LocalClient) GetOrCreateCall(ctx context.Context, req CreateCallRequest) (*domain.Call, error) {
	const op = "videoclient.local.getOrCreateCall"
	log := c.log.With(
		slog.String("op", op),
		slog.String("call_type", req.Type),
		slog.String("call_id", req.ID),
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := c.now().UTC()
	call := &domain.Call{
		ID:        req.ID,
		Type:      req.Type,
		CreatedBy: req.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
		Custom:    req.Custom,
	}
	if !req.StartsAt.IsZero() {
		call.StartsAt = req.StartsAt.UTC()
	}

	stored, created, err := c.calls.GetOrCreate(ctx, call)
	if err != nil {
		log.Error("failed to store call", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("call ready", slog.Bool("created", created))
	return stored, nil
}

func (c *LocalClient) GetCall(ctx context.Context, callType string, id string) (*domain.Call, error) {
	const op = "videoclient.local.getCall"

	call, err := c.calls.GetByID(ctx, callType, id)
	if err != nil {
		if errors.Is(err, repository.ErrCallNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCallNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return call, nil
}

func (c *LocalClient) QueryCalls(ctx context.Context, query CallQuery) ([]*domain.Call, error) {
	const op = "videoclient.local.queryCalls"

	if query.UserID == "" {
		return nil, errors.Join(ErrInvalidRequest, errors.New("user id is required"))
	}

	calls, err := c.calls.ListByCreator(ctx, query.UserID, query.limit())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return calls, nil
}

func (c *LocalClient) ListRecordings(ctx context.Context, callType string, id string) ([]*domain.Recording, error) {
	const op = "videoclient.local.listRecordings"

	recordings, err := c.recordings.ListByCall(ctx, callType, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recordings, nil
}

func (c *LocalClient) UserToken(userID string, ttl time.Duration) (string, error) {
	return signUserToken(c.secret, userID, c.now(), ttl)
}

func (c *LocalClient) AddRecording(ctx context.Context, recording *domain.Recording) error {
	const op = "videoclient.local.addRecording"
	log := c.log.With(
		slog.String("op", op),
		slog.String("call_id", recording.CallID),
		slog.String("filename", recording.Filename),
	)

	if _, err := c.GetCall(ctx, recording.CallType, recording.CallID); err != nil {
		return err
	}

	if err := c.recordings.Create(ctx, recording); err != nil {
		if errors.Is(err, repository.ErrRecordingExists) {
			return fmt.Errorf("%s: %w", op, ErrRecordingExists)
		}
		log.Error("failed to store recording", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("recording added")
	return nil
}
