package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/meeting"
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrClientUnavailable   = errors.New("video client unavailable")
	ErrVisitNotFound       = errors.New("visit not found")
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrMeetingNotScheduled = errors.New("meeting has no start time")
	ErrForbidden           = errors.New("meeting belongs to another user")
	ErrRecordingsReadOnly  = errors.New("video client does not accept recordings")
	ErrRecordingExists     = errors.New("recording already exists")
	ErrInvalidRecording    = errors.New("invalid recording")
)

type CallInteractor interface {
	List(ctx context.Context, user *domain.User, kind domain.CallListKind) ([]domain.CallListItem, error)
	NextUpcoming(ctx context.Context, user *domain.User) (*domain.Call, error)
	GetMeeting(ctx context.Context, id string) (*domain.Call, error)
	PersonalRoom(user *domain.User) (*PersonalRoom, error)
	StartPersonalRoom(ctx context.Context, user *domain.User) (*domain.Call, error)
	ClientToken(user *domain.User) (string, time.Time, error)
	AddRecording(ctx context.Context, user *domain.User, recording *domain.Recording) error
}

type VisitInteractor interface {
	Open(user *domain.User) (uuid.UUID, *meeting.TypeList)
	Get(id uuid.UUID, user *domain.User) (*meeting.TypeList, error)
	Discard(id uuid.UUID)
}
