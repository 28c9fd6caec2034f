package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/videoclient"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

// PersonalRoom is the user's permanent meeting room, identified by the user id.
type PersonalRoom struct {
	Topic      string
	MeetingID  string
	InviteLink string
	Path       string
}

type CallService struct {
	client   videoclient.Client
	baseURL  string
	tokenTTL time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewCallService accepts a nil client; every operation that needs the
// platform then fails with ErrClientUnavailable.
func NewCallService(client videoclient.Client, baseURL string, tokenTTL time.Duration, log *slog.Logger) *CallService {
	if log == nil {
		log = slog.Default()
	}
	return &CallService{
		client:   client,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		log:      log,
		now:      time.Now,
	}
}

func (s *CallService) List(ctx context.Context, user *domain.User, kind domain.CallListKind) ([]domain.CallListItem, error) {
	const op = "service.call.list"
	log := s.log.With(slog.String("op", op), slog.String("kind", string(kind)))

	calls, err := s.userCalls(ctx, user)
	if err != nil {
		log.Error("failed to query calls", sl.Err(err))
		return nil, err
	}

	now := s.now()
	switch kind {
	case domain.CallListUpcoming:
		upcoming := filterCalls(calls, func(c *domain.Call) bool { return c.IsUpcoming(now) })
		sort.SliceStable(upcoming, func(i, j int) bool {
			return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
		})
		return toItems(upcoming), nil
	case domain.CallListEnded:
		return toItems(endedCalls(calls, now)), nil
	case domain.CallListRecordings:
		return s.recordings(ctx, endedCalls(calls, now))
	}
	return nil, domain.ErrUnknownCallListKind
}

// NextUpcoming returns the soonest upcoming call, or nil when there is none.
func (s *CallService) NextUpcoming(ctx context.Context, user *domain.User) (*domain.Call, error) {
	items, err := s.List(ctx, user, domain.CallListUpcoming)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0].Call, nil
}

func (s *CallService) GetMeeting(ctx context.Context, id string) (*domain.Call, error) {
	const op = "service.call.getMeeting"

	if s.client == nil {
		return nil, ErrClientUnavailable
	}

	call, err := s.client.GetCall(ctx, domain.DefaultCallType, id)
	if err != nil {
		if errors.Is(err, videoclient.ErrCallNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return call, nil
}

func (s *CallService) PersonalRoom(user *domain.User) (*PersonalRoom, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	path := domain.MeetingPath(user.ID) + "?personal=true"
	return &PersonalRoom{
		Topic:      user.DisplayName() + "'s Meeting Room",
		MeetingID:  user.ID,
		InviteLink: s.baseURL + path,
		Path:       path,
	}, nil
}

// StartPersonalRoom makes sure the personal room call exists and returns it.
func (s *CallService) StartPersonalRoom(ctx context.Context, user *domain.User) (*domain.Call, error) {
	const op = "service.call.startPersonalRoom"

	if user == nil {
		return nil, ErrUnauthenticated
	}
	if s.client == nil {
		return nil, ErrClientUnavailable
	}

	call, err := s.client.GetOrCreateCall(ctx, videoclient.CreateCallRequest{
		Type:      domain.DefaultCallType,
		ID:        user.ID,
		CreatedBy: user.ID,
		StartsAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to start personal room", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return call, nil
}

// ClientToken issues the token the browser SDK connects with.
func (s *CallService) ClientToken(user *domain.User) (string, time.Time, error) {
	const op = "service.call.clientToken"

	if user == nil {
		return "", time.Time{}, ErrUnauthenticated
	}
	if s.client == nil {
		return "", time.Time{}, ErrClientUnavailable
	}

	token, err := s.client.UserToken(user.ID, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return token, s.now().Add(s.tokenTTL), nil
}

// AddRecording registers a finished recording of one of the user's meetings.
func (s *CallService) AddRecording(ctx context.Context, user *domain.User, recording *domain.Recording) error {
	const op = "service.call.addRecording"

	if user == nil {
		return ErrUnauthenticated
	}
	if s.client == nil {
		return ErrClientUnavailable
	}
	registrar, ok := s.client.(videoclient.RecordingRegistrar)
	if !ok {
		return ErrRecordingsReadOnly
	}
	if recording.Filename == "" || recording.URL == "" {
		return ErrInvalidRecording
	}
	if recording.CallType == "" {
		recording.CallType = domain.DefaultCallType
	}

	call, err := s.GetMeeting(ctx, recording.CallID)
	if err != nil {
		return err
	}
	if call.CreatedBy != user.ID {
		return ErrForbidden
	}

	if err := registrar.AddRecording(ctx, recording); err != nil {
		if errors.Is(err, videoclient.ErrRecordingExists) {
			return ErrRecordingExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CallService) userCalls(ctx context.Context, user *domain.User) ([]*domain.Call, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if s.client == nil {
		return nil, ErrClientUnavailable
	}
	return s.client.QueryCalls(ctx, videoclient.CallQuery{UserID: user.ID})
}

func (s *CallService) recordings(ctx context.Context, calls []*domain.Call) ([]domain.CallListItem, error) {
	const op = "service.call.recordings"

	items := make([]domain.CallListItem, 0)
	for _, call := range calls {
		recs, err := s.client.ListRecordings(ctx, call.Type, call.ID)
		if err != nil {
			s.log.Error("failed to list recordings",
				slog.String("op", op),
				slog.String("call_id", call.ID),
				sl.Err(err),
			)
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, rec := range recs {
			items = append(items, domain.CallListItem{Call: call, Recording: rec})
		}
	}
	return items, nil
}

// endedCalls keeps calls that ended or whose start time has passed, latest first.
func endedCalls(calls []*domain.Call, now time.Time) []*domain.Call {
	ended := filterCalls(calls, func(c *domain.Call) bool {
		return c.IsEnded() || (!c.StartsAt.IsZero() && c.StartsAt.Before(now))
	})
	sort.SliceStable(ended, func(i, j int) bool {
		return ended[i].StartsAt.After(ended[j].StartsAt)
	})
	return ended
}

func filterCalls(calls []*domain.Call, keep func(*domain.Call) bool) []*domain.Call {
	result := make([]*domain.Call, 0, len(calls))
	for _, c := range calls {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result
}

func toItems(calls []*domain.Call) []domain.CallListItem {
	items := make([]domain.CallListItem, 0, len(calls))
	for _, c := range calls {
		items = append(items, domain.CallListItem{Call: c})
	}
	return items
}
