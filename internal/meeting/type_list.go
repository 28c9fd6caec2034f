package meeting

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/videoclient"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

var ErrNoCall = errors.New("platform returned no call")

// CallCreator is the part of the video platform client used to start meetings.
type CallCreator interface {
	GetOrCreateCall(ctx context.Context, req videoclient.CreateCallRequest) (*domain.Call, error)
}

// Observer is notified about meeting creation outcomes.
type Observer interface {
	MeetingCreated(kind string)
	MeetingCreateFailed(kind string)
}

type nopObserver struct{}

func (nopObserver) MeetingCreated(string)      {}
func (nopObserver) MeetingCreateFailed(string) {}

type Option func(*TypeList)

func WithLogger(log *slog.Logger) Option {
	return func(l *TypeList) {
		if log != nil {
			l.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *TypeList) {
		if now != nil {
			l.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(l *TypeList) {
		if newID != nil {
			l.newID = newID
		}
	}
}

func WithObserver(o Observer) Option {
	return func(l *TypeList) {
		if o != nil {
			l.observer = o
		}
	}
}

// TypeList holds the view state of the meeting-type section of the home
// page for a single visit: which modal is open, the form values and the
// call created during the visit.
type TypeList struct {
	mu       sync.Mutex
	user     *domain.User
	client   CallCreator
	baseURL  string
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	observer Observer

	state     State
	values    Values
	call      *domain.Call
	callState State
}

// NewTypeList builds the controller. user and client may be nil; creating a
// meeting is then a no-op.
func NewTypeList(user *domain.User, client CallCreator, baseURL string, opts ...Option) *TypeList {
	l := &TypeList{
		user:     user,
		client:   client,
		baseURL:  baseURL,
		log:      slog.Default(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.values.DateTime = l.now()
	return l
}

func (l *TypeList) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *TypeList) Values() Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values
}

// Call returns the call created during this visit, if any.
func (l *TypeList) Call() *domain.Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.call
}

func (l *TypeList) Modal() Modal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return modalFor(l.state, l.call != nil)
}

// Select opens the modal for state, replacing whichever one was open.
func (l *TypeList) Select(state State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
}

func (l *TypeList) Close() {
	l.Select(StateNone)
}

func (l *TypeList) SetDescription(description string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values.Description = description
}

func (l *TypeList) SetDateTime(t time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values.DateTime = t
}

func (l *TypeList) SetLink(link string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values.Link = link
}

// MeetingLink is the shareable link of the created call, or "" when no call
// was created yet.
func (l *TypeList) MeetingLink() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meetingLinkLocked()
}

func (l *TypeList) meetingLinkLocked() string {
	if l.call == nil {
		return ""
	}
	return domain.MeetingLink(l.baseURL, l.call.ID)
}

// CreateMeeting asks the platform to create a call starting at the selected
// date-time. A visit creates at most one call per modal: a repeated submit
// replays the effects of the call it already has.
func (l *TypeList) CreateMeeting(ctx context.Context) []Effect {
	const op = "meeting.typelist.create"

	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.log.With(slog.String("op", op), slog.String("state", l.state.String()))

	if l.client == nil || l.user == nil {
		log.Debug("meeting creation skipped",
			slog.Bool("has_client", l.client != nil),
			slog.Bool("has_user", l.user != nil),
		)
		return nil
	}

	if l.call != nil && l.callState == l.state {
		log.Debug("meeting already created", slog.String("call_id", l.call.ID))
		if l.values.Description == "" {
			return []Effect{Navigate{Route: domain.MeetingPath(l.call.ID)}}
		}
		return nil
	}

	if l.values.DateTime.IsZero() {
		return []Effect{Toast{Title: ToastSelectDateTime}}
	}

	kind := "instant"
	if l.state == StateScheduling {
		kind = "scheduled"
	}

	description := l.values.Description
	if description == "" {
		description = domain.DefaultDescription
	}

	id := l.newID()
	log = log.With(slog.String("call_id", id), slog.String("user_id", l.user.ID))

	call, err := l.client.GetOrCreateCall(ctx, videoclient.CreateCallRequest{
		Type:      domain.DefaultCallType,
		ID:        id,
		CreatedBy: l.user.ID,
		StartsAt:  l.values.DateTime.UTC(),
		Custom: map[string]any{
			domain.CustomDescription: description,
		},
	})
	if err == nil && call == nil {
		err = ErrNoCall
	}
	if err != nil {
		log.Error("failed to create meeting", sl.Err(err))
		l.observer.MeetingCreateFailed(kind)
		return []Effect{Toast{Title: ToastCreateFailed}}
	}

	l.call = call
	l.callState = l.state
	l.observer.MeetingCreated(kind)
	log.Info("meeting created", slog.Time("starts_at", call.StartsAt))

	effects := make([]Effect, 0, 2)
	if l.values.Description == "" {
		effects = append(effects, Navigate{Route: domain.MeetingPath(call.ID)})
	}
	effects = append(effects, Toast{Title: ToastMeetingCreated})
	return effects
}

func (l *TypeList) CopyLink() []Effect {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.call == nil {
		return nil
	}
	return []Effect{
		CopyToClipboard{Text: l.meetingLinkLocked()},
		Toast{Title: ToastLinkCopied},
	}
}

// JoinMeeting navigates to the pasted link exactly as typed.
func (l *TypeList) JoinMeeting() []Effect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return []Effect{Navigate{Route: l.values.Link}}
}

func (l *TypeList) ViewRecordings() []Effect {
	return []Effect{Navigate{Route: RecordingsRoute}}
}

// Submit runs the primary action of the open modal.
func (l *TypeList) Submit(ctx context.Context) []Effect {
	switch l.Modal().Kind {
	case ModalSchedule, ModalInstant:
		return l.CreateMeeting(ctx)
	case ModalScheduled:
		return l.CopyLink()
	case ModalJoin:
		return l.JoinMeeting()
	}
	return nil
}
