package meeting_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/meeting"
	"github.com/immxrtalbeast/yoom/internal/videoclient"
	"github.com/immxrtalbeast/yoom/internal/videoclient/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const baseURL = "https://yoom.example.com"

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type countingObserver struct {
	created []string
	failed  []string
}

func (o *countingObserver) MeetingCreated(kind string)      { o.created = append(o.created, kind) }
func (o *countingObserver) MeetingCreateFailed(kind string) { o.failed = append(o.failed, kind) }

func newTypeList(t *testing.T, client meeting.CallCreator, opts ...meeting.Option) *meeting.TypeList {
	t.Helper()
	user := domain.NewUser("user_1", "Ada", "ada@example.com")
	base := []meeting.Option{
		meeting.WithClock(func() time.Time { return fixedNow }),
		meeting.WithIDGenerator(func() string { return "call-123" }),
	}
	return meeting.NewTypeList(user, client, baseURL, append(base, opts...)...)
}

func TestParseState(t *testing.T) {
	for input, want := range map[string]meeting.State{
		"":           meeting.StateNone,
		"none":       meeting.StateNone,
		"scheduling": meeting.StateScheduling,
		"joining":    meeting.StateJoining,
		"instant":    meeting.StateInstant,
	} {
		got, err := meeting.ParseState(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := meeting.ParseState("recording")
	require.ErrorIs(t, err, meeting.ErrUnknownState)
}

func TestSelectOpensSingleModal(t *testing.T) {
	l := newTypeList(t, nil)
	require.False(t, l.Modal().IsOpen())

	l.Select(meeting.StateScheduling)
	require.Equal(t, meeting.ModalSchedule, l.Modal().Kind)

	l.Select(meeting.StateJoining)
	require.Equal(t, meeting.ModalJoin, l.Modal().Kind)
	require.Equal(t, meeting.StateJoining, l.State())

	l.Select(meeting.StateInstant)
	require.Equal(t, meeting.ModalInstant, l.Modal().Kind)

	l.Close()
	require.Equal(t, meeting.StateNone, l.State())
	require.False(t, l.Modal().IsOpen())
}

func TestCreateMeeting(t *testing.T) {
	t.Run("missing date shows validation toast without request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().GetOrCreateCall(gomock.Any(), gomock.Any()).Times(0)

		l := newTypeList(t, client)
		l.Select(meeting.StateScheduling)
		l.SetDateTime(time.Time{})

		effects := l.Submit(context.Background())
		require.Equal(t, []meeting.Effect{meeting.Toast{Title: meeting.ToastSelectDateTime}}, effects)
		require.Nil(t, l.Call())
	})

	t.Run("empty description navigates to meeting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			GetOrCreateCall(gomock.Any(), videoclient.CreateCallRequest{
				Type:      domain.DefaultCallType,
				ID:        "call-123",
				CreatedBy: "user_1",
				StartsAt:  fixedNow,
				Custom:    map[string]any{domain.CustomDescription: domain.DefaultDescription},
			}).
			Return(&domain.Call{ID: "call-123", Type: domain.DefaultCallType, StartsAt: fixedNow}, nil)

		obs := &countingObserver{}
		l := newTypeList(t, client, meeting.WithObserver(obs))
		l.Select(meeting.StateInstant)

		effects := l.Submit(context.Background())
		require.Equal(t, []meeting.Effect{
			meeting.Navigate{Route: "/meeting/call-123"},
			meeting.Toast{Title: meeting.ToastMeetingCreated},
		}, effects)
		require.Equal(t, "call-123", l.Call().ID)
		require.Equal(t, []string{"instant"}, obs.created)
	})

	t.Run("description reveals copy link view", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		startsAt := fixedNow.Add(24 * time.Hour)
		client.EXPECT().
			GetOrCreateCall(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req videoclient.CreateCallRequest) (*domain.Call, error) {
				assert.Equal(t, "Team sync", req.Custom[domain.CustomDescription])
				assert.Equal(t, startsAt, req.StartsAt)
				return &domain.Call{ID: req.ID, Type: req.Type, StartsAt: req.StartsAt, Custom: req.Custom}, nil
			})

		l := newTypeList(t, client)
		l.Select(meeting.StateScheduling)
		l.SetDescription("Team sync")
		l.SetDateTime(startsAt)

		effects := l.Submit(context.Background())
		_, navigated := meeting.NavigationOf(effects)
		require.False(t, navigated)
		require.Equal(t, []meeting.Toast{{Title: meeting.ToastMeetingCreated}}, meeting.ToastsOf(effects))

		modal := l.Modal()
		require.Equal(t, meeting.ModalScheduled, modal.Kind)
		require.Equal(t, "Copy Meeting Link", modal.ButtonText)
	})

	t.Run("platform error yields one failure toast", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			GetOrCreateCall(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("boom"))

		obs := &countingObserver{}
		l := newTypeList(t, client, meeting.WithObserver(obs))
		l.Select(meeting.StateInstant)

		effects := l.Submit(context.Background())
		require.Equal(t, []meeting.Effect{meeting.Toast{Title: meeting.ToastCreateFailed}}, effects)
		require.Nil(t, l.Call())
		require.Equal(t, []string{"instant"}, obs.failed)
	})

	t.Run("nil call is a failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().GetOrCreateCall(gomock.Any(), gomock.Any()).Return(nil, nil)

		l := newTypeList(t, client)
		effects := l.CreateMeeting(context.Background())
		require.Equal(t, []meeting.Effect{meeting.Toast{Title: meeting.ToastCreateFailed}}, effects)
	})

	t.Run("missing user or client aborts silently", func(t *testing.T) {
		l := meeting.NewTypeList(nil, nil, baseURL)
		l.Select(meeting.StateInstant)
		require.Empty(t, l.Submit(context.Background()))

		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		l = meeting.NewTypeList(nil, client, baseURL)
		require.Empty(t, l.CreateMeeting(context.Background()))
	})
}

func TestCopyLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		GetOrCreateCall(gomock.Any(), gomock.Any()).
		Return(&domain.Call{ID: "call-123", Type: domain.DefaultCallType}, nil)

	l := newTypeList(t, client)
	require.Empty(t, l.CopyLink())

	l.Select(meeting.StateScheduling)
	l.SetDescription("Planning")
	l.Submit(context.Background())

	effects := l.Submit(context.Background())
	require.Equal(t, []meeting.Effect{
		meeting.CopyToClipboard{Text: "https://yoom.example.com/meeting/call-123"},
		meeting.Toast{Title: meeting.ToastLinkCopied},
	}, effects)
	require.Equal(t, "https://yoom.example.com/meeting/call-123", l.MeetingLink())
}

func TestRepeatedSubmitCreatesOneCall(t *testing.T) {
	t.Run("concurrent instant submits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			GetOrCreateCall(gomock.Any(), gomock.Any()).
			Return(&domain.Call{ID: "call-123", Type: domain.DefaultCallType, StartsAt: fixedNow}, nil).
			Times(1)

		l := newTypeList(t, client)
		l.Select(meeting.StateInstant)

		results := make([][]meeting.Effect, 2)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = l.Submit(context.Background())
			}(i)
		}
		wg.Wait()

		for _, effects := range results {
			nav, ok := meeting.NavigationOf(effects)
			require.True(t, ok)
			require.Equal(t, "/meeting/call-123", nav.Route)
		}
	})

	t.Run("another modal creates its own call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().
			GetOrCreateCall(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req videoclient.CreateCallRequest) (*domain.Call, error) {
				return &domain.Call{ID: req.ID, Type: req.Type, StartsAt: req.StartsAt}, nil
			}).
			Times(2)

		ids := []string{"scheduled-1", "instant-1"}
		l := newTypeList(t, client, meeting.WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}))

		l.Select(meeting.StateScheduling)
		l.SetDescription("Planning")
		l.Submit(context.Background())
		require.Equal(t, "scheduled-1", l.Call().ID)

		l.Select(meeting.StateInstant)
		l.SetDescription("")
		nav, ok := meeting.NavigationOf(l.Submit(context.Background()))
		require.True(t, ok)
		require.Equal(t, "/meeting/instant-1", nav.Route)
	})
}

func TestJoinMeetingUsesLiteralLink(t *testing.T) {
	l := newTypeList(t, nil)
	l.Select(meeting.StateJoining)

	for _, link := range []string{"not a url", "https://elsewhere.example/meeting/abc", ""} {
		l.SetLink(link)
		effects := l.Submit(context.Background())
		require.Equal(t, []meeting.Effect{meeting.Navigate{Route: link}}, effects)
	}
}

func TestViewRecordings(t *testing.T) {
	l := newTypeList(t, nil)
	nav, ok := meeting.NavigationOf(l.ViewRecordings())
	require.True(t, ok)
	require.Equal(t, "/recordings", nav.Route)
}

func TestCards(t *testing.T) {
	cards := meeting.Cards()
	require.Len(t, cards, 4)

	states := 0
	for _, c := range cards {
		if c.State != meeting.StateNone {
			states++
			continue
		}
		require.Equal(t, meeting.RecordingsRoute, c.Route)
	}
	require.Equal(t, 3, states)
}

func TestNewTypeListDefaultsDateToNow(t *testing.T) {
	l := newTypeList(t, nil)
	require.Equal(t, fixedNow, l.Values().DateTime)
}
