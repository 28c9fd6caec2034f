package calendar

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMeetingEvent(t *testing.T) {
	start := time.Date(2026, 10, 20, 9, 30, 0, 0, time.UTC)
	call := &domain.Call{
		ID:       "abc",
		Type:     domain.DefaultCallType,
		StartsAt: start,
		Custom:   map[string]any{domain.CustomDescription: "Weekly sync"},
	}

	data, err := MeetingEvent(call, "https://yoom.example.com/meeting/abc", start.Add(-time.Hour))
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	require.Equal(t, "default:abc", ev.Props.Get(ical.PropUID).Value)
	require.Equal(t, "Weekly sync", ev.Props.Get(ical.PropSummary).Value)

	gotStart, err := ev.DateTimeStart(time.UTC)
	require.NoError(t, err)
	require.True(t, start.Equal(gotStart))

	gotEnd, err := ev.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	require.True(t, start.Add(time.Hour).Equal(gotEnd))

	require.Equal(t, "https://yoom.example.com/meeting/abc", ev.Props.Get(ical.PropURL).Value)
}

func TestMeetingEventDefaultsSummary(t *testing.T) {
	call := &domain.Call{ID: "abc", Type: domain.DefaultCallType, StartsAt: time.Now()}
	data, err := MeetingEvent(call, "not a url", time.Now())
	require.NoError(t, err)
	require.Contains(t, string(data), "SUMMARY:Instant Meeting")
	require.NotContains(t, string(data), "URL:")
}

func TestMeetingEventRequiresStart(t *testing.T) {
	_, err := MeetingEvent(&domain.Call{ID: "abc"}, "", time.Now())
	require.ErrorIs(t, err, ErrNoStartTime)
}
