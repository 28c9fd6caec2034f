package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/emersion/go-ical"
	"github.com/immxrtalbeast/yoom/internal/domain"
)

const (
	productID       = "-//yoom//meetings//EN"
	defaultDuration = time.Hour
)

// ContentType is the media type of MeetingEvent output.
const ContentType = "text/calendar; charset=utf-8"

var ErrNoStartTime = errors.New("meeting has no start time")

// MeetingEvent renders call as an iCalendar document with a single event
// so it can be added to a calendar application.
func MeetingEvent(call *domain.Call, link string, now time.Time) ([]byte, error) {
	const op = "calendar.meetingEvent"

	if call == nil || call.StartsAt.IsZero() {
		return nil, ErrNoStartTime
	}

	summary := call.Description()
	if summary == "" {
		summary = domain.DefaultDescription
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, call.CID())
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, call.StartsAt.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, call.StartsAt.Add(defaultDuration).UTC())
	event.Props.SetText(ical.PropSummary, summary)
	event.Props.SetText(ical.PropDescription, "Join the meeting: "+link)
	if u, err := url.Parse(link); err == nil && u.IsAbs() {
		event.Props.SetURI(ical.PropURL, u)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
