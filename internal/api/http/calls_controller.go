package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/yoom/internal/calendar"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/meeting"
	"github.com/immxrtalbeast/yoom/internal/service"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

const (
	toastTryAgain      = "Try again later"
	toastStartFailed   = "Failed to start meeting"
	recordingTitleSize = 20
)

type CallsController struct {
	calls   service.CallInteractor
	baseURL string
	apiKey  string
	metrics Metrics
	loc     *time.Location
	log     *slog.Logger
	now     func() time.Time
}

func NewCallsController(calls service.CallInteractor, baseURL string, apiKey string, metrics Metrics, loc *time.Location, log *slog.Logger) *CallsController {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &CallsController{
		calls:   calls,
		baseURL: baseURL,
		apiKey:  apiKey,
		metrics: metrics,
		loc:     loc,
		log:     log,
		now:     time.Now,
	}
}

type callCard struct {
	Icon         string
	Title        string
	Date         string
	IsPrevious   bool
	Link         string
	ButtonText   string
	CalendarPath string
}

type callListData struct {
	Page  pageData
	Kind  domain.CallListKind
	Error string
	Cards []callCard
}

type meetingData struct {
	Page         pageData
	NotFound     bool
	Call         *domain.Call
	APIKey       string
	Token        string
	Personal     bool
	Link         string
	Upcoming     bool
	CalendarPath string
}

type personalRoomData struct {
	Page pageData
	Room *service.PersonalRoom
}

// List renders one of the call list pages.
func (c *CallsController) List(kind domain.CallListKind) gin.HandlerFunc {
	const op = "api.http.calls.list"

	return func(ctx *gin.Context) {
		data := callListData{
			Page: newPage(ctx, kind.Title()),
			Kind: kind,
		}

		items, err := c.calls.List(ctx.Request.Context(), identity.UserFrom(ctx), kind)
		if err != nil {
			c.log.Error("failed to list calls", slog.String("op", op), slog.String("kind", string(kind)), sl.Err(err))
			data.Error = "Failed to load calls"
			data.Page.Toasts = []meeting.Toast{{Title: toastTryAgain}}
			ctx.HTML(statusFor(err), "call_list", data)
			return
		}

		data.Cards = make([]callCard, 0, len(items))
		for _, item := range items {
			data.Cards = append(data.Cards, c.card(kind, item))
		}
		ctx.HTML(http.StatusOK, "call_list", data)
	}
}

func (c *CallsController) card(kind domain.CallListKind, item domain.CallListItem) callCard {
	call := item.Call
	card := callCard{
		Title:      call.Description(),
		Date:       formatDateTime(call.StartsAt, c.loc),
		Link:       domain.MeetingLink(c.baseURL, call.ID),
		ButtonText: "Start",
	}

	switch kind {
	case domain.CallListUpcoming:
		card.Icon = "/static/icons/upcoming.svg"
		card.CalendarPath = domain.MeetingPath(call.ID) + "/calendar.ics"
	case domain.CallListEnded:
		card.Icon = "/static/icons/previous.svg"
		card.IsPrevious = true
	case domain.CallListRecordings:
		rec := item.Recording
		card.Icon = "/static/icons/recordings.svg"
		card.Title = truncateRunes(rec.Filename, recordingTitleSize)
		card.Date = formatDateTime(rec.StartTime, c.loc)
		card.Link = rec.URL
		card.ButtonText = "Play"
	}

	if card.Title == "" {
		card.Title = "No Description"
	}
	return card
}

func (c *CallsController) Meeting(ctx *gin.Context) {
	const op = "api.http.calls.meeting"
	log := c.log.With(slog.String("op", op), slog.String("call_id", ctx.Param("id")))

	data := meetingData{
		Page:     newPage(ctx, "Meeting"),
		Personal: ctx.Query("personal") == "true",
	}

	call, err := c.calls.GetMeeting(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if !errors.Is(err, service.ErrMeetingNotFound) {
			log.Error("failed to load meeting", sl.Err(err))
			data.Page.Toasts = []meeting.Toast{{Title: toastTryAgain}}
		}
		data.NotFound = true
		ctx.HTML(statusFor(err), "meeting", data)
		return
	}

	token, _, err := c.calls.ClientToken(identity.UserFrom(ctx))
	if err != nil {
		log.Warn("failed to issue client token", sl.Err(err))
	}

	data.Call = call
	data.APIKey = c.apiKey
	data.Token = token
	data.Link = domain.MeetingLink(c.baseURL, call.ID)
	data.Upcoming = call.IsUpcoming(c.now())
	data.CalendarPath = domain.MeetingPath(call.ID) + "/calendar.ics"
	ctx.HTML(http.StatusOK, "meeting", data)
}

// Calendar serves the meeting as an iCalendar attachment.
func (c *CallsController) Calendar(ctx *gin.Context) {
	const op = "api.http.calls.calendar"

	call, err := c.calls.GetMeeting(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	body, err := calendar.MeetingEvent(call, domain.MeetingLink(c.baseURL, call.ID), c.now())
	if err != nil {
		if errors.Is(err, calendar.ErrNoStartTime) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": service.ErrMeetingNotScheduled.Error()})
			return
		}
		c.log.Error("failed to encode calendar", slog.String("op", op), sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode calendar"})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="meeting-`+call.ID+`.ics"`)
	ctx.Data(http.StatusOK, calendar.ContentType, body)
}

func (c *CallsController) PersonalRoom(ctx *gin.Context) {
	room, err := c.calls.PersonalRoom(identity.UserFrom(ctx))
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.HTML(http.StatusOK, "personal_room", personalRoomData{
		Page: newPage(ctx, "Personal Room"),
		Room: room,
	})
}

func (c *CallsController) StartPersonalRoom(ctx *gin.Context) {
	const op = "api.http.calls.startPersonalRoom"

	user := identity.UserFrom(ctx)
	room, err := c.calls.PersonalRoom(user)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	if _, err := c.calls.StartPersonalRoom(ctx.Request.Context(), user); err != nil {
		c.log.Error("failed to start personal room", slog.String("op", op), sl.Err(err))
		data := personalRoomData{Page: newPage(ctx, "Personal Room"), Room: room}
		data.Page.Toasts = []meeting.Toast{{Title: toastStartFailed}}
		if isHTMX(ctx.Request) {
			// htmx does not swap error responses.
			ctx.HTML(http.StatusOK, "toasts_oob", data.Page.Toasts)
			return
		}
		ctx.HTML(statusFor(err), "personal_room", data)
		return
	}

	c.metrics.IncNavigation(navigationTarget(room.Path))
	navigate(ctx, room.Path)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrMeetingNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrClientUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
