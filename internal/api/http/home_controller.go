package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/meeting"
	"github.com/immxrtalbeast/yoom/internal/service"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

// HomeController serves the home page and the meeting-type actions posted
// from it. Every action names its visit in the "visit" form field.
type HomeController struct {
	visits  service.VisitInteractor
	calls   service.CallInteractor
	metrics Metrics
	loc     *time.Location
	log     *slog.Logger
	now     func() time.Time
}

func NewHomeController(visits service.VisitInteractor, calls service.CallInteractor, metrics Metrics, loc *time.Location, log *slog.Logger) *HomeController {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &HomeController{
		visits:  visits,
		calls:   calls,
		metrics: metrics,
		loc:     loc,
		log:     log,
		now:     time.Now,
	}
}

type homeData struct {
	Page        pageData
	Now         time.Time
	Next        *domain.Call
	VisitID     string
	Cards       []meeting.Card
	Modal       meeting.Modal
	Values      meeting.Values
	MeetingLink string
}

func (c *HomeController) Home(ctx *gin.Context) {
	visitID, list := c.visits.Open(identity.UserFrom(ctx))
	ctx.HTML(http.StatusOK, "home", c.homeData(ctx, visitID, list, true))
}

func (c *HomeController) Select(ctx *gin.Context) {
	visitID, list, ok := c.visit(ctx)
	if !ok {
		return
	}
	state, err := meeting.ParseState(ctx.PostForm("state"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list.Select(state)
	c.respond(ctx, visitID, list, nil)
}

func (c *HomeController) Close(ctx *gin.Context) {
	visitID, list, ok := c.visit(ctx)
	if !ok {
		return
	}
	list.Close()
	c.respond(ctx, visitID, list, nil)
}

// Values stores edited form fields without re-rendering the modal.
func (c *HomeController) Values(ctx *gin.Context) {
	visitID, list, ok := c.visit(ctx)
	if !ok {
		return
	}
	c.applyValues(ctx, list)
	if isHTMX(ctx.Request) {
		ctx.Status(http.StatusNoContent)
		return
	}
	c.respond(ctx, visitID, list, nil)
}

func (c *HomeController) Submit(ctx *gin.Context) {
	visitID, list, ok := c.visit(ctx)
	if !ok {
		return
	}
	c.applyValues(ctx, list)
	c.respond(ctx, visitID, list, list.Submit(ctx.Request.Context()))
}

func (c *HomeController) Recordings(ctx *gin.Context) {
	visitID, list, ok := c.visit(ctx)
	if !ok {
		return
	}
	c.respond(ctx, visitID, list, list.ViewRecordings())
}

// visit resolves the posted visit. An unknown or expired visit reloads the
// home page, which opens a fresh one.
func (c *HomeController) visit(ctx *gin.Context) (uuid.UUID, *meeting.TypeList, bool) {
	const op = "api.http.home.visit"

	id, err := uuid.Parse(ctx.PostForm("visit"))
	if err == nil {
		var list *meeting.TypeList
		list, err = c.visits.Get(id, identity.UserFrom(ctx))
		if err == nil {
			return id, list, true
		}
	}

	if !errors.Is(err, service.ErrVisitNotFound) {
		err = errors.Join(service.ErrVisitNotFound, err)
	}
	c.log.Debug("visit unavailable", slog.String("op", op), sl.Err(err))
	navigate(ctx, "/")
	return uuid.Nil, nil, false
}

func (c *HomeController) applyValues(ctx *gin.Context, list *meeting.TypeList) {
	if v, ok := ctx.GetPostForm("description"); ok {
		list.SetDescription(v)
	}
	if v, ok := ctx.GetPostForm("date_time"); ok {
		list.SetDateTime(parseDateTime(v, c.loc))
	}
	if v, ok := ctx.GetPostForm("link"); ok {
		list.SetLink(v)
	}
}

// respond turns the controller's effects into a response. Navigation ends
// the visit; toasts and clipboard writes travel with the re-rendered modal.
func (c *HomeController) respond(ctx *gin.Context, visitID uuid.UUID, list *meeting.TypeList, effects []meeting.Effect) {
	if nav, ok := meeting.NavigationOf(effects); ok {
		c.visits.Discard(visitID)
		c.metrics.IncNavigation(navigationTarget(nav.Route))
		navigate(ctx, nav.Route)
		return
	}

	htmx := isHTMX(ctx.Request)
	data := c.homeData(ctx, visitID, list, !htmx)
	data.Page.Toasts = meeting.ToastsOf(effects)
	if clip, ok := meeting.ClipboardOf(effects); ok {
		data.Page.Clipboard = clip.Text
	}

	if htmx {
		ctx.HTML(http.StatusOK, "meeting_modal_response", data)
		return
	}
	ctx.HTML(http.StatusOK, "home", data)
}

func (c *HomeController) homeData(ctx *gin.Context, visitID uuid.UUID, list *meeting.TypeList, fullPage bool) homeData {
	data := homeData{
		Page:        newPage(ctx, "Home"),
		Now:         c.now(),
		VisitID:     visitID.String(),
		Cards:       meeting.Cards(),
		Modal:       list.Modal(),
		Values:      list.Values(),
		MeetingLink: list.MeetingLink(),
	}
	if fullPage {
		data.Next = c.nextUpcoming(ctx)
	}
	return data
}

func (c *HomeController) nextUpcoming(ctx *gin.Context) *domain.Call {
	const op = "api.http.home.nextUpcoming"

	user := identity.UserFrom(ctx)
	if user == nil || c.calls == nil {
		return nil
	}
	next, err := c.calls.NextUpcoming(ctx.Request.Context(), user)
	if err != nil {
		c.log.Warn("failed to load next upcoming call", slog.String("op", op), sl.Err(err))
		return nil
	}
	return next
}
