package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/identity"
	"github.com/immxrtalbeast/yoom/internal/meeting"
	"github.com/immxrtalbeast/yoom/internal/web"
)

// htmxRequestHeader marks requests issued by htmx; those receive fragments
// and HX-Redirect instead of full pages and 303 redirects.
const htmxRequestHeader = "HX-Request"

type navItem struct {
	Label  string
	Route  string
	Icon   string
	Active bool
}

var sidebarLinks = []navItem{
	{Label: "Home", Route: "/", Icon: "/static/icons/home.svg"},
	{Label: "Upcoming", Route: "/upcoming", Icon: "/static/icons/upcoming.svg"},
	{Label: "Previous", Route: "/previous", Icon: "/static/icons/previous.svg"},
	{Label: "Recordings", Route: "/recordings", Icon: "/static/icons/recordings.svg"},
	{Label: "Personal Room", Route: "/personal-room", Icon: "/static/icons/add-personal.svg"},
}

type pageData struct {
	Title     string
	User      *domain.User
	Nav       []navItem
	Toasts    []meeting.Toast
	Clipboard string
}

func newPage(ctx *gin.Context, title string) pageData {
	path := ctx.Request.URL.Path
	nav := make([]navItem, len(sidebarLinks))
	for i, link := range sidebarLinks {
		link.Active = path == link.Route || (link.Route != "/" && strings.HasPrefix(path, link.Route+"/"))
		nav[i] = link
	}
	return pageData{
		Title: title,
		User:  identity.UserFrom(ctx),
		Nav:   nav,
	}
}

func isHTMX(r *http.Request) bool {
	return r != nil && strings.EqualFold(r.Header.Get(htmxRequestHeader), "true")
}

// navigate sends the browser to route. The route is used verbatim.
func navigate(ctx *gin.Context, route string) {
	// An empty route reloads the current page.
	if route == "" {
		route = "/"
	}
	if isHTMX(ctx.Request) {
		ctx.Writer.Header().Set("HX-Redirect", route)
		ctx.Status(http.StatusOK)
		return
	}
	// Location is set directly so relative links reach the browser unresolved.
	ctx.Writer.Header().Set("Location", route)
	ctx.Status(http.StatusSeeOther)
}

// navigationTarget classifies a route for metrics labels.
func navigationTarget(route string) string {
	switch {
	case strings.HasPrefix(route, "/meeting/"):
		return "meeting"
	case route == meeting.RecordingsRoute:
		return "recordings"
	case route == "/":
		return "home"
	}
	return "other"
}

func formatDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(web.DateTimeLayout)
}

// parseDateTime reads a datetime-local input value in loc. Empty or
// malformed input yields the zero time.
func parseDateTime(value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{web.DateTimeInputLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
