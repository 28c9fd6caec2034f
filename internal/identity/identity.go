package identity

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/lib/logger/sl"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

const userContextKey = "identity.user"

// Provider resolves the signed-in user of a request.
type Provider interface {
	CurrentUser(r *http.Request) (*domain.User, error)
}

// Middleware stores the current user, if any, in the gin context. Requests
// without a valid session continue anonymously.
func Middleware(provider Provider, log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := provider.CurrentUser(ctx.Request)
		switch {
		case err == nil && user != nil:
			ctx.Set(userContextKey, user)
		case errors.Is(err, ErrNoSession):
		case err != nil:
			log.Debug("session rejected", slog.String("path", ctx.Request.URL.Path), sl.Err(err))
		}
		ctx.Next()
	}
}

// RequireUser redirects anonymous page requests to the sign-in page and
// rejects anonymous API requests.
func RequireUser(signInURL string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if UserFrom(ctx) != nil {
			ctx.Next()
			return
		}

		if wantsJSON(ctx.Request) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		target := signInURL
		if u, err := url.Parse(signInURL); err == nil {
			q := u.Query()
			q.Set("redirect_url", ctx.Request.URL.RequestURI())
			u.RawQuery = q.Encode()
			target = u.String()
		}
		ctx.Redirect(http.StatusSeeOther, target)
		ctx.Abort()
	}
}

func UserFrom(ctx *gin.Context) *domain.User {
	v, ok := ctx.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
