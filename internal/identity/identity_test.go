package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func signHS(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTProviderHMAC(t *testing.T) {
	p, err := NewJWTProvider(JWTConfig{
		HMACSecret:        "secret",
		Issuer:            "https://clerk.example.com",
		AuthorizedParties: []string{"https://yoom.example.com"},
		Now:               func() time.Time { return now },
	})
	require.NoError(t, err)

	valid := jwt.MapClaims{
		"sub":   "user_1",
		"name":  "Ada",
		"email": "ada@example.com",
		"iss":   "https://clerk.example.com",
		"azp":   "https://yoom.example.com",
		"exp":   now.Add(time.Minute).Unix(),
	}

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__session", Value: signHS(t, "secret", valid)})

		user, err := p.CurrentUser(r)
		require.NoError(t, err)
		require.Equal(t, &domain.User{ID: "user_1", Name: "Ada", Email: "ada@example.com"}, user)
	})

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+signHS(t, "secret", valid))

		user, err := p.CurrentUser(r)
		require.NoError(t, err)
		require.Equal(t, "user_1", user.ID)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := p.CurrentUser(httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, err, ErrNoSession)
	})

	for name, claims := range map[string]jwt.MapClaims{
		"expired":      {"sub": "user_1", "iss": "https://clerk.example.com", "exp": now.Add(-time.Minute).Unix()},
		"no expiry":    {"sub": "user_1", "iss": "https://clerk.example.com"},
		"wrong issuer": {"sub": "user_1", "iss": "https://evil.example.com", "exp": now.Add(time.Minute).Unix()},
		"no subject":   {"iss": "https://clerk.example.com", "exp": now.Add(time.Minute).Unix()},
		"wrong party":  {"sub": "user_1", "iss": "https://clerk.example.com", "azp": "https://evil.example.com", "exp": now.Add(time.Minute).Unix()},
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: "__session", Value: signHS(t, "secret", claims)})
			_, err := p.CurrentUser(r)
			require.ErrorIs(t, err, ErrInvalidSession)
		})
	}

	t.Run("wrong secret", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "__session", Value: signHS(t, "other", valid)})
		_, err := p.CurrentUser(r)
		require.ErrorIs(t, err, ErrInvalidSession)
	})
}

func TestJWTProviderRSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	p, err := NewJWTProvider(JWTConfig{PublicKeyPEM: string(pemKey), Now: func() time.Time { return now }})
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user_2",
		"exp": now.Add(time.Minute).Unix(),
	}).SignedString(key)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "__session", Value: token})
	user, err := p.CurrentUser(r)
	require.NoError(t, err)
	require.Equal(t, "user_2", user.ID)

	// HS256 tokens are refused when an RSA key is configured.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "__session", Value: signHS(t, string(pemKey), jwt.MapClaims{
		"sub": "user_2",
		"exp": now.Add(time.Minute).Unix(),
	})})
	_, err = p.CurrentUser(r)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestNewJWTProviderRequiresKey(t *testing.T) {
	_, err := NewJWTProvider(JWTConfig{})
	require.Error(t, err)

	_, err = NewJWTProvider(JWTConfig{PublicKeyPEM: "not a key"})
	require.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(Middleware(NewStaticProvider(domain.User{ID: "local", Name: "Local"}), log))
	router.GET("/page", RequireUser("/sign-in"), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, UserFrom(ctx).ID)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "local", w.Body.String())
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := NewJWTProvider(JWTConfig{HMACSecret: "secret"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(Middleware(p, log))
	protected := router.Group("/", RequireUser("https://accounts.example.com/sign-in"))
	protected.GET("/upcoming", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	protected.GET("/api/token", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/upcoming", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "https://accounts.example.com/sign-in?redirect_url=%2Fupcoming", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/token", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
