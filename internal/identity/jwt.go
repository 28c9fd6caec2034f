package identity

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/immxrtalbeast/yoom/internal/domain"
)

type JWTConfig struct {
	SessionCookie string
	// PublicKeyPEM verifies RS256 session tokens. HMACSecret is used for HS256
	// when no public key is configured.
	PublicKeyPEM      string
	HMACSecret        string
	Issuer            string
	AuthorizedParties []string
	Leeway            time.Duration
	Now               func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
}

// JWTProvider verifies session tokens issued by the external identity
// provider. Tokens are read from the session cookie or a bearer header.
type JWTProvider struct {
	cookie  string
	parser  *jwt.Parser
	key     any
	parties []string
}

func NewJWTProvider(cfg JWTConfig) (*JWTProvider, error) {
	var (
		key    any
		method string
	)

	switch {
	case strings.TrimSpace(cfg.PublicKeyPEM) != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse session public key: %w", err)
		}
		key, method = pub, jwt.SigningMethodRS256.Alg()
	case cfg.HMACSecret != "":
		key, method = []byte(cfg.HMACSecret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("session public key or hmac secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(cfg.Now))
	}

	cookie := cfg.SessionCookie
	if cookie == "" {
		cookie = "__session"
	}

	return &JWTProvider{
		cookie:  cookie,
		parser:  jwt.NewParser(opts...),
		key:     key,
		parties: cfg.AuthorizedParties,
	}, nil
}

func (p *JWTProvider) CurrentUser(r *http.Request) (*domain.User, error) {
	raw := p.token(r)
	if raw == "" {
		return nil, ErrNoSession
	}

	var claims sessionClaims
	_, err := p.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return p.key, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}

	if claims.Subject == "" {
		return nil, errors.Join(ErrInvalidSession, errors.New("subject is empty"))
	}
	if len(p.parties) > 0 && claims.AuthorizedParty != "" && !slices.Contains(p.parties, claims.AuthorizedParty) {
		return nil, errors.Join(ErrInvalidSession, errors.New("unauthorized party "+claims.AuthorizedParty))
	}

	return &domain.User{
		ID:       claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		ImageURL: claims.ImageURL,
	}, nil
}

func (p *JWTProvider) token(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(p.cookie); err == nil {
		return c.Value
	}
	return ""
}
