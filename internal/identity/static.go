package identity

import (
	"net/http"

	"github.com/immxrtalbeast/yoom/internal/domain"
)

// StaticProvider reports the same user for every request. Used for local
// development without an identity provider.
type StaticProvider struct {
	user domain.User
}

func NewStaticProvider(user domain.User) *StaticProvider {
	return &StaticProvider{user: user}
}

func (p *StaticProvider) CurrentUser(*http.Request) (*domain.User, error) {
	user := p.user
	return &user, nil
}
