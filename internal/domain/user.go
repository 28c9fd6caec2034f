package domain

import "strings"

// User is the signed-in account as reported by the identity provider.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

func NewUser(id string, name string, email string) *User {
	return &User{
		ID:    id,
		Name:  name,
		Email: email,
	}
}

// DisplayName falls back to the email local part and then the id.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.ID
}
