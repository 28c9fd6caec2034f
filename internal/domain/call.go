package domain

import (
	"time"
)

const DefaultCallType = "default"

const (
	CustomDescription = "description"

	DefaultDescription = "Instant Meeting"
)

// Call is the handle the video platform returns for a call/room.
type Call struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	CreatedBy string         `json:"created_by"`
	StartsAt  time.Time      `json:"starts_at"`
	EndedAt   time.Time      `json:"ended_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Custom    map[string]any `json:"custom,omitempty"`
}

// CID is the platform-wide call identifier "<type>:<id>".
func (c *Call) CID() string {
	return c.Type + ":" + c.ID
}

func (c *Call) Description() string {
	if c == nil || c.Custom == nil {
		return ""
	}
	desc, _ := c.Custom[CustomDescription].(string)
	return desc
}

func (c *Call) IsEnded() bool {
	return c != nil && !c.EndedAt.IsZero()
}

func (c *Call) IsUpcoming(now time.Time) bool {
	if c == nil || c.IsEnded() || c.StartsAt.IsZero() {
		return false
	}
	return c.StartsAt.After(now)
}

// HasStarted reports whether a not-yet-ended call is past its start time.
func (c *Call) HasStarted(now time.Time) bool {
	if c == nil || c.IsEnded() {
		return false
	}
	return c.StartsAt.IsZero() || !c.StartsAt.After(now)
}

func MeetingPath(callID string) string {
	return "/meeting/" + callID
}

func MeetingLink(baseURL string, callID string) string {
	return baseURL + MeetingPath(callID)
}
