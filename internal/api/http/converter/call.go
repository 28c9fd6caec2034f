package converter

import (
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
)

type CallResponse struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	CID         string     `json:"cid"`
	CreatedBy   string     `json:"created_by"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	IsUpcoming  bool       `json:"is_upcoming"`
	IsEnded     bool       `json:"is_ended"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	APIKey    string    `json:"api_key"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func CallToApi(c *domain.Call, baseURL string, now time.Time) *CallResponse {
	resp := &CallResponse{
		ID:          c.ID,
		Type:        c.Type,
		CID:         c.CID(),
		CreatedBy:   c.CreatedBy,
		Description: c.Description(),
		Link:        domain.MeetingLink(baseURL, c.ID),
		CreatedAt:   c.CreatedAt,
		IsUpcoming:  c.IsUpcoming(now),
		IsEnded:     c.IsEnded(),
	}
	if !c.StartsAt.IsZero() {
		startsAt := c.StartsAt
		resp.StartsAt = &startsAt
	}
	if !c.EndedAt.IsZero() {
		endedAt := c.EndedAt
		resp.EndedAt = &endedAt
	}
	return resp
}

type RecordingResponse struct {
	CallID    string    `json:"call_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`
}

func RecordingToApi(r *domain.Recording) *RecordingResponse {
	return &RecordingResponse{
		CallID:    r.CallID,
		Filename:  r.Filename,
		URL:       r.URL,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Duration:  r.Duration().String(),
	}
}
