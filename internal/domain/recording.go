package domain

import "time"

// Recording is a finished recording file attached to a call.
type Recording struct {
	CallType  string    `json:"call_type"`
	CallID    string    `json:"call_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (r *Recording) Duration() time.Duration {
	if r.StartTime.IsZero() || r.EndTime.Before(r.StartTime) {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}
