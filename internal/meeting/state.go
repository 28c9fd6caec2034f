package meeting

import (
	"errors"
	"time"
)

var ErrUnknownState = errors.New("unknown meeting state")

// State selects which modal dialog is open. The zero value means none.
type State string

const (
	StateNone       State = ""
	StateScheduling State = "scheduling"
	StateJoining    State = "joining"
	StateInstant    State = "instant"
)

func ParseState(s string) (State, error) {
	switch s {
	case "", "none":
		return StateNone, nil
	case string(StateScheduling), string(StateJoining), string(StateInstant):
		return State(s), nil
	}
	return StateNone, ErrUnknownState
}

func (s State) String() string {
	if s == StateNone {
		return "none"
	}
	return string(s)
}

// Values are the form inputs shared by the modals.
type Values struct {
	DateTime    time.Time
	Description string
	Link        string
}
