package domain

import "errors"

var ErrUnknownCallListKind = errors.New("unknown call list kind")

type CallListKind string

const (
	CallListUpcoming   CallListKind = "upcoming"
	CallListEnded      CallListKind = "ended"
	CallListRecordings CallListKind = "recordings"
)

func ParseCallListKind(s string) (CallListKind, error) {
	switch CallListKind(s) {
	case CallListUpcoming, CallListEnded, CallListRecordings:
		return CallListKind(s), nil
	}
	return "", ErrUnknownCallListKind
}

func (k CallListKind) Title() string {
	switch k {
	case CallListUpcoming:
		return "Upcoming"
	case CallListEnded:
		return "Previous"
	case CallListRecordings:
		return "Recordings"
	}
	return ""
}

func (k CallListKind) EmptyMessage() string {
	switch k {
	case CallListUpcoming:
		return "No Upcoming Calls"
	case CallListEnded:
		return "No Previous Calls"
	case CallListRecordings:
		return "No Recordings"
	}
	return ""
}

// CallListItem is one card of a call list; Recording is set only for the recordings kind.
type CallListItem struct {
	Call      *Call
	Recording *Recording
}
