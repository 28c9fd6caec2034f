package meeting

type ModalKind string

const (
	ModalNone      ModalKind = ""
	ModalSchedule  ModalKind = "schedule"
	ModalScheduled ModalKind = "scheduled"
	ModalInstant   ModalKind = "instant"
	ModalJoin      ModalKind = "join"
)

// Modal describes the single dialog currently shown.
type Modal struct {
	Kind       ModalKind
	Title      string
	ButtonText string
	ButtonIcon string
	Image      string
	Centered   bool
}

func (m Modal) IsOpen() bool {
	return m.Kind != ModalNone
}

func modalFor(state State, scheduled bool) Modal {
	switch state {
	case StateScheduling:
		if scheduled {
			return Modal{
				Kind:       ModalScheduled,
				Title:      "Meeting Scheduled",
				ButtonText: "Copy Meeting Link",
				ButtonIcon: "/static/icons/copy.svg",
				Image:      "/static/icons/checked.svg",
				Centered:   true,
			}
		}
		return Modal{
			Kind:       ModalSchedule,
			Title:      "Schedule a meeting",
			ButtonText: "Schedule Meeting",
		}
	case StateInstant:
		return Modal{
			Kind:       ModalInstant,
			Title:      "Start an Instant Meeting",
			ButtonText: "Start Meeting",
			Centered:   true,
		}
	case StateJoining:
		return Modal{
			Kind:       ModalJoin,
			Title:      "Paste The Link Below",
			ButtonText: "Join Meeting",
			Centered:   true,
		}
	}
	return Modal{Kind: ModalNone}
}
