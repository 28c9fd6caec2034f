package meeting

const (
	ToastSelectDateTime = "Please select a date and time"
	ToastMeetingCreated = "Meeting Created"
	ToastCreateFailed   = "Failed to create meeting"
	ToastLinkCopied     = "Link Copied"
)

// Effect is a browser side effect requested by a controller action.
// The HTTP layer turns each one into a redirect, a clipboard write or a
// notification.
type Effect interface {
	effect()
}

type Navigate struct {
	Route string
}

type CopyToClipboard struct {
	Text string
}

type Toast struct {
	Title       string
	Description string
}

func (Navigate) effect()        {}
func (CopyToClipboard) effect() {}
func (Toast) effect()           {}

// NavigationOf returns the first navigation among effects.
func NavigationOf(effects []Effect) (Navigate, bool) {
	for _, e := range effects {
		if nav, ok := e.(Navigate); ok {
			return nav, true
		}
	}
	return Navigate{}, false
}

func ToastsOf(effects []Effect) []Toast {
	var toasts []Toast
	for _, e := range effects {
		if t, ok := e.(Toast); ok {
			toasts = append(toasts, t)
		}
	}
	return toasts
}

func ClipboardOf(effects []Effect) (CopyToClipboard, bool) {
	for _, e := range effects {
		if c, ok := e.(CopyToClipboard); ok {
			return c, true
		}
	}
	return CopyToClipboard{}, false
}
