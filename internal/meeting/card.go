package meeting

const RecordingsRoute = "/recordings"

// Card is one of the meeting-type tiles on the home page. A card either
// opens a modal (State) or navigates away (Route).
type Card struct {
	Title       string
	Description string
	Icon        string
	Color       string
	State       State
	Route       string
}

func Cards() []Card {
	return []Card{
		{
			Title:       "New Meeting",
			Description: "Start an instant meeting",
			Icon:        "/static/icons/add-meeting.svg",
			Color:       "bg-orange-1",
			State:       StateInstant,
		},
		{
			Title:       "Join Meeting",
			Description: "Via invitation Link",
			Icon:        "/static/icons/join-meeting.svg",
			Color:       "bg-blue-1",
			State:       StateJoining,
		},
		{
			Title:       "Schedule Meeting",
			Description: "Plan your meeting",
			Icon:        "/static/icons/schedule.svg",
			Color:       "bg-purple-1",
			State:       StateScheduling,
		},
		{
			Title:       "View Recordings",
			Description: "Meeting recordings",
			Icon:        "/static/icons/recordings.svg",
			Color:       "bg-yellow-1",
			Route:       RecordingsRoute,
		},
	}
}
