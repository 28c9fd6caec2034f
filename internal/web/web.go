package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	ClockTimeLayout = "3:04 PM"
	ClockDateLayout = "Monday, January 2, 2006"
	DateTimeLayout  = "January 2, 2006 3:04 PM"
	// DateTimeInputLayout is the value format of <input type="datetime-local">.
	DateTimeInputLayout = "2006-01-02T15:04"
)

// Templates parses the embedded page templates. loc is the zone times are
// displayed in.
func Templates(loc *time.Location) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(loc)).ParseFS(templateFS, "templates/*.html")
}

func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func FuncMap(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	format := func(layout string) func(time.Time) string {
		return func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format(layout)
		}
	}
	return template.FuncMap{
		"clockTime":     format(ClockTimeLayout),
		"clockDate":     format(ClockDateLayout),
		"dateTime":      format(DateTimeLayout),
		"dateTimeInput": format(DateTimeInputLayout),
	}
}
