package web

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates(time.UTC)
	require.NoError(t, err)

	for _, name := range []string{"head", "foot", "home", "meeting_modal", "meeting_modal_response", "call_list", "meeting", "personal_room", "toasts_oob"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"app.css", "app.js", "icons/logo.svg", "icons/copy.svg", "icons/checked.svg"} {
		_, err := fs.Stat(Static(), name)
		require.NoError(t, err, name)
	}
}

func TestFuncMap(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	funcs := FuncMap(loc)
	ts := time.Date(2026, 10, 19, 12, 5, 0, 0, time.UTC)

	require.Equal(t, "2:05 PM", funcs["clockTime"].(func(time.Time) string)(ts))
	require.Equal(t, "Monday, October 19, 2026", funcs["clockDate"].(func(time.Time) string)(ts))
	require.Equal(t, "2026-10-19T14:05", funcs["dateTimeInput"].(func(time.Time) string)(ts))
	require.Empty(t, funcs["dateTime"].(func(time.Time) string)(time.Time{}))
}

func TestClipboardWrittenFromClickOnly(t *testing.T) {
	raw, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	script := string(raw)

	// Writes outside a user gesture are rejected by browsers.
	require.Equal(t, 1, strings.Count(script, "navigator.clipboard.writeText("))
	require.Contains(t, script, `document.addEventListener("click"`)
	require.Contains(t, script, "Failed to copy link")
}
