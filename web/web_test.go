package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	pages := []string{
		"login.html", "register.html", "create_request.html", "all_requests.html",
		"request_details.html", "my_neighbors.html", "about.html", "help.html", "not_found.html",
	}
	for _, page := range pages {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestTemplates_LoginRendersError(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "login.html", map[string]any{
		"Title": "Log in",
		"Error": "invalid email or password",
		"Email": "<a@b.com>",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "invalid email or password")
	assert.Contains(t, buf.String(), "&lt;a@b.com&gt;")
}

func TestDateFuncs(t *testing.T) {
	date := Funcs["date"].(func(time.Time) string)
	assert.Equal(t, "2024-01-01", date(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", date(time.Time{}))

	datetime := Funcs["datetime"].(func(time.Time) string)
	assert.Equal(t, "2024-01-01 09:30", datetime(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "", datetime(time.Time{}))
}
