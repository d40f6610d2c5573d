// Package page renders the task list as a plain HTML page with templ
// components. Every control is an HTML form, so the page works without
// JavaScript.
//
// page_templ.go is generated from page.templ with `templ generate`.
package page

import (
	"net/url"

	"github.com/a-h/templ"

	"tasklist/internal/task"
)

type View struct {
	Title       string
	Placeholder string
	CharLimit   int
	Tasks       []task.Task
	Query       string
	PendingText string
	Mode        task.Mode
	Notice      string
	ExportLinks bool
}

var exportFormats = []string{"json", "csv", "pdf"}

func emptyMessage(query string) string {
	if query != "" {
		return "No tasks match your search."
	}
	return "No tasks yet."
}

func doneLabel(t task.Task) string {
	if t.Completed {
		return "Undo"
	}
	return "Done"
}

func taskAction(id task.TaskID, action string) templ.SafeURL {
	return templ.SafeURL("/ui/tasks/" + url.PathEscape(string(id)) + "/" + action)
}

func exportURL(format, query string) templ.SafeURL {
	vals := url.Values{"format": {format}}
	if query != "" {
		vals.Set("q", query)
	}
	return templ.SafeURL("/api/export?" + vals.Encode())
}
