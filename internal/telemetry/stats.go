package telemetry

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tasklist/internal/task"
)

type Stats struct {
	Since       time.Time         `json:"since"`
	EventCounts map[EventType]int `json:"eventCounts"`
	Created     int               `json:"created"`
	// Completed counts tasks whose last completion event in the window
	// marked them done.
	Completed int `json:"completed"`
	Deleted   int `json:"deleted"`
	// CompletionRate is the share of tasks created in the window that are
	// done, 0 when nothing was created.
	CompletionRate float64 `json:"completionRate"`
}

func CalculateStats(events []Event, since time.Time) Stats {
	stats := Stats{
		Since:       since,
		EventCounts: make(map[EventType]int),
	}
	created := make(map[task.TaskID]bool)
	done := make(map[task.TaskID]bool)
	for _, event := range events {
		stats.EventCounts[event.Type]++
		switch event.Type {
		case EventTaskCreated:
			stats.Created++
			created[event.TaskID] = true
		case EventTaskCompleted:
			done[event.TaskID] = true
		case EventTaskReopened:
			done[event.TaskID] = false
		case EventTaskDeleted:
			stats.Deleted++
		}
	}

	createdDone := 0
	for id, d := range done {
		if !d {
			continue
		}
		stats.Completed++
		if created[id] {
			createdDone++
		}
	}
	if stats.Created > 0 {
		stats.CompletionRate = float64(createdDone) / float64(stats.Created)
	}
	return stats
}

func parseEventTypes(values []string) ([]EventType, bool) {
	var out []EventType
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			t := EventType(name)
			if !t.Valid() {
				return nil, false
			}
			out = append(out, t)
		}
	}
	return out, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// StatsHandler serves /api/stats.
//
//	GET    /api/stats?type=task_created,task_deleted
//	DELETE /api/stats
//
// GET reports events since the handler was built or last reset, limited to
// the given types when any are named. DELETE drops every recorded event.
func StatsHandler(repo *MemoryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			types, ok := parseEventTypes(r.URL.Query()["type"])
			if !ok {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown event type"})
				return
			}
			since := repo.Since()
			writeJSON(w, http.StatusOK, CalculateStats(repo.GetEvents(since, types), since))

		case http.MethodDelete:
			repo.Clear()
			w.WriteHeader(http.StatusNoContent)

		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		}
	}
}
