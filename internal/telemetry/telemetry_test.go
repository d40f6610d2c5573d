package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/task"
)

func commit(t *testing.T, s *task.Store, text string) task.Task {
	t.Helper()
	s.SetPendingText(text)
	got, err := s.Commit()
	require.NoError(t, err)
	return got
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestDiff(t *testing.T) {
	before := []task.Task{
		{ID: "task_1", Text: "a"},
		{ID: "task_2", Text: "b"},
		{ID: "task_3", Text: "c", Completed: true},
	}
	after := []task.Task{
		{ID: "task_1", Text: "a2", Completed: true},
		{ID: "task_3", Text: "c"},
		{ID: "task_4", Text: "d"},
	}

	assert.Equal(t, []Change{
		{EventTaskDeleted, "task_2"},
		{EventTaskUpdated, "task_1"},
		{EventTaskCompleted, "task_1"},
		{EventTaskReopened, "task_3"},
		{EventTaskCreated, "task_4"},
	}, Diff(before, after))

	assert.Empty(t, Diff(before, before))
}

func TestMemoryRepository_Watch(t *testing.T) {
	repo := NewMemoryRepository()
	store := task.NewStore()
	repo.Watch(store)

	a := commit(t, store, "a")
	store.SetPendingText("typing does not count")
	store.CancelEdit()
	require.True(t, store.BeginEdit(a.ID))
	commit(t, store, "a2")
	store.ToggleCompletion(a.ID)
	store.ToggleCompletion(a.ID)
	store.DeleteTask(a.ID)

	events := repo.GetEvents(time.Time{}, nil)
	assert.Equal(t, []EventType{
		EventTaskCreated,
		EventTaskUpdated,
		EventTaskCompleted,
		EventTaskReopened,
		EventTaskDeleted,
	}, eventTypes(events))
	for i, e := range events {
		assert.Equal(t, i+1, e.ID)
		assert.Equal(t, a.ID, e.TaskID)
	}
}

func TestMemoryRepository_GetEventsFilters(t *testing.T) {
	repo := NewMemoryRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	repo.RecordEvent(EventTaskCreated, "task_1")
	repo.RecordEvent(EventTaskCompleted, "task_1")
	repo.RecordEvent(EventTaskCreated, "task_2")

	assert.Len(t, repo.GetEvents(base.Add(2*time.Minute), nil), 2)
	assert.Len(t, repo.GetEvents(time.Time{}, []EventType{EventTaskCreated}), 2)

	repo.Clear()
	assert.Empty(t, repo.GetEvents(time.Time{}, nil))
}

func TestCalculateStats(t *testing.T) {
	events := []Event{
		{Type: EventTaskCreated, TaskID: "task_1"},
		{Type: EventTaskCreated, TaskID: "task_2"},
		{Type: EventTaskCompleted, TaskID: "task_1"},
		{Type: EventTaskCompleted, TaskID: "task_2"},
		{Type: EventTaskReopened, TaskID: "task_2"},
		{Type: EventTaskDeleted, TaskID: "task_2"},
	}

	stats := CalculateStats(events, time.Time{})
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Deleted)
	assert.InDelta(t, 0.5, stats.CompletionRate, 1e-9)
	assert.Equal(t, 2, stats.EventCounts[EventTaskCompleted])

	assert.Zero(t, CalculateStats(nil, time.Time{}).CompletionRate)
}

func TestCalculateStats_OlderTasksDoNotInflateRate(t *testing.T) {
	events := []Event{
		{Type: EventTaskCompleted, TaskID: "seed_1"},
		{Type: EventTaskCompleted, TaskID: "seed_2"},
		{Type: EventTaskCreated, TaskID: "task_3"},
		{Type: EventTaskCompleted, TaskID: "task_3"},
		{Type: EventTaskReopened, TaskID: "seed_9"},
	}

	stats := CalculateStats(events, time.Time{})
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 3, stats.Completed)
	assert.InDelta(t, 1.0, stats.CompletionRate, 1e-9)

	stats = CalculateStats(events[:2], time.Time{})
	assert.Equal(t, 2, stats.Completed)
	assert.Zero(t, stats.CompletionRate)
}

func getStats(t *testing.T, h http.HandlerFunc, target string) Stats {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, 200, rr.Code, rr.Body.String())

	var stats Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	return stats
}

func TestStatsHandler(t *testing.T) {
	repo := NewMemoryRepository()
	store := task.NewSeededStore([]string{"seed a", "seed b"})
	repo.Watch(store)
	h := StatsHandler(repo)

	commit(t, store, "c")
	for _, tk := range store.List() {
		store.ToggleCompletion(tk.ID)
	}

	stats := getStats(t, h, "/api/stats")
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 3, stats.Completed)
	assert.InDelta(t, 1.0, stats.CompletionRate, 1e-9)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/api/stats", nil))
	assert.Equal(t, 405, rr.Code)
}

func TestStatsHandler_TypeFilter(t *testing.T) {
	repo := NewMemoryRepository()
	store := task.NewStore()
	repo.Watch(store)
	h := StatsHandler(repo)

	a := commit(t, store, "a")
	commit(t, store, "b")
	store.ToggleCompletion(a.ID)
	store.DeleteTask(a.ID)

	stats := getStats(t, h, "/api/stats?type=task_created")
	assert.Equal(t, map[EventType]int{EventTaskCreated: 2}, stats.EventCounts)
	assert.Zero(t, stats.Completed)

	stats = getStats(t, h, "/api/stats?type=task_completed,task_deleted")
	assert.Equal(t, map[EventType]int{EventTaskCompleted: 1, EventTaskDeleted: 1}, stats.EventCounts)

	stats = getStats(t, h, "/api/stats?type=task_created&type=task_deleted")
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Deleted)

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/api/stats?type=task_archived", nil))
	assert.Equal(t, 400, rr.Code)
}

func TestStatsHandler_DeleteResets(t *testing.T) {
	repo := NewMemoryRepository()
	store := task.NewStore()
	repo.Watch(store)
	h := StatsHandler(repo)

	a := commit(t, store, "a")
	before := repo.Since()

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodDelete, "/api/stats", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, repo.GetEvents(time.Time{}, nil))
	assert.False(t, repo.Since().Before(before))

	store.ToggleCompletion(a.ID)
	stats := getStats(t, h, "/api/stats")
	assert.Zero(t, stats.Created)
	assert.Equal(t, 1, stats.Completed)
	assert.Zero(t, stats.CompletionRate)
}

func TestEventType_Valid(t *testing.T) {
	assert.True(t, EventTaskReopened.Valid())
	assert.False(t, EventType("task_archived").Valid())
	assert.False(t, EventType("").Valid())
}
