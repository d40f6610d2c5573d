package telemetry

import (
	"sync"
	"time"

	"tasklist/internal/task"
)

// MemoryRepository keeps events for the life of the process.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	since  time.Time
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events: make([]Event, 0),
		nextID: 1,
		since:  time.Now(),
		now:    time.Now,
	}
}

// Since is when the repository was created or last cleared.
func (r *MemoryRepository) Since() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.since
}

func (r *MemoryRepository) RecordEvent(eventType EventType, id task.TaskID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		TaskID:    id,
		Timestamp: r.now(),
	})
	r.nextID++
}

// GetEvents returns events at or after since, optionally limited to types.
func (r *MemoryRepository) GetEvents(since time.Time, eventTypes []EventType) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[EventType]bool, len(eventTypes))
	for _, t := range eventTypes {
		typeFilter[t] = true
	}

	result := make([]Event, 0)
	for _, event := range r.events {
		if event.Timestamp.Before(since) {
			continue
		}
		if len(eventTypes) > 0 && !typeFilter[event.Type] {
			continue
		}
		result = append(result, event)
	}
	return result
}

func (r *MemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1
	r.since = r.now()
}

// Watch records an event for every difference between consecutive store
// snapshots.
func (r *MemoryRepository) Watch(s *task.Store) {
	prev := s.List()
	s.OnChange(func(snap task.Snapshot) {
		for _, d := range Diff(prev, snap.Tasks) {
			r.RecordEvent(d.Type, d.TaskID)
		}
		prev = snap.Tasks
	})
}

type Change struct {
	Type   EventType
	TaskID task.TaskID
}

// Diff lists what happened between two task lists: deletions first, then
// creations, edits and completion flips in list order.
func Diff(before, after []task.Task) []Change {
	old := make(map[task.TaskID]task.Task, len(before))
	for _, t := range before {
		old[t.ID] = t
	}
	seen := make(map[task.TaskID]bool, len(after))
	for _, t := range after {
		seen[t.ID] = true
	}

	var out []Change
	for _, t := range before {
		if !seen[t.ID] {
			out = append(out, Change{EventTaskDeleted, t.ID})
		}
	}
	for _, t := range after {
		prev, ok := old[t.ID]
		if !ok {
			out = append(out, Change{EventTaskCreated, t.ID})
			continue
		}
		if prev.Text != t.Text {
			out = append(out, Change{EventTaskUpdated, t.ID})
		}
		if prev.Completed != t.Completed {
			if t.Completed {
				out = append(out, Change{EventTaskCompleted, t.ID})
			} else {
				out = append(out, Change{EventTaskReopened, t.ID})
			}
		}
	}
	return out
}
