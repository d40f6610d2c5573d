package telemetry

import (
	"time"

	"tasklist/internal/task"
)

type EventType string

const (
	EventTaskCreated   EventType = "task_created"
	EventTaskUpdated   EventType = "task_updated"
	EventTaskCompleted EventType = "task_completed"
	EventTaskReopened  EventType = "task_reopened"
	EventTaskDeleted   EventType = "task_deleted"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTaskCreated, EventTaskUpdated, EventTaskCompleted, EventTaskReopened, EventTaskDeleted:
		return true
	}
	return false
}

type Event struct {
	ID        int         `json:"id"`
	Type      EventType   `json:"type"`
	TaskID    task.TaskID `json:"taskId"`
	Timestamp time.Time   `json:"timestamp"`
}
