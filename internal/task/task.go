package task

import (
	"strings"

	"github.com/google/uuid"
)

type TaskID string

type Task struct {
	ID        TaskID `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func newID() TaskID {
	return TaskID("task_" + uuid.NewString())
}

// NewTask builds an incomplete task with trimmed text. It does not validate;
// Store.Commit is the only path that stores tasks.
func NewTask(id TaskID, text string) Task {
	return Task{
		ID:        id,
		Text:      strings.TrimSpace(text),
		Completed: false,
	}
}

func (t *Task) toggle() {
	t.Completed = !t.Completed
}

// Matches reports whether the task text contains query, ignoring case.
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(query))
}

// Mode is the meaning of the shared text input. The zero value is Idle.
type Mode struct {
	editing TaskID
}

func Idle() Mode {
	return Mode{}
}

func Editing(id TaskID) Mode {
	return Mode{editing: id}
}

func (m Mode) IsIdle() bool {
	return m.editing == ""
}

// EditingID returns the id under edit, or false when idle.
func (m Mode) EditingID() (TaskID, bool) {
	return m.editing, m.editing != ""
}

func (m Mode) String() string {
	if m.IsIdle() {
		return "idle"
	}
	return "editing"
}

// SubmitLabel is the caption for the commit button in the given mode.
func SubmitLabel(m Mode) string {
	if m.IsIdle() {
		return "Add Task"
	}
	return "Update Task"
}
