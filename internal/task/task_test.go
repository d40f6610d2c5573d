package task

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seqIDs() func() TaskID {
	n := 0
	return func() TaskID {
		n++
		return TaskID(fmt.Sprintf("task_%d", n))
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask("task_1", "  pick up eggs \t")

	assert.Equal(t, TaskID("task_1"), task.ID)
	assert.Equal(t, "pick up eggs", task.Text)
	assert.False(t, task.Completed)
}

func TestNewID_Format(t *testing.T) {
	id := newID()

	assert.True(t, strings.HasPrefix(string(id), "task_"))
	assert.Len(t, string(id), len("task_")+36)
}

func TestNewID_UniqueIDs(t *testing.T) {
	seen := map[TaskID]bool{}
	for i := 0; i < 1000; i++ {
		id := newID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestTask_Matches(t *testing.T) {
	task := Task{Text: "Buy milk"}

	assert.True(t, task.Matches(""))
	assert.True(t, task.Matches("bu"))
	assert.True(t, task.Matches("MILK"))
	assert.True(t, task.Matches("y m"))
	assert.False(t, task.Matches("bob"))
}

func TestMode(t *testing.T) {
	var zero Mode
	assert.True(t, zero.IsIdle())
	assert.Equal(t, Idle(), zero)
	assert.Equal(t, "idle", zero.String())

	m := Editing("task_7")
	assert.False(t, m.IsIdle())
	id, ok := m.EditingID()
	assert.True(t, ok)
	assert.Equal(t, TaskID("task_7"), id)
	assert.Equal(t, "editing", m.String())

	_, ok = Idle().EditingID()
	assert.False(t, ok)
}

func TestSubmitLabel(t *testing.T) {
	assert.Equal(t, "Add Task", SubmitLabel(Idle()))
	assert.Equal(t, "Update Task", SubmitLabel(Editing("task_1")))
}
