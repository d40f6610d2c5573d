package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_EmptyQueryKeepsAll(t *testing.T) {
	tasks := []Task{
		{ID: "task_1", Text: "Buy milk"},
		{ID: "task_2", Text: "Call Bob", Completed: true},
	}

	got := Filter(tasks, "")
	assert.Equal(t, tasks, got)
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	tasks := []Task{
		{ID: "task_1", Text: "Buy milk"},
		{ID: "task_2", Text: "Call Bob"},
	}

	got := Filter(tasks, "bu")
	assert.Equal(t, []Task{{ID: "task_1", Text: "Buy milk"}}, got)

	got = Filter(tasks, "BOB")
	assert.Equal(t, []Task{{ID: "task_2", Text: "Call Bob"}}, got)
}

func TestFilter_PreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: "task_1", Text: "report draft"},
		{ID: "task_2", Text: "lunch"},
		{ID: "task_3", Text: "Report final"},
	}

	got := Filter(tasks, "report")
	assert.Equal(t, []TaskID{"task_1", "task_3"}, []TaskID{got[0].ID, got[1].ID})
}

func TestFilter_NoMatches(t *testing.T) {
	got := Filter([]Task{{ID: "task_1", Text: "Buy milk"}}, "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Filter(nil, "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tasks := []Task{
		{ID: "task_1", Text: "a"},
		{ID: "task_2", Text: "b"},
	}
	before := append([]Task(nil), tasks...)

	got := Filter(tasks, "a")
	got[0].Text = "changed"

	assert.Equal(t, before, tasks)
}

func TestFilter_OverStoreSnapshot(t *testing.T) {
	s := newTestStore("Buy milk", "Call Bob", "buy bread")

	got := Filter(s.List(), "BUY")
	assert.Len(t, got, 2)
	assert.Len(t, s.List(), 3)
}
