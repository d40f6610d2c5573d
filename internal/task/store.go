package task

import (
	"errors"
	"slices"
	"strings"
)

var ErrEmptyText = errors.New("task cannot be empty")

// Snapshot is everything a renderer needs from the store at one point in time.
type Snapshot struct {
	Tasks       []Task `json:"tasks"`
	Mode        Mode   `json:"-"`
	PendingText string `json:"pendingText"`
}

type Option func(*Store)

// WithIDFunc replaces the id generator. The function must never return the
// same id twice.
func WithIDFunc(fn func() TaskID) Option {
	return func(s *Store) {
		if fn != nil {
			s.nextID = fn
		}
	}
}

// Store owns the task list, the edit mode and the pending input text.
//
// Store is not safe for concurrent use. Hosts with more than one goroutine
// must serialize calls themselves.
type Store struct {
	tasks    []Task
	mode     Mode
	pending  string
	nextID   func() TaskID
	onChange []func(Snapshot)
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks:  []Task{},
		nextID: newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeededStore builds a store and commits each non-blank seed text in
// order. The returned store is idle with an empty input.
func NewSeededStore(seed []string, opts ...Option) *Store {
	s := NewStore(opts...)
	for _, text := range seed {
		s.SetPendingText(text)
		if _, err := s.Commit(); err != nil {
			s.CancelEdit()
		}
	}
	return s
}

// OnChange registers fn to be called after every mutation.
func (s *Store) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.onChange = append(s.onChange, fn)
}

func (s *Store) changed() {
	if len(s.onChange) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, fn := range s.onChange {
		fn(snap)
	}
}

func (s *Store) indexOf(id TaskID) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) SetPendingText(text string) {
	s.pending = text
	s.changed()
}

func (s *Store) PendingText() string {
	return s.pending
}

func (s *Store) Mode() Mode {
	return s.mode
}

// BeginEdit switches the input to editing the task with id and loads its text.
// Unknown ids leave the store untouched.
func (s *Store) BeginEdit(id TaskID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.mode = Editing(id)
	s.pending = s.tasks[i].Text
	s.changed()
	return true
}

// CancelEdit drops any edit in progress and clears the input.
func (s *Store) CancelEdit() {
	s.mode = Idle()
	s.pending = ""
	s.changed()
}

// Commit applies the pending text: it appends a new task when idle and
// rewrites the edited task otherwise. On ErrEmptyText nothing changes.
func (s *Store) Commit() (Task, error) {
	text := strings.TrimSpace(s.pending)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	var out Task
	if id, editing := s.mode.EditingID(); editing {
		if i := s.indexOf(id); i >= 0 {
			s.tasks[i].Text = text
			out = s.tasks[i]
		}
	} else {
		out = NewTask(s.nextID(), text)
		s.tasks = append(s.tasks, out)
	}

	s.mode = Idle()
	s.pending = ""
	s.changed()
	return out, nil
}

// DeleteTask removes the task with id. Deleting the task under edit returns
// the input to idle.
func (s *Store) DeleteTask(id TaskID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)

	if editID, editing := s.mode.EditingID(); editing && editID == id {
		s.mode = Idle()
		s.pending = ""
	}
	s.changed()
	return true
}

func (s *Store) ToggleCompletion(id TaskID) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i].toggle()
	s.changed()
	return s.tasks[i], true
}

func (s *Store) Get(id TaskID) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of the tasks in insertion order.
func (s *Store) List() []Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Tasks:       s.List(),
		Mode:        s.mode,
		PendingText: s.pending,
	}
}
