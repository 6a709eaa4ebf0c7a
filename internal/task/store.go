package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle     = errors.New("title is empty")
	ErrDuplicateTitle = errors.New("task already registered")
)

type Task struct {
	ID    int64
	Title string
	Done  bool
}

// Confirmer decides whether a pending removal goes ahead.
type Confirmer interface {
	ConfirmRemove(t Task) bool
}

type ConfirmFunc func(t Task) bool

func (f ConfirmFunc) ConfirmRemove(t Task) bool { return f(t) }

// Answer is a decision the caller already collected from the user.
type Answer bool

func (a Answer) ConfirmRemove(Task) bool { return bool(a) }

// Store owns the ordered task collection. It is not safe for concurrent use;
// every call is expected to come from a single event loop.
type Store struct {
	tasks  []Task
	now    func() time.Time
	lastID int64
}

func NewStore(existing []Task) *Store {
	s := &Store{now: time.Now}
	s.tasks = make([]Task, 0, len(existing))
	for _, t := range existing {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
		s.tasks = append(s.tasks, t)
	}
	return s
}

// nextID returns the creation time in milliseconds, bumped past the last id
// handed out so ids stay unique when the clock stalls or goes backwards.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) Add(title string) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	for _, t := range s.tasks {
		if t.Title == title {
			return Task{}, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
	}
	t := Task{ID: s.nextID(), Title: title}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) ToggleDone(id int64) (Task, bool) {
	if id == 0 {
		return Task{}, false
	}
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i].Done = !s.tasks[i].Done
	return s.tasks[i], true
}

// Remove deletes the task after c agrees. Unknown ids never reach c.
func (s *Store) Remove(id int64, c Confirmer) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	t := s.tasks[i]
	if c == nil || !c.ConfirmRemove(t) {
		return t, false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return t, true
}

// EditTitle does not re-check uniqueness or emptiness; only Add does.
func (s *Store) EditTitle(id int64, title string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i].Title = title
	return s.tasks[i], true
}

func (s *Store) Count() int {
	return len(s.tasks)
}

func (s *Store) Get(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
