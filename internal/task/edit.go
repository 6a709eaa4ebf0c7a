package task

type EditState int

const (
	Viewing EditState = iota
	Editing
)

func (s EditState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// TitleStore is the slice of Store an edit session writes back into.
type TitleStore interface {
	Get(id int64) (Task, bool)
	EditTitle(id int64, title string) (Task, bool)
}

// EditSession holds the draft title of one task between start and
// commit/cancel. The draft is invisible to the store until Commit.
type EditSession struct {
	store    TitleStore
	targetID int64
	draft    string
	state    EditState
}

func NewEditSession(store TitleStore, id int64) *EditSession {
	s := &EditSession{store: store, targetID: id}
	s.Sync()
	return s
}

func (s *EditSession) TargetID() int64  { return s.targetID }
func (s *EditSession) Draft() string    { return s.draft }
func (s *EditSession) State() EditState { return s.state }
func (s *EditSession) Editing() bool    { return s.state == Editing }

// Sync reloads the draft from the committed title. It is ignored while
// Editing so user input is never clobbered.
func (s *EditSession) Sync() {
	if s.state == Editing {
		return
	}
	if t, ok := s.store.Get(s.targetID); ok {
		s.draft = t.Title
	}
}

func (s *EditSession) Start() {
	if s.state == Editing {
		return
	}
	s.Sync()
	s.state = Editing
}

func (s *EditSession) Update(text string) {
	if s.state != Editing {
		return
	}
	s.draft = text
}

// Commit writes the draft as-is, including an unchanged or empty one.
func (s *EditSession) Commit() (Task, bool) {
	if s.state != Editing {
		return Task{}, false
	}
	s.state = Viewing
	return s.store.EditTitle(s.targetID, s.draft)
}

// Cancel re-issues the committed title and drops the draft.
func (s *EditSession) Cancel() (Task, bool) {
	if s.state != Editing {
		return Task{}, false
	}
	s.state = Viewing
	t, ok := s.store.Get(s.targetID)
	if !ok {
		return Task{}, false
	}
	t, ok = s.store.EditTitle(s.targetID, t.Title)
	s.Sync()
	return t, ok
}

// Editor tracks the active edit session of each task on screen.
type Editor struct {
	store    TitleStore
	sessions map[int64]*EditSession
}

func NewEditor(store TitleStore) *Editor {
	return &Editor{store: store, sessions: map[int64]*EditSession{}}
}

// StartEdit opens a session for id and returns its initial draft.
func (e *Editor) StartEdit(id int64) (string, bool) {
	if _, ok := e.store.Get(id); !ok {
		return "", false
	}
	s, ok := e.sessions[id]
	if !ok {
		s = NewEditSession(e.store, id)
		e.sessions[id] = s
	}
	s.Start()
	return s.Draft(), true
}

func (e *Editor) UpdateDraft(id int64, text string) {
	if s, ok := e.sessions[id]; ok {
		s.Update(text)
	}
}

func (e *Editor) CommitEdit(id int64) (Task, bool) {
	s, ok := e.sessions[id]
	if !ok {
		return Task{}, false
	}
	delete(e.sessions, id)
	return s.Commit()
}

func (e *Editor) CancelEdit(id int64) (Task, bool) {
	s, ok := e.sessions[id]
	if !ok {
		return Task{}, false
	}
	delete(e.sessions, id)
	return s.Cancel()
}

func (e *Editor) IsEditing(id int64) bool {
	s, ok := e.sessions[id]
	return ok && s.Editing()
}

// Draft returns the in-progress title while editing, otherwise the
// committed one.
func (e *Editor) Draft(id int64) string {
	if s, ok := e.sessions[id]; ok && s.Editing() {
		return s.Draft()
	}
	if t, ok := e.store.Get(id); ok {
		return t.Title
	}
	return ""
}

// CanRemove is false while id is being edited.
func (e *Editor) CanRemove(id int64) bool {
	return !e.IsEditing(id)
}

// Forget drops any session for id, e.g. after the task is removed.
func (e *Editor) Forget(id int64) {
	delete(e.sessions, id)
}
