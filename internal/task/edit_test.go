package task

import "testing"

func TestEditCancelLeavesTitle(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "Buy milk"}})
	e := NewEditor(s)

	draft, ok := e.StartEdit(1)
	if !ok || draft != "Buy milk" {
		t.Fatalf("start edit: draft=%q ok=%v", draft, ok)
	}
	e.UpdateDraft(1, "X")
	if got, _ := s.Get(1); got.Title != "Buy milk" {
		t.Fatalf("draft leaked into store: %q", got.Title)
	}
	e.CancelEdit(1)

	if got, _ := s.Get(1); got.Title != "Buy milk" {
		t.Fatalf("cancel changed title to %q", got.Title)
	}
	if e.IsEditing(1) {
		t.Fatalf("expected viewing after cancel")
	}
	if e.Draft(1) != "Buy milk" {
		t.Fatalf("draft not reset after cancel: %q", e.Draft(1))
	}
}

func TestEditCommitWritesDraft(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "Old", Done: true}})
	e := NewEditor(s)

	e.StartEdit(1)
	e.UpdateDraft(1, "New Name")
	if e.Draft(1) != "New Name" {
		t.Fatalf("draft = %q", e.Draft(1))
	}
	got, ok := e.CommitEdit(1)
	if !ok {
		t.Fatalf("commit did not apply")
	}
	if got != (Task{ID: 1, Title: "New Name", Done: true}) {
		t.Fatalf("unexpected task %+v", got)
	}
	if e.IsEditing(1) {
		t.Fatalf("expected viewing after commit")
	}
}

func TestEditCommitAllowsEmptyDraft(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "Old"}})
	e := NewEditor(s)
	e.StartEdit(1)
	e.UpdateDraft(1, "")
	e.CommitEdit(1)
	if got, _ := s.Get(1); got.Title != "" {
		t.Fatalf("expected empty title, got %q", got.Title)
	}
}

func TestEditCommitCanReintroduceDuplicate(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})
	e := NewEditor(s)
	e.StartEdit(2)
	e.UpdateDraft(2, "A")
	e.CommitEdit(2)
	if got, _ := s.Get(2); got.Title != "A" {
		t.Fatalf("expected duplicate title through edit, got %q", got.Title)
	}
}

func TestStartEditUsesLatestCommittedTitle(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}})
	e := NewEditor(s)

	e.StartEdit(1)
	e.UpdateDraft(1, "stale")
	e.CancelEdit(1)

	s.EditTitle(1, "B")
	draft, _ := e.StartEdit(1)
	if draft != "B" {
		t.Fatalf("expected draft B, got %q", draft)
	}
}

func TestSessionSyncOnlyWhileViewing(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}})
	sess := NewEditSession(s, 1)
	if sess.State() != Viewing || sess.Draft() != "A" {
		t.Fatalf("new session: state=%v draft=%q", sess.State(), sess.Draft())
	}

	s.EditTitle(1, "B")
	sess.Sync()
	if sess.Draft() != "B" {
		t.Fatalf("expected resync to B, got %q", sess.Draft())
	}

	sess.Start()
	sess.Update("typing")
	s.EditTitle(1, "C")
	sess.Sync()
	if sess.Draft() != "typing" {
		t.Fatalf("sync clobbered draft: %q", sess.Draft())
	}
}

func TestSessionIgnoresInputWhileViewing(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}})
	sess := NewEditSession(s, 1)
	sess.Update("X")
	if sess.Draft() != "A" {
		t.Fatalf("viewing session accepted draft %q", sess.Draft())
	}
	if _, ok := sess.Commit(); ok {
		t.Fatalf("commit while viewing should be a no-op")
	}
	if _, ok := sess.Cancel(); ok {
		t.Fatalf("cancel while viewing should be a no-op")
	}
}

func TestEditorBlocksRemovalWhileEditing(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}})
	e := NewEditor(s)
	e.StartEdit(1)
	if e.CanRemove(1) {
		t.Fatalf("expected removal disabled while editing")
	}
	if !e.CanRemove(2) {
		t.Fatalf("other task should stay removable")
	}
	e.CommitEdit(1)
	if !e.CanRemove(1) {
		t.Fatalf("expected removal enabled after commit")
	}
}

func TestEditorUnknownID(t *testing.T) {
	e := NewEditor(NewStore(nil))
	if _, ok := e.StartEdit(3); ok {
		t.Fatalf("expected start edit on unknown id to fail")
	}
	e.UpdateDraft(3, "x")
	if _, ok := e.CommitEdit(3); ok {
		t.Fatalf("expected commit on unknown id to fail")
	}
	if e.Draft(3) != "" {
		t.Fatalf("expected empty draft")
	}
}

func TestEditorForget(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Title: "A"}})
	e := NewEditor(s)
	e.StartEdit(1)
	e.Forget(1)
	if e.IsEditing(1) {
		t.Fatalf("expected session dropped")
	}
}
