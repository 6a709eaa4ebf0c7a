package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"todo/internal/task"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns adds columns introduced after the first schema.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"position": "ALTER TABLE tasks ADD COLUMN position INTEGER NOT NULL DEFAULT 0;",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) FetchTasks() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, title, done FROM tasks ORDER BY position, id;`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var doneInt int
		if err := rows.Scan(&t.ID, &t.Title, &doneInt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Done = doneInt == 1
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// InsertTask appends t after every stored task. The id comes from the caller.
func (s *Store) InsertTask(t task.Task) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO tasks (id, title, done, position, created_at)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks), ?);`,
		t.ID, t.Title, boolToInt(t.Done), now)
	if err != nil {
		return fmt.Errorf("insert task %d: %w", t.ID, err)
	}
	return nil
}

func (s *Store) SetDone(id int64, done bool) error {
	if _, err := s.db.Exec(`UPDATE tasks SET done = ? WHERE id = ?;`, boolToInt(done), id); err != nil {
		return fmt.Errorf("set done %d: %w", id, err)
	}
	return nil
}

func (s *Store) UpdateTitle(id int64, title string) error {
	if _, err := s.db.Exec(`UPDATE tasks SET title = ? WHERE id = ?;`, title, id); err != nil {
		return fmt.Errorf("update title %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteTask(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
