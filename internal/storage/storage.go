package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"

	"halil/internal/todo"
)

// Store keeps tasks and categories in an in-memory SQLite database. It
// lives as long as the process and is never written to disk.
type Store struct {
	db *sql.DB
}

// Open creates a private in-memory database. name only tells databases
// apart in logs and DSNs.
func Open(name string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("database name is empty")
	}
	db, err := sql.Open("sqlite", memoryDSN(name))
	if err != nil {
		return nil, err
	}
	// Every new connection would see an empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
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
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	due TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS categories (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	color TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) FetchTasks() ([]todo.Task, error) {
	rows, err := s.db.Query(`SELECT id, title, done, due, category, color FROM tasks ORDER BY position;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		var t todo.Task
		var doneInt int
		if err := rows.Scan(&t.ID, &t.Title, &doneInt, &t.DueDate, &t.Category, &t.Color); err != nil {
			return nil, err
		}
		t.Done = doneInt == 1
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AppendTask inserts t after every existing task.
func (s *Store) AppendTask(t todo.Task) error {
	if t.ID == "" {
		return errors.New("task id is empty")
	}
	_, err := s.db.Exec(`INSERT INTO tasks (id, position, title, done, due, category, color)
VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks), ?, ?, ?, ?, ?);`,
		t.ID, t.Title, boolToInt(t.Done), t.DueDate, t.Category, t.Color)
	return err
}

// ToggleDone flips done and reports whether id existed.
func (s *Store) ToggleDone(id string) (bool, error) {
	res, err := s.db.Exec(`UPDATE tasks SET done = 1 - done WHERE id = ?;`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (s *Store) DeleteTask(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// MoveUp swaps id with its predecessor. It reports false at the top of the
// list or when id is unknown.
func (s *Store) MoveUp(id string) (bool, error) {
	return s.swap(id, `SELECT id, position FROM tasks WHERE position < ? ORDER BY position DESC LIMIT 1;`)
}

// MoveDown swaps id with its successor.
func (s *Store) MoveDown(id string) (bool, error) {
	return s.swap(id, `SELECT id, position FROM tasks WHERE position > ? ORDER BY position ASC LIMIT 1;`)
}

func (s *Store) swap(id, neighborQuery string) (moved bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil || !moved {
			tx.Rollback()
		}
	}()

	var pos int
	err = tx.QueryRow(`SELECT position FROM tasks WHERE id = ?;`, id).Scan(&pos)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var otherID string
	var otherPos int
	err = tx.QueryRow(neighborQuery, pos).Scan(&otherID, &otherPos)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err = tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?;`, otherPos, id); err != nil {
		return false, err
	}
	if _, err = tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?;`, pos, otherID); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) FetchCategories() ([]todo.Category, error) {
	rows, err := s.db.Query(`SELECT name, color FROM categories ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []todo.Category
	for rows.Next() {
		var c todo.Category
		if err := rows.Scan(&c.Name, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Category looks up a category by exact name.
func (s *Store) Category(name string) (todo.Category, bool, error) {
	c := todo.Category{}
	err := s.db.QueryRow(`SELECT name, color FROM categories WHERE name = ?;`, name).Scan(&c.Name, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Category{}, false, nil
	}
	if err != nil {
		return todo.Category{}, false, err
	}
	return c, true, nil
}

// AddCategory appends c. A name already present yields
// todo.ErrDuplicateCategory.
func (s *Store) AddCategory(c todo.Category) error {
	if _, found, err := s.Category(c.Name); err != nil {
		return err
	} else if found {
		return fmt.Errorf("%q: %w", c.Name, todo.ErrDuplicateCategory)
	}
	_, err := s.db.Exec(`INSERT INTO categories (name, color) VALUES (?, ?);`, c.Name, c.Color)
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func memoryDSN(name string) string {
	u := url.URL{
		Scheme: "file",
		Opaque: url.PathEscape(name),
	}
	q := u.Query()
	q.Set("mode", "memory")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
