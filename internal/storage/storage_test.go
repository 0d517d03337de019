package storage

import (
	"errors"
	"testing"

	"halil/internal/todo"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.Name())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := s.AppendTask(todo.Task{ID: id, Title: "task " + id}); err != nil {
			t.Fatalf("AppendTask(%s): %v", id, err)
		}
	}
}

func order(t *testing.T, s *Store) []string {
	t.Helper()
	tasks, err := s.FetchTasks()
	if err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOpenRejectsEmptyName(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "a", "b", "c")

	if got := order(t, s); !equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("order: got %v", got)
	}

	tasks, _ := s.FetchTasks()
	if tasks[0].Done {
		t.Error("new task should not be done")
	}
}

func TestAppendStoresFields(t *testing.T) {
	s := openTestStore(t)
	want := todo.Task{ID: "x", Title: "Lunch", Done: true, DueDate: "2025-10-27", Category: "Personal", Color: "#F4BBD3"}
	if err := s.AppendTask(want); err != nil {
		t.Fatalf("AppendTask: %v", err)
	}
	tasks, err := s.FetchTasks()
	if err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != want {
		t.Fatalf("got %+v, want %+v", tasks, want)
	}
}

func TestToggleAndDelete(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "a", "b")

	ok, err := s.ToggleDone("a")
	if err != nil || !ok {
		t.Fatalf("ToggleDone(a): ok=%v err=%v", ok, err)
	}
	tasks, _ := s.FetchTasks()
	if !tasks[0].Done {
		t.Error("a should be done after toggle")
	}

	ok, err = s.ToggleDone("missing")
	if err != nil || ok {
		t.Errorf("ToggleDone(missing): ok=%v err=%v", ok, err)
	}

	ok, err = s.DeleteTask("a")
	if err != nil || !ok {
		t.Fatalf("DeleteTask(a): ok=%v err=%v", ok, err)
	}
	if got := order(t, s); !equal(got, []string{"b"}) {
		t.Errorf("order after delete: %v", got)
	}

	ok, err = s.DeleteTask("a")
	if err != nil || ok {
		t.Errorf("second DeleteTask(a): ok=%v err=%v", ok, err)
	}
}

func TestMoveUpDown(t *testing.T) {
	tests := []struct {
		name  string
		move  func(*Store, string) (bool, error)
		id    string
		moved bool
		want  []string
	}{
		{"up from middle", (*Store).MoveUp, "b", true, []string{"b", "a", "c"}},
		{"up at top", (*Store).MoveUp, "a", false, []string{"a", "b", "c"}},
		{"down from middle", (*Store).MoveDown, "b", true, []string{"a", "c", "b"}},
		{"down at bottom", (*Store).MoveDown, "c", false, []string{"a", "b", "c"}},
		{"unknown id", (*Store).MoveUp, "zzz", false, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			seed(t, s, "a", "b", "c")
			moved, err := tt.move(s, tt.id)
			if err != nil {
				t.Fatalf("move: %v", err)
			}
			if moved != tt.moved {
				t.Errorf("moved: got %v, want %v", moved, tt.moved)
			}
			if got := order(t, s); !equal(got, tt.want) {
				t.Errorf("order: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveAfterDeleteSkipsGap(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "a", "b", "c")
	if _, err := s.DeleteTask("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveUp("c"); err != nil {
		t.Fatal(err)
	}
	if got := order(t, s); !equal(got, []string{"c", "a"}) {
		t.Errorf("order: got %v", got)
	}
	seed(t, s, "d")
	if got := order(t, s); !equal(got, []string{"c", "a", "d"}) {
		t.Errorf("append after move: got %v", got)
	}
}

func TestCategories(t *testing.T) {
	s := openTestStore(t)
	if err := s.AddCategory(todo.Category{Name: "Work", Color: "#DFF2D8"}); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if err := s.AddCategory(todo.Category{Name: "work", Color: "#000000"}); err != nil {
		t.Fatalf("names differing in case are distinct: %v", err)
	}
	err := s.AddCategory(todo.Category{Name: "Work", Color: "#111111"})
	if !errors.Is(err, todo.ErrDuplicateCategory) {
		t.Fatalf("duplicate: got %v, want ErrDuplicateCategory", err)
	}

	cats, err := s.FetchCategories()
	if err != nil {
		t.Fatalf("FetchCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Work" || cats[1].Name != "work" {
		t.Fatalf("categories: %+v", cats)
	}

	c, found, err := s.Category("Work")
	if err != nil || !found || c.Color != "#DFF2D8" {
		t.Errorf("Category(Work): %+v found=%v err=%v", c, found, err)
	}
	if _, found, _ := s.Category("Nope"); found {
		t.Error("Category(Nope) should not be found")
	}
}
