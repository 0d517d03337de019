package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"halil/internal/config"
	"halil/internal/storage"
	"halil/internal/todo"
)

func newTestModel(t *testing.T, adjust func(*config.Config)) *Model {
	t.Helper()
	store, err := storage.Open(t.Name())
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	if adjust != nil {
		adjust(&cfg)
	}
	m, err := NewModel(store, cfg, nil)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func withTasks(titles ...string) func(*config.Config) {
	return func(cfg *config.Config) {
		for _, title := range titles {
			cfg.Tasks = append(cfg.Tasks, config.TaskSeed{Title: title})
		}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func taskTitles(m *Model) []string {
	var out []string
	for _, task := range m.board.Tasks() {
		out = append(out, task.Title)
	}
	return out
}

func TestSeededBoardRenders(t *testing.T) {
	m := newTestModel(t, withTasks("Review", "Lunch"))
	if m.pane.renders != 1 {
		t.Errorf("renders after seed: got %d, want 1", m.pane.renders)
	}
	if got := len(m.in.category.options); got != 5 {
		t.Errorf("selector options: got %d, want 5", got)
	}
	view := m.View()
	for _, want := range []string{"Review", "Lunch", "due: none", "All"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyBoardHint(t *testing.T) {
	m := newTestModel(t, nil)
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Errorf("expected empty hint:\n%s", m.View())
	}
}

func TestAddTaskFromForm(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("a"))
	if m.mode != modeAdd {
		t.Fatalf("mode: got %v, want add", m.mode)
	}
	typeText(m, "Laundry")
	press(m, tab)
	typeText(m, "2025-11-10")
	press(m, enter)

	if m.mode != modeList {
		t.Errorf("mode after add: got %v, want list", m.mode)
	}
	tasks := m.board.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Laundry" || tasks[0].DueDate != "2025-11-10" {
		t.Fatalf("tasks: %+v", tasks)
	}
	if m.in.title.Value() != "" || m.in.due.Value() != "" {
		t.Error("form should be cleared after add")
	}
}

func TestEmptyTitleKeepsForm(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("a"), enter)
	if m.mode != modeAdd {
		t.Errorf("mode: got %v, want add", m.mode)
	}
	if len(m.board.Tasks()) != 0 {
		t.Error("no task should be added")
	}
	if m.toasts.Len() != 0 {
		t.Error("empty title should not notify")
	}
	press(m, esc)
	if m.mode != modeList {
		t.Errorf("esc should close the form, mode %v", m.mode)
	}
}

func TestMissingTitleInputNotifies(t *testing.T) {
	m := newTestModel(t, func(cfg *config.Config) { cfg.Fields.Title = false })
	press(m, runes("a"))
	if m.mode != modeList {
		t.Errorf("mode: got %v, want list", m.mode)
	}
	if m.toasts.Len() != 1 {
		t.Fatalf("toasts: got %d, want 1", m.toasts.Len())
	}
	if !strings.Contains(m.toasts.items[0].message, "task title") {
		t.Errorf("toast: %q", m.toasts.items[0].message)
	}
}

func TestRowControls(t *testing.T) {
	m := newTestModel(t, withTasks("A", "B", "C"))

	press(m, runes("j"))
	if m.cursor != 1 {
		t.Fatalf("cursor: got %d, want 1", m.cursor)
	}
	press(m, runes("K"))
	if got := taskTitles(m); strings.Join(got, ",") != "B,A,C" {
		t.Errorf("after move up: %v", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor should follow the task, got %d", m.cursor)
	}

	press(m, space)
	if !m.board.Tasks()[0].Done {
		t.Error("space should toggle the selected task")
	}
	if !strings.Contains(m.View(), "[reopen]") {
		t.Errorf("toggle label should change:\n%s", m.View())
	}

	press(m, runes("J"), runes("J"))
	if got := taskTitles(m); strings.Join(got, ",") != "A,C,B" {
		t.Errorf("after move down twice: %v", got)
	}
	if m.cursor != 2 {
		t.Errorf("cursor: got %d, want 2", m.cursor)
	}

	press(m, runes("d"))
	if got := taskTitles(m); strings.Join(got, ",") != "A,C" {
		t.Errorf("after delete: %v", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp, got %d", m.cursor)
	}
}

func TestFilterKeys(t *testing.T) {
	m := newTestModel(t, withTasks("A", "B"))
	press(m, space)

	press(m, runes("3"))
	if m.board.Mode() != todo.FilterDone || m.pane.Len() != 1 {
		t.Errorf("done filter: mode=%s rows=%d", m.board.Mode(), m.pane.Len())
	}
	press(m, runes("f"))
	if m.board.Mode() != todo.FilterAll || m.pane.Len() != 2 {
		t.Errorf("cycle from done: mode=%s rows=%d", m.board.Mode(), m.pane.Len())
	}
	press(m, runes("f"))
	if m.board.Mode() != todo.FilterOngoing || m.pane.Len() != 1 {
		t.Errorf("ongoing: mode=%s rows=%d", m.board.Mode(), m.pane.Len())
	}
	press(m, runes("1"))
	if m.board.Mode() != todo.FilterAll {
		t.Errorf("all: mode=%s", m.board.Mode())
	}
}

func TestCreateCategoryFromSelector(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("a"))
	typeText(m, "Sweep")
	press(m, tab, tab)
	press(m, left)
	if m.mode != modeCategory || !m.fromSelect {
		t.Fatalf("picking the sentinel should open the category form, mode=%v", m.mode)
	}

	typeText(m, "Chores")
	press(m, enter)
	if m.mode != modeAdd {
		t.Fatalf("mode after create: got %v, want add", m.mode)
	}
	if got := m.in.category.Value(); got != "Chores" {
		t.Errorf("selector: got %q, want Chores", got)
	}

	press(m, enter)
	tasks := m.board.Tasks()
	if len(tasks) != 1 || tasks[0].Category != "Chores" || tasks[0].Color != defaultNewCategoryColor {
		t.Fatalf("tasks: %+v", tasks)
	}
}

func TestCancelCategoryFromSelectorResets(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("a"), tab, tab, left, esc)
	if m.mode != modeAdd {
		t.Fatalf("mode: got %v, want add", m.mode)
	}
	if got := m.in.category.Value(); got != "" {
		t.Errorf("selector should reset to placeholder, got %q", got)
	}
	press(m, right)
	if got := m.in.category.Value(); got != "Work" {
		t.Errorf("right from placeholder: got %q, want Work", got)
	}
}

func TestDuplicateCategoryKeepsForm(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("c"))
	typeText(m, "Work")
	press(m, enter)
	if m.mode != modeCategory {
		t.Errorf("form should stay open, mode %v", m.mode)
	}
	if m.catFocus != 0 {
		t.Errorf("name field should keep focus")
	}
	if got := len(m.board.Categories()); got != 3 {
		t.Errorf("categories: got %d, want 3", got)
	}
	if m.toasts.Len() != 1 {
		t.Errorf("toasts: got %d, want 1", m.toasts.Len())
	}
}

func TestSentinelSubmitResetsSelector(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, runes("a"))
	typeText(m, "Plan")
	m.in.category.Select(todo.CreateCategoryValue)
	press(m, enter)

	if len(m.board.Tasks()) != 0 {
		t.Error("sentinel must not add a task")
	}
	if m.in.category.Value() != "" {
		t.Errorf("selector should reset, got %q", m.in.category.Value())
	}
	if m.toasts.Len() != 1 {
		t.Errorf("toasts: got %d, want 1", m.toasts.Len())
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !isQuit(cmd()) {
		t.Error("q should quit")
	}
}

func isQuit(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil && isQuit(c()) {
				return true
			}
		}
	}
	return false
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.help.Width != 120 {
		t.Errorf("width: %d help: %d", m.width, m.help.Width)
	}
}
