package todo

// ControlKind names a per-row control.
type ControlKind string

const (
	ControlToggle   ControlKind = "toggle"
	ControlDelete   ControlKind = "delete"
	ControlMoveUp   ControlKind = "up"
	ControlMoveDown ControlKind = "down"
)

type Control struct {
	Kind   ControlKind
	TaskID string
	Label  string
}

type Badge struct {
	Name  string
	Color string
}

type Row struct {
	Index    int
	TaskID   string
	Title    string
	Done     bool
	Badge    *Badge
	DueText  string
	Toggle   Control
	Delete   Control
	MoveUp   Control
	MoveDown Control
}

// Controls lists the row's controls in display order.
func (r Row) Controls() []Control {
	return []Control{r.MoveUp, r.MoveDown, r.Toggle, r.Delete}
}

type View struct {
	Mode  FilterMode
	Rows  []Row
	Total int
}

// BuildView derives the rows shown for mode. It never modifies tasks.
func BuildView(tasks []Task, mode FilterMode) View {
	v := View{Mode: mode, Total: len(tasks)}
	for _, t := range tasks {
		if !mode.Keep(t) {
			continue
		}
		v.Rows = append(v.Rows, newRow(len(v.Rows)+1, t))
	}
	return v
}

func newRow(index int, t Task) Row {
	r := Row{
		Index:    index,
		TaskID:   t.ID,
		Title:    t.Title,
		Done:     t.Done,
		DueText:  t.DueDate,
		Toggle:   Control{Kind: ControlToggle, TaskID: t.ID, Label: toggleLabel(t.Done)},
		Delete:   Control{Kind: ControlDelete, TaskID: t.ID, Label: "delete"},
		MoveUp:   Control{Kind: ControlMoveUp, TaskID: t.ID, Label: "move up"},
		MoveDown: Control{Kind: ControlMoveDown, TaskID: t.ID, Label: "move down"},
	}
	if r.DueText == "" {
		r.DueText = NoDueDateLabel
	}
	if t.Category != "" {
		color := t.Color
		if color == "" {
			color = BadgeFallbackColor
		}
		r.Badge = &Badge{Name: t.Category, Color: color}
	}
	return r
}

func toggleLabel(done bool) string {
	if done {
		return "reopen"
	}
	return "complete"
}
