// Package todo holds the task and category records and the pure view
// derivation used by the board.
package todo

import (
	"errors"
	"strings"
)

// CreateCategoryValue is the category selector value that asks for a new
// category instead of naming an existing one.
const CreateCategoryValue = "__create__"

const (
	DefaultCategoryColor = "#999999"
	BadgeFallbackColor   = "#e5e7eb"
	NoDueDateLabel       = "none"
)

var (
	ErrEmptyTitle           = errors.New("task title is empty")
	ErrCreateSentinel       = errors.New("create the category first")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrDuplicateCategory    = errors.New("category already exists")
	ErrMissingInput         = errors.New("input field not available")
)

type Task struct {
	ID       string
	Title    string
	Done     bool
	DueDate  string
	Category string
	Color    string
}

type Category struct {
	Name  string
	Color string
}

type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterOngoing FilterMode = "ongoing"
	FilterDone    FilterMode = "done"
)

// ParseFilterMode accepts only the three known modes, compared exactly.
func ParseFilterMode(v string) (FilterMode, bool) {
	switch FilterMode(v) {
	case FilterAll, FilterOngoing, FilterDone:
		return FilterMode(v), true
	}
	return "", false
}

func (f FilterMode) Keep(t Task) bool {
	switch f {
	case FilterOngoing:
		return !t.Done
	case FilterDone:
		return t.Done
	default:
		return true
	}
}

// Next cycles all -> ongoing -> done -> all.
func (f FilterMode) Next() FilterMode {
	switch f {
	case FilterAll:
		return FilterOngoing
	case FilterOngoing:
		return FilterDone
	default:
		return FilterAll
	}
}

// FindCategory returns the category named exactly name.
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// NormalizeCategory trims the name and applies the default color.
func NormalizeCategory(name, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrCategoryNameRequired
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultCategoryColor
	}
	return Category{Name: name, Color: color}, nil
}
