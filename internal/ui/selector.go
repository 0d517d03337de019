package ui

import (
	"halil/internal/todo"
)

// categorySelector is the board's category sink: a cycling picker over the
// placeholder, the categories and the create sentinel.
type categorySelector struct {
	options []todo.Option
	index   int
}

// SetCategoryOptions swaps in fresh options, keeping the current choice
// when it still names a category.
func (s *categorySelector) SetCategoryOptions(opts []todo.Option) {
	prev := s.Value()
	s.options = opts
	s.index = 0
	if prev == "" || prev == todo.CreateCategoryValue {
		return
	}
	s.Select(prev)
}

func (s *categorySelector) Value() string {
	if s.index < 0 || s.index >= len(s.options) {
		return ""
	}
	return s.options[s.index].Value
}

func (s *categorySelector) Label() string {
	if s.index < 0 || s.index >= len(s.options) {
		return ""
	}
	return s.options[s.index].Label
}

// Select picks the option with value v and reports whether it exists.
func (s *categorySelector) Select(v string) bool {
	for i, o := range s.options {
		if o.Value == v && !o.Disabled {
			s.index = i
			return true
		}
	}
	return false
}

func (s *categorySelector) Reset() {
	s.index = 0
}

func (s *categorySelector) Next() {
	s.step(1)
}

func (s *categorySelector) Prev() {
	s.step(-1)
}

// step skips disabled options; the placeholder can't be picked again.
func (s *categorySelector) step(dir int) {
	n := len(s.options)
	for i := 1; i <= n; i++ {
		idx := wrapIndex(s.index+dir*i, n)
		if !s.options[idx].Disabled {
			s.index = idx
			return
		}
	}
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
