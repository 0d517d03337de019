package todo

// Option is one entry of the category selector.
type Option struct {
	Value    string
	Label    string
	Disabled bool
}

const (
	placeholderLabel    = "Select category"
	createCategoryLabel = "+ New category"
)

// CategoryOptions lists the placeholder, every category in creation order,
// and the create sentinel last.
func CategoryOptions(categories []Category) []Option {
	opts := make([]Option, 0, len(categories)+2)
	opts = append(opts, Option{Value: "", Label: placeholderLabel, Disabled: true})
	for _, c := range categories {
		opts = append(opts, Option{Value: c.Name, Label: c.Name})
	}
	opts = append(opts, Option{Value: CreateCategoryValue, Label: createCategoryLabel})
	return opts
}
