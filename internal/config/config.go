package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"halil/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultLogName        = "halil.log"
	DefaultNotifyDuration = 2 * time.Second
	appDirName            = "halil"
)

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	MoveUp       string `toml:"move_up"`
	MoveDown     string `toml:"move_down"`
	Filter       string `toml:"filter"`
	FilterAll    string `toml:"filter_all"`
	FilterActive string `toml:"filter_ongoing"`
	FilterDone   string `toml:"filter_done"`
	NewCategory  string `toml:"new_category"`
	Confirm      string `toml:"confirm"`
	Cancel       string `toml:"cancel"`
	NextField    string `toml:"next_field"`
}

// Fields selects which optional inputs the add form offers.
type Fields struct {
	Title    bool `toml:"title"`
	DueDate  bool `toml:"due_date"`
	Category bool `toml:"category"`
}

type CategorySeed struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
}

type TaskSeed struct {
	Title    string `toml:"title"`
	Done     bool   `toml:"done"`
	DueDate  string `toml:"due_date"`
	Category string `toml:"category"`
}

type Config struct {
	DefaultFilter  string         `toml:"default_filter"`
	NotifyDuration string         `toml:"notify_duration"`
	LogPath        string         `toml:"log_path"`
	LogLevel       string         `toml:"log_level"`
	Fields         Fields         `toml:"fields"`
	Categories     []CategorySeed `toml:"categories"`
	Tasks          []TaskSeed     `toml:"tasks"`
	Keys           Keymap         `toml:"keys"`
}

// ResolveConfigPath returns $HALIL_CONFIG when set, otherwise config.toml
// under the user config directory.
func ResolveConfigPath() string {
	if p := os.Getenv("HALIL_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		cfg.resolveLogPath(path)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	seeds := cfg.Categories
	cfg.Categories = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Categories == nil {
		cfg.Categories = seeds
	}
	if _, ok := todo.ParseFilterMode(cfg.DefaultFilter); !ok {
		cfg.DefaultFilter = string(todo.FilterAll)
	}
	cfg.resolveLogPath(path)
	return cfg, nil
}

// Filter is the validated default filter mode.
func (c Config) Filter() todo.FilterMode {
	if mode, ok := todo.ParseFilterMode(c.DefaultFilter); ok {
		return mode
	}
	return todo.FilterAll
}

// NotifyFor is how long a toast stays fully visible.
func (c Config) NotifyFor() time.Duration {
	d, err := time.ParseDuration(c.NotifyDuration)
	if err != nil || d <= 0 {
		return DefaultNotifyDuration
	}
	return d
}

func (c Config) SeedCategories() []todo.Category {
	out := make([]todo.Category, 0, len(c.Categories))
	for _, s := range c.Categories {
		out = append(out, todo.Category{Name: s.Name, Color: s.Color})
	}
	return out
}

// SeedTasks returns the configured starting tasks. IDs are assigned when
// they are added to the board.
func (c Config) SeedTasks() []todo.Task {
	out := make([]todo.Task, 0, len(c.Tasks))
	for _, s := range c.Tasks {
		out = append(out, todo.Task{Title: s.Title, Done: s.Done, DueDate: s.DueDate, Category: s.Category})
	}
	return out
}

// relative log paths sit next to the config file
func (c *Config) resolveLogPath(configPath string) {
	if c.LogPath == "" {
		c.LogPath = DefaultLogName
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(filepath.Dir(configPath), c.LogPath)
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default is the configuration written on first launch.
func Default() Config {
	return Config{
		DefaultFilter:  string(todo.FilterAll),
		NotifyDuration: DefaultNotifyDuration.String(),
		LogPath:        DefaultLogName,
		LogLevel:       "info",
		Fields: Fields{
			Title:    true,
			DueDate:  true,
			Category: true,
		},
		Categories: []CategorySeed{
			{Name: "Work", Color: "#DFF2D8"},
			{Name: "Personal", Color: "#F4BBD3"},
			{Name: "Study", Color: "#F686BD"},
		},
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			MoveUp:       "K",
			MoveDown:     "J",
			Filter:       "f",
			FilterAll:    "1",
			FilterActive: "2",
			FilterDone:   "3",
			NewCategory:  "c",
			Confirm:      "enter",
			Cancel:       "esc",
			NextField:    "tab",
		},
	}
}
