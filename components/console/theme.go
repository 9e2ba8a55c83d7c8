package console

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"
)

// Theme is the persisted light/dark preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// themeKey is the single persisted preference key.
const themeKey = "theme"

// ParseTheme maps a stored value to a Theme, defaulting to light for
// anything unrecognized.
func ParseTheme(value string) Theme {
	if Theme(strings.TrimSpace(strings.ToLower(value))) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeStore persists the viewer's theme preference. Absent or unreadable
// state defaults to light silently.
type ThemeStore interface {
	Load() (Theme, error)
	Save(theme Theme) error
}

// MemoryThemeStore keeps the preference for the lifetime of the process.
type MemoryThemeStore struct {
	mu    sync.Mutex
	value Theme
	set   bool
}

// NewMemoryThemeStore creates an empty store.
func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{}
}

// Load returns the stored theme or light when nothing was saved.
func (s *MemoryThemeStore) Load() (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return ThemeLight, nil
	}
	return s.value, nil
}

// Save records the preference.
func (s *MemoryThemeStore) Save(theme Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = theme
	s.set = true
	return nil
}

// FileThemeStore persists the preference in a single local file, the
// console's analogue of browser local storage.
type FileThemeStore struct {
	Path string
}

// Load reads the persisted theme, defaulting to light when the file is
// missing or unreadable.
func (s FileThemeStore) Load() (Theme, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return ThemeLight, nil
	}
	return ParseTheme(string(data)), nil
}

// Save writes the preference.
func (s FileThemeStore) Save(theme Theme) error {
	return os.WriteFile(s.Path, []byte(theme), 0o644)
}

// Theme reads the persisted preference, defaulting to light.
func (c *Controller) Theme() Theme {
	theme, err := c.opts.ThemeStore.Load()
	if err != nil {
		return ThemeLight
	}
	return theme
}

// ApplyTheme sets the document-level attribute and updates the toggle
// icon/label. It does not persist.
func (c *Controller) ApplyTheme(theme Theme) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyThemeLocked(theme)
}

func (c *Controller) applyThemeLocked(theme Theme) {
	view := &c.doc.Theme
	view.Active = theme
	view.Attribute = string(theme)
	if theme == ThemeDark {
		view.ToggleIcon = "sun"
		view.ToggleLabel = "Light Mode"
	} else {
		view.ToggleIcon = "moon"
		view.ToggleLabel = "Dark Mode"
	}
}

// ToggleTheme flips the persisted and applied theme, then emits a
// short-lived notification naming the new theme.
func (c *Controller) ToggleTheme(ctx context.Context) Theme {
	next := c.Theme().Opposite()
	_ = c.opts.ThemeStore.Save(next)
	c.ApplyTheme(next)
	c.notify.Notify("Switched to "+string(next)+" theme", KindInfo, 2*time.Second)
	c.telemetry.Record(ctx, "console.theme.toggle", map[string]any{themeKey: string(next)})
	c.emitUpdate(ctx, UpdateEvent{View: c.opts.View, Kind: "", Payload: map[string]any{themeKey: string(next)}})
	return next
}
