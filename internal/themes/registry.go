package themes

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/octave-ivi/octave/internal/persistence"
	"github.com/octave-ivi/octave/internal/ui"
	"github.com/octave-ivi/octave/internal/util"
	"golang.org/x/exp/slices"
)

// Registry resolves theme names to palettes. Built-in themes come from a
// static table, custom themes are stored serialized and parsed on demand.
type Registry struct {
	pers persistence.Persistence

	mu        sync.RWMutex
	current   Theme
	listeners []func(Theme)
}

func NewRegistry(pers persistence.Persistence) *Registry {
	return &Registry{
		pers:    pers,
		current: builtinThemes[DefaultThemeName].WithFallbacks(),
	}
}

// Subscribe registers fn to be called with the new palette after every
// successful Apply.
func (r *Registry) Subscribe(fn func(Theme)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Current returns the active palette with all fallbacks applied.
func (r *Registry) Current() Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Resolve looks up name in the built-in table first, then among the
// stored custom themes. The returned theme has fallbacks applied.
func (r *Registry) Resolve(name string) (Theme, error) {
	if theme, ok := builtinThemes[name]; ok {
		return theme.WithFallbacks(), nil
	}

	data, err := r.pers.LoadTheme(name)
	if err != nil {
		return Theme{}, fmt.Errorf("unknown theme: %s", name)
	}

	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("stored theme %s is malformed: %w", name, err)
	}
	theme.Name = name
	return theme.WithFallbacks(), nil
}

// Apply switches the active palette to the named theme. An unknown name
// or a malformed stored record is logged and leaves the current palette
// untouched, no partial update happens.
func (r *Registry) Apply(name string) error {
	theme, err := r.Resolve(name)
	if err != nil {
		ui.Warning("Cannot apply theme '%s': %v", name, err)
		return err
	}

	r.mu.Lock()
	r.current = theme
	subscribed := append([]func(Theme){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range subscribed {
		fn(theme)
	}
	return nil
}

// SaveCustom stores a user-authored theme, replacing any previous theme
// of the same name. Built-in names cannot be shadowed.
func (r *Registry) SaveCustom(theme Theme) error {
	if len(theme.Name) <= 0 {
		return fmt.Errorf("custom theme needs a name")
	}
	if _, ok := builtinThemes[theme.Name]; ok {
		return fmt.Errorf("'%s' is a built-in theme and cannot be overwritten", theme.Name)
	}

	data, err := json.Marshal(theme)
	if err != nil {
		return err
	}
	return r.pers.SaveTheme(theme.Name, data)
}

func (r *Registry) DeleteCustom(name string) error {
	return r.pers.DeleteTheme(name)
}

// CustomThemeNames returns the stored custom theme names, sorted.
func (r *Registry) CustomThemeNames() []string {
	names, err := r.pers.ListThemes()
	if err != nil {
		ui.Warning("Unable to list custom themes: %v", err)
		return []string{}
	}
	slices.Sort(names)
	return names
}

// BuiltinThemeNames returns the names of all built-in themes, sorted.
func (r *Registry) BuiltinThemeNames() []string {
	names := util.SortedKeys(builtinThemes)
	return names
}

// Export writes the named theme to path as indented JSON. The write is
// atomic, a half-written file is never left behind.
func (r *Registry) Export(name string, path string) error {
	theme, err := r.Resolve(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteStringToFileAtomic(string(data), path)
}

// Import reads a theme file written by Export and stores it as a custom
// theme.
func (r *Registry) Import(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("theme file %s is malformed: %w", path, err)
	}
	if err := r.SaveCustom(theme); err != nil {
		return Theme{}, err
	}
	return theme.WithFallbacks(), nil
}
