package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrInvalidTheme  = errors.New("invalid theme")
)

var themeNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// built-in palettes plus any user palettes registered on top
type Registry struct {
	themes map[string]*Theme
	order  []string
}

func NewRegistry() *Registry {
	r := &Registry{themes: GetPredefinedThemes()}
	r.order = append(r.order, GetThemeNames()...)
	return r
}

// adds or replaces a palette; colours left empty are taken from the default theme
func (r *Registry) Register(t *Theme) error {
	if t == nil || !themeNamePattern.MatchString(t.Name) {
		return fmt.Errorf("%w: name must be lowercase letters, digits, '-' or '_'", ErrInvalidTheme)
	}

	merged := *t
	fillFromDefault(&merged)

	if _, exists := r.themes[merged.Name]; !exists {
		r.order = append(r.order, merged.Name)
	}
	r.themes[merged.Name] = &merged
	return nil
}

// registers every *.yaml palette in dir; a missing dir is not an error
func (r *Registry) LoadDir(dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("failed to list themes: %w", err)
	}
	sort.Strings(paths)

	var errs []error
	loaded := 0
	for _, path := range paths {
		t, err := readThemeFile(path)
		if err == nil {
			err = r.Register(t)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
			continue
		}
		loaded++
	}

	return loaded, errors.Join(errs...)
}

func readThemeFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &t, nil
}

func (r *Registry) GetTheme(name string) (*Theme, error) {
	theme, exists := r.themes[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return theme, nil
}

// the named theme, or the default one when the name is empty or unknown
func (r *Registry) Resolve(name string) *Theme {
	if t, ok := r.themes[name]; ok {
		return t
	}
	return DefaultTheme()
}

// built-ins first, then user palettes in registration order
func (r *Registry) ListThemes() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) ThemeExists(name string) bool {
	_, exists := r.themes[name]
	return exists
}

func fillFromDefault(t *Theme) {
	def := DefaultTheme()
	fields := []struct {
		dst *string
		src string
	}{
		{&t.Primary, def.Primary},
		{&t.Secondary, def.Secondary},
		{&t.Success, def.Success},
		{&t.Error, def.Error},
		{&t.Warning, def.Warning},
		{&t.Info, def.Info},
		{&t.TextPrimary, def.TextPrimary},
		{&t.TextSecondary, def.TextSecondary},
		{&t.TextMuted, def.TextMuted},
		{&t.BgPrimary, def.BgPrimary},
		{&t.BgSecondary, def.BgSecondary},
		{&t.UrgencyOverdue, def.UrgencyOverdue},
		{&t.UrgencyDueToday, def.UrgencyDueToday},
		{&t.UrgencyDueSoon, def.UrgencyDueSoon},
		{&t.UrgencyFuture, def.UrgencyFuture},
		{&t.Completed, def.Completed},
		{&t.Important, def.Important},
		{&t.BorderColor, def.BorderColor},
		{&t.SelectedBg, def.SelectedBg},
		{&t.SelectedFg, def.SelectedFg},
		{&t.HeaderBg, def.HeaderBg},
		{&t.HeaderFg, def.HeaderFg},
		{&t.Separator, def.Separator},
		{&t.HelpText, def.HelpText},
		{&t.SubtitleText, def.SubtitleText},
		{&t.TableSelected, def.TableSelected},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

var globalRegistry = NewRegistry()

// loads user palettes from dir into the global registry
func LoadUserThemes(dir string) (int, error) {
	return globalRegistry.LoadDir(dir)
}

func GetTheme(name string) (*Theme, error) {
	return globalRegistry.GetTheme(name)
}

func Resolve(name string) *Theme {
	return globalRegistry.Resolve(name)
}

func ListThemes() []string {
	return globalRegistry.ListThemes()
}

func ThemeExists(name string) bool {
	return globalRegistry.ThemeExists(name)
}

func GetDefaultTheme() *Theme {
	return DefaultTheme()
}
