package theme

// the handful of base colours a full theme is derived from
type palette struct {
	name string

	accent  string // headers, borders, selection
	accent2 string
	ink     string // main text
	dim     string
	muted   string
	base    string // background
	surface string
	rule    string // separators

	red    string
	orange string
	yellow string
	blue   string
	green  string
	gold   string

	// 256-colour fallback for the selected table row
	ansi string
}

func (p palette) theme() *Theme {
	return &Theme{
		Name: p.name,

		Primary:   p.accent,
		Secondary: p.accent2,
		Success:   p.green,
		Error:     p.red,
		Warning:   p.yellow,
		Info:      p.blue,

		TextPrimary:   p.ink,
		TextSecondary: p.dim,
		TextMuted:     p.muted,

		BgPrimary:   p.base,
		BgSecondary: p.surface,

		UrgencyOverdue:  p.red,
		UrgencyDueToday: p.orange,
		UrgencyDueSoon:  p.blue,
		UrgencyFuture:   p.dim,

		Completed: p.green,
		Important: p.gold,

		BorderColor:   p.accent,
		SelectedBg:    p.accent,
		SelectedFg:    p.base,
		HeaderBg:      p.accent,
		HeaderFg:      p.base,
		Separator:     p.rule,
		HelpText:      p.dim,
		SubtitleText:  p.muted,
		TableSelected: p.ansi,
	}
}

var palettes = []palette{
	{
		name: "default", accent: "#7D56F4", accent2: "#8AA4EB",
		ink: "#FAFAFA", dim: "#8A8A8A", muted: "#6C6C6C",
		base: "#000000", surface: "#1A1A1A", rule: "#444444",
		red: "#FF4D4D", orange: "#FF8800", yellow: "#F5D000", blue: "#3AA0FF", green: "#04B575", gold: "#FFD700",
		ansi: "57",
	},
	{
		name: "dark", accent: "#BB9AF7", accent2: "#7AA2F7",
		ink: "#C0CAF5", dim: "#9AA5CE", muted: "#565F89",
		base: "#1A1B26", surface: "#24283B", rule: "#3B4261",
		red: "#F7768E", orange: "#FF9E64", yellow: "#E0AF68", blue: "#7AA2F7", green: "#9ECE6A", gold: "#E0AF68",
		ansi: "55",
	},
	{
		name: "light", accent: "#5B3CC4", accent2: "#2563EB",
		ink: "#1F2937", dim: "#6B7280", muted: "#9CA3AF",
		base: "#FFFFFF", surface: "#F3F4F6", rule: "#D1D5DB",
		red: "#DC2626", orange: "#EA580C", yellow: "#CA8A04", blue: "#2563EB", green: "#059669", gold: "#D97706",
		ansi: "57",
	},
	{
		name: "dracula", accent: "#BD93F9", accent2: "#8BE9FD",
		ink: "#F8F8F2", dim: "#6272A4", muted: "#44475A",
		base: "#282A36", surface: "#44475A", rule: "#44475A",
		red: "#FF5555", orange: "#FFB86C", yellow: "#F1FA8C", blue: "#8BE9FD", green: "#50FA7B", gold: "#F1FA8C",
		ansi: "141",
	},
	{
		name: "nord", accent: "#88C0D0", accent2: "#81A1C1",
		ink: "#ECEFF4", dim: "#D8DEE9", muted: "#4C566A",
		base: "#2E3440", surface: "#3B4252", rule: "#434C5E",
		red: "#BF616A", orange: "#D08770", yellow: "#EBCB8B", blue: "#81A1C1", green: "#A3BE8C", gold: "#EBCB8B",
		ansi: "73",
	},
	{
		name: "gruvbox", accent: "#D3869B", accent2: "#83A598",
		ink: "#EBDBB2", dim: "#A89984", muted: "#665C54",
		base: "#282828", surface: "#3C3836", rule: "#504945",
		red: "#FB4934", orange: "#FE8019", yellow: "#FABD2F", blue: "#83A598", green: "#B8BB26", gold: "#FABD2F",
		ansi: "175",
	},
}

func GetPredefinedThemes() map[string]*Theme {
	themes := make(map[string]*Theme, len(palettes))
	for _, p := range palettes {
		themes[p.name] = p.theme()
	}
	return themes
}

// built-in theme names in display order
func GetThemeNames() []string {
	names := make([]string, 0, len(palettes))
	for _, p := range palettes {
		names = append(names, p.name)
	}
	return names
}

func DefaultTheme() *Theme {
	return palettes[0].theme()
}
