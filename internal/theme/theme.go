package theme

// a colour palette; every colour is a lipgloss colour string (hex or ANSI code)
type Theme struct {
	Name string `yaml:"name"`

	// semantic
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Success   string `yaml:"success"`
	Error     string `yaml:"error"`
	Warning   string `yaml:"warning"`
	Info      string `yaml:"info"`

	// text
	TextPrimary   string `yaml:"text_primary"`
	TextSecondary string `yaml:"text_secondary"`
	TextMuted     string `yaml:"text_muted"`

	// background
	BgPrimary   string `yaml:"bg_primary"`
	BgSecondary string `yaml:"bg_secondary"`

	// urgency
	UrgencyOverdue  string `yaml:"urgency_overdue"`
	UrgencyDueToday string `yaml:"urgency_due_today"`
	UrgencyDueSoon  string `yaml:"urgency_due_soon"`
	UrgencyFuture   string `yaml:"urgency_future"`

	// chore state
	Completed string `yaml:"completed"`
	Important string `yaml:"important"`

	// UI element
	BorderColor   string `yaml:"border_color"`
	SelectedBg    string `yaml:"selected_bg"`
	SelectedFg    string `yaml:"selected_fg"`
	HeaderBg      string `yaml:"header_bg"`
	HeaderFg      string `yaml:"header_fg"`
	Separator     string `yaml:"separator"`
	HelpText      string `yaml:"help_text"`
	SubtitleText  string `yaml:"subtitle_text"`
	TableSelected string `yaml:"table_selected"`
}
