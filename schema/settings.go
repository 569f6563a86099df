package schema

// Settings is the process-wide persisted configuration of the launcher.
type Settings struct {
	FirstKey            string             `json:"first_key"`
	SecondKey           *string            `json:"second_key"`
	ThirdKey            string             `json:"third_key"`
	AutoStart           bool               `json:"auto_start"`
	ShowRecentApps      bool               `json:"show_recent_apps"`
	ShowSearchIcon      bool               `json:"show_search_icon"`
	ShowSettingsIcon    bool               `json:"show_settings_icon"`
	ShowPlaceholder     bool               `json:"show_placeholder"`
	ShowAltHint         bool               `json:"show_alt_hint"`
	Blacklist           []string           `json:"blacklist"`
	SearchKeyword       string             `json:"search_keyword"`
	SearchEngines       []SearchEngine     `json:"search_engines"`
	DefaultSearchEngine int                `json:"default_search_engine"`
	Theme               Theme              `json:"theme"`
	Extensions          []ExtensionSetting `json:"extensions"`
}

// SearchEngine is a keyword-addressable web search. SearchQuery contains a
// single %s placeholder for the escaped search text.
type SearchEngine struct {
	ID          int     `json:"id"`
	IconPath    *string `json:"icon_path"`
	TintIcon    bool    `json:"tint_icon"`
	Keyword     string  `json:"keyword"`
	Name        string  `json:"name"`
	SearchQuery string  `json:"search_query"`
}

// Theme holds the launcher palette as hex colors.
type Theme struct {
	Background string `json:"background"`
	Secondary  string `json:"secondary"`
	Tertiary   string `json:"tertiary"`
	Accent     string `json:"accent"`
	Warning    string `json:"warning"`
	Danger     string `json:"danger"`
	OnAccent   string `json:"on_accent"`
	OnDanger   string `json:"on_danger"`
	Text       string `json:"text"`
	SubText    string `json:"sub_text"`
}

// ExtensionSetting is a flattened settings row keyed by
// (ExtensionID, SettingID). At most one row exists per key pair.
type ExtensionSetting struct {
	ExtensionID  string `json:"extension_id"`
	SettingID    string `json:"setting_id"`
	SettingValue string `json:"setting_value"`
}

// KeywordSettingID is the setting row holding an extension's user keyword.
const KeywordSettingID = "keyword"
