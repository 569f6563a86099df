package settings

import (
	"path/filepath"

	"github.com/whiskers-launcher/companion/pkg/paths"
	"github.com/whiskers-launcher/companion/schema"
)

// Defaults returns the settings used when none are stored.
func Defaults() schema.Settings {
	return schema.Settings{
		FirstKey:            "ctrl",
		SecondKey:           nil,
		ThirdKey:            "space",
		AutoStart:           true,
		ShowRecentApps:      true,
		ShowSearchIcon:      true,
		ShowSettingsIcon:    true,
		ShowPlaceholder:     true,
		ShowAltHint:         true,
		Blacklist:           []string{},
		SearchKeyword:       "s",
		SearchEngines:       DefaultSearchEngines(),
		DefaultSearchEngine: 0,
		Theme:               DefaultTheme(),
		Extensions:          []schema.ExtensionSetting{},
	}
}

// DefaultTheme is the stock dark palette.
func DefaultTheme() schema.Theme {
	return schema.Theme{
		Background: "#0E0600",
		Secondary:  "#140800",
		Tertiary:   "#1B0B00",
		Accent:     "#FFE072",
		Warning:    "#FFB26C",
		Danger:     "#FF8C7C",
		OnAccent:   "#000000",
		OnDanger:   "#000000",
		Text:       "#FFEEE2",
		SubText:    "#E5D2C5",
	}
}

// DefaultSearchEngines lists the bundled web searches.
func DefaultSearchEngines() []schema.SearchEngine {
	icon := func(name string) *string {
		p := filepath.Join(paths.IconsDir(), name)
		return &p
	}

	return []schema.SearchEngine{
		{
			ID:          0,
			IconPath:    icon("google.svg"),
			TintIcon:    true,
			Keyword:     "gs",
			Name:        "Google",
			SearchQuery: "https://www.google.com/search?q=%s",
		},
		{
			ID:          1,
			IconPath:    icon("duckduckgo.svg"),
			TintIcon:    true,
			Keyword:     "ds",
			Name:        "DuckDuckGo",
			SearchQuery: "https://duckduckgo.com/?q=%s",
		},
		{
			ID:          2,
			IconPath:    icon("brave.svg"),
			TintIcon:    true,
			Keyword:     "bs",
			Name:        "Brave",
			SearchQuery: "https://search.brave.com/search?q=%s",
		},
		{
			ID:          3,
			IconPath:    nil,
			TintIcon:    false,
			Keyword:     "ss",
			Name:        "Startpage",
			SearchQuery: "https://www.startpage.com/do/dsearch?q=%s",
		},
	}
}
