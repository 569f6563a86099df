// Package schema defines the vocabulary shared by the launcher host and its
// extensions: apps, manifests, settings, requests, results and forms.
//
// Types here are pure data. The only behavior is construction helpers and
// the wire codecs of the two tagged unions (ResultAction and FormField).
package schema

// App is an indexed desktop application.
type App struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Icon  *string `json:"icon" yaml:"icon,omitempty"`
	Path  string  `json:"path" yaml:"path"`
}

// NewApp creates an App without an icon.
func NewApp(id, title, path string) App {
	return App{ID: id, Title: title, Path: path}
}

// WithIcon returns a copy of the app with the icon set.
func (a App) WithIcon(icon string) App {
	a.Icon = &icon
	return a
}
