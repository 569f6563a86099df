// Package search decides where a launcher query goes: a web search engine,
// an extension selected by keyword, or the installed apps.
package search

import (
	"net/url"
	"runtime"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/apps"
	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/query"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
)

// TargetKind identifies the destination of a query.
type TargetKind string

const (
	TargetWeb       TargetKind = "web"
	TargetExtension TargetKind = "extension"
	TargetApps      TargetKind = "apps"
)

// Target is the routing decision for one query.
type Target struct {
	Kind  TargetKind
	Query query.Query

	// Web search.
	Engine *schema.SearchEngine
	URL    string

	// Extension search; Text is what the extension receives.
	Extension *schema.ExtensionManifest
	Text      string

	// App matches, best first.
	Apps []schema.App
}

// Router routes queries against a snapshot of the settings, the extension
// catalog and the apps index.
type Router struct {
	settings   schema.Settings
	extensions []schema.ExtensionManifest
	apps       []schema.App
	goos       string
	logger     *logrus.Entry
}

// Option configures a Router.
type Option func(*Router)

// WithOS overrides the platform used to filter extensions.
func WithOS(goos string) Option {
	return func(r *Router) { r.goos = goos }
}

// NewRouter creates a router. Extensions not supported on this platform are
// never selected.
func NewRouter(s schema.Settings, extensions []schema.ExtensionManifest, appList []schema.App, opts ...Option) *Router {
	r := &Router{
		settings:   s,
		extensions: extensions,
		apps:       appList,
		goos:       runtime.GOOS,
		logger:     logging.NewLogger("search"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route parses input and picks its target. A keyword that matches nothing
// falls back to an app search over the whole input.
func (r *Router) Route(input string) (Target, error) {
	q := query.Parse(input)

	if q.HasKeyword && q.Keyword != "" {
		if q.Keyword == r.settings.SearchKeyword {
			if engine, ok := r.defaultEngine(); ok {
				return r.webTarget(q, engine), nil
			}
		}
		for i := range r.settings.SearchEngines {
			if r.settings.SearchEngines[i].Keyword == q.Keyword {
				return r.webTarget(q, r.settings.SearchEngines[i]), nil
			}
		}
		for i := range r.extensions {
			manifest := r.extensions[i]
			if !manifest.SupportsOS(r.goos) {
				continue
			}
			if settings.EffectiveKeyword(r.settings, manifest) == q.Keyword {
				return Target{
					Kind:      TargetExtension,
					Query:     q,
					Extension: &manifest,
					Text:      q.SearchText,
				}, nil
			}
		}
	}

	matches, err := r.MatchApps(strings.TrimSpace(input))
	if err != nil {
		return Target{}, err
	}
	return Target{Kind: TargetApps, Query: q, Text: strings.TrimSpace(input), Apps: matches}, nil
}

// MatchApps fuzzy-matches text against app titles after applying the
// blacklist. Empty text matches nothing.
func (r *Router) MatchApps(text string) ([]schema.App, error) {
	if text == "" {
		return []schema.App{}, nil
	}

	visible, err := apps.Filter(r.apps, r.settings.Blacklist)
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(visible))
	for i, app := range visible {
		titles[i] = app.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(text, titles)
	sort.Stable(ranks)

	matches := make([]schema.App, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, visible[rank.OriginalIndex])
	}
	r.logger.WithField("query", text).WithField("matches", len(matches)).Debug("Matched apps")
	return matches, nil
}

// defaultEngine returns the engine selected by DefaultSearchEngine, or the
// first engine when that id is unknown.
func (r *Router) defaultEngine() (schema.SearchEngine, bool) {
	for _, engine := range r.settings.SearchEngines {
		if engine.ID == r.settings.DefaultSearchEngine {
			return engine, true
		}
	}
	if len(r.settings.SearchEngines) > 0 {
		return r.settings.SearchEngines[0], true
	}
	return schema.SearchEngine{}, false
}

func (r *Router) webTarget(q query.Query, engine schema.SearchEngine) Target {
	return Target{
		Kind:   TargetWeb,
		Query:  q,
		Engine: &engine,
		URL:    SearchURL(engine, q.SearchText),
		Text:   q.SearchText,
	}
}

// SearchURL substitutes the escaped text into the engine's query template.
func SearchURL(engine schema.SearchEngine, text string) string {
	return strings.ReplaceAll(engine.SearchQuery, "%s", url.QueryEscape(text))
}
