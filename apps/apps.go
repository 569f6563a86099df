// Package apps builds and queries the index of launchable applications.
//
// Discovering applications is delegated to an Enumerator. This package
// assigns stable identifiers, orders the snapshot and applies the user's
// blacklist.
package apps

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/pkg/profiling"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/util/pathutil"
)

// idNamespace scopes the name-based UUIDs derived from app paths.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://whiskers-launcher.dev/apps"))

// StableID derives an app identifier from its executable path. The same
// path always yields the same id, across remounts and re-indexes.
func StableID(path string) string {
	normalized, err := pathutil.NormalizeForLookup(path)
	if err != nil {
		normalized = filepath.Clean(path)
	}
	return uuid.NewSHA1(idNamespace, []byte(normalized)).String()
}

// Enumerator lists the applications installed on the system. Returned
// records may leave ID empty.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]schema.App, error)
}

// Indexer rebuilds the apps snapshot.
type Indexer struct {
	enumerator Enumerator
	store      *state.Store
	logger     *logrus.Entry
}

func NewIndexer(enumerator Enumerator, store *state.Store) *Indexer {
	return &Indexer{
		enumerator: enumerator,
		store:      store,
		logger:     logging.NewLogger("apps"),
	}
}

// Index enumerates applications, assigns stable ids, drops duplicate ids,
// sorts by title and replaces the stored snapshot.
func (i *Indexer) Index(ctx context.Context) ([]schema.App, error) {
	defer profiling.Start("index apps").Stop()

	found, err := i.enumerator.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(found))
	indexed := make([]schema.App, 0, len(found))
	for _, app := range found {
		if app.ID == "" {
			app.ID = StableID(app.Path)
		}
		if seen[app.ID] {
			continue
		}
		seen[app.ID] = true
		indexed = append(indexed, app)
	}

	Sort(indexed)

	if err := i.store.SaveApps(indexed); err != nil {
		return nil, err
	}

	i.logger.WithField("count", len(indexed)).Info("Indexed apps")
	return indexed, nil
}

// Sort orders apps by title, case-insensitively, then by path.
func Sort(list []schema.App) {
	sort.SliceStable(list, func(a, b int) bool {
		ta, tb := strings.ToLower(list[a].Title), strings.ToLower(list[b].Title)
		if ta != tb {
			return ta < tb
		}
		return list[a].Path < list[b].Path
	})
}

// Filter removes blacklisted apps. A blacklist entry matches an app by id,
// or by path using .dockerignore-style patterns ("/opt/games/**"). Entries
// that are not valid patterns still match by id; they are logged and
// ignored as patterns.
func Filter(list []schema.App, blacklist []string) ([]schema.App, error) {
	if len(blacklist) == 0 {
		return list, nil
	}

	ids := make(map[string]bool, len(blacklist))
	patterns := make([]string, 0, len(blacklist))
	for _, entry := range blacklist {
		ids[entry] = true
		pattern := relativePattern(entry)
		if _, err := patternmatcher.New([]string{pattern}); err != nil {
			logging.NewLogger("apps").WithError(err).WithField("entry", entry).
				Warn("Ignoring invalid blacklist pattern")
			continue
		}
		patterns = append(patterns, pattern)
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, err
	}

	kept := make([]schema.App, 0, len(list))
	for _, app := range list {
		if ids[app.ID] {
			continue
		}
		matched, err := pm.MatchesOrParentMatches(relativePattern(app.Path))
		if err != nil {
			return nil, err
		}
		if !matched {
			kept = append(kept, app)
		}
	}
	return kept, nil
}

// relativePattern strips the volume and leading separator so absolute
// paths and patterns are compared in the same relative form.
func relativePattern(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}
	return strings.TrimLeft(p, "/")
}
