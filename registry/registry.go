// Package registry discovers extensions by scanning the extensions root for
// manifest files and maintains the indexed extension catalog.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/pkg/profiling"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
)

// ManifestNames lists the accepted manifest file names.
var ManifestNames = []string{"manifest.json", "manifest.yml", "manifest.yaml"}

// IsManifestFile reports whether name is an accepted manifest file name.
func IsManifestFile(name string) bool {
	for _, candidate := range ManifestNames {
		if name == candidate {
			return true
		}
	}
	return false
}

// Registry scans an extensions root. It is cheap to construct and holds
// no open resources.
type Registry struct {
	root      string
	ignore    *patternmatcher.PatternMatcher
	store     *state.Store
	validator *schema.Validator
	logger    *logrus.Entry
}

// Option configures a Registry.
type Option func(*Registry) error

// WithIgnore skips paths (relative to the root) matching .dockerignore-style
// patterns while scanning.
func WithIgnore(patterns []string) Option {
	return func(r *Registry) error {
		if len(patterns) == 0 {
			r.ignore = nil
			return nil
		}
		pm, err := patternmatcher.New(patterns)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("invalid ignore pattern: %v", err))
		}
		r.ignore = pm
		return nil
	}
}

// New creates a registry over root backed by store.
func New(root string, store *state.Store, opts ...Option) (*Registry, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load manifest schema")
	}

	r := &Registry{
		root:      root,
		store:     store,
		validator: validator,
		logger:    logging.NewLogger("registry"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Root returns the scanned directory.
func (r *Registry) Root() string {
	return r.root
}

// IndexExtensions scans the root, reconciles the settings declared by every
// valid manifest and replaces the catalog snapshot. Invalid manifests are
// logged and skipped. Settings and catalog are written together once.
func (r *Registry) IndexExtensions(ctx context.Context) ([]schema.ExtensionManifest, error) {
	defer profiling.Start("index extensions").Stop()

	if err := os.MkdirAll(r.root, 0755); err != nil {
		return nil, errors.StoreWrite("extensions directory", err).WithDetail("path", r.root)
	}

	var (
		manifests []schema.ExtensionManifest
		seen      = make(map[string]string)
	)
	err := r.scan(ctx, func(dir string, manifest schema.ExtensionManifest) bool {
		if first, dup := seen[manifest.ID]; dup {
			r.logger.WithFields(logrus.Fields{
				"extension": manifest.ID,
				"dir":       dir,
				"kept":      first,
			}).Warn("Skipping extension with duplicate id")
			return true
		}
		seen[manifest.ID] = dir
		if !routable(manifest.Keyword) {
			r.logger.WithFields(logrus.Fields{
				"extension": manifest.ID,
				"keyword":   manifest.Keyword,
			}).Warn("Keyword is empty or contains whitespace and cannot match a query")
		}
		manifests = append(manifests, manifest)
		return true
	})
	if err != nil {
		return nil, err
	}
	if manifests == nil {
		manifests = []schema.ExtensionManifest{}
	}

	err = r.store.SaveIndex(manifests, func(current *schema.Settings, found bool) error {
		if !found {
			*current = settings.Defaults()
		}
		*current, _ = settings.ReconcileAll(*current, manifests)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.WithField("count", len(manifests)).Info("Indexed extensions")
	return manifests, nil
}

// routable reports whether keyword can be the first word of a query.
func routable(keyword string) bool {
	return keyword != "" && !strings.ContainsAny(keyword, " \t\r\n")
}

// Extensions returns the indexed catalog, empty when it is unreadable.
func (r *Registry) Extensions() []schema.ExtensionManifest {
	return r.store.Extensions()
}

// Find returns the indexed manifest with the given id.
func (r *Registry) Find(id string) (schema.ExtensionManifest, bool) {
	for _, manifest := range r.Extensions() {
		if manifest.ID == id {
			return manifest, true
		}
	}
	return schema.ExtensionManifest{}, false
}

// ExtensionDir scans the root on demand and returns the directory of the
// first manifest whose id matches. Not finding one is not an error.
func (r *Registry) ExtensionDir(id string) (string, bool) {
	var found string
	err := r.scan(context.Background(), func(dir string, manifest schema.ExtensionManifest) bool {
		if manifest.ID == id {
			found = dir
			return false
		}
		return true
	})
	if err != nil {
		r.logger.WithError(err).WithField("extension", id).Debug("Extension lookup scan failed")
		return "", false
	}
	return found, found != ""
}

// scan walks the root in lexical order and calls visit for every valid
// manifest until visit returns false.
func (r *Registry) scan(ctx context.Context, visit func(dir string, manifest schema.ExtensionManifest) bool) error {
	if _, err := os.Stat(r.root); os.IsNotExist(err) {
		return nil
	}

	stop := fmt.Errorf("stop")
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			r.logger.WithError(walkErr).WithField("path", path).Warn("Skipping unreadable path")
			if d != nil && d.IsDir() && path != r.root {
				return filepath.SkipDir
			}
			return nil
		}
		if path != r.root && r.ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsManifestFile(d.Name()) {
			return nil
		}

		manifest, err := r.LoadManifest(path)
		if err != nil {
			r.logger.WithError(err).WithField("path", path).Warn("Skipping invalid manifest")
			return nil
		}
		if !visit(filepath.Dir(path), manifest) {
			return stop
		}
		return nil
	})
	if err == stop {
		return nil
	}
	return err
}

func (r *Registry) ignored(path string) bool {
	if r.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return false
	}
	matched, err := r.ignore.MatchesOrParentMatches(rel)
	if err != nil {
		r.logger.WithError(err).WithField("path", rel).Debug("Ignore pattern evaluation failed")
		return false
	}
	return matched
}

// LoadManifest reads, validates and decodes one manifest file.
func (r *Registry) LoadManifest(path string) (schema.ExtensionManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.ExtensionManifest{}, errors.ManifestInvalid(path, err)
	}

	yamlFormat := strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml")

	var generic interface{}
	if yamlFormat {
		err = yaml.Unmarshal(data, &generic)
	} else {
		err = json.Unmarshal(data, &generic)
	}
	if err != nil {
		return schema.ExtensionManifest{}, errors.ManifestInvalid(path, err)
	}

	if err := r.validator.Validate(generic); err != nil {
		return schema.ExtensionManifest{}, errors.ManifestInvalid(path, err)
	}

	var manifest schema.ExtensionManifest
	if yamlFormat {
		err = yaml.Unmarshal(data, &manifest)
	} else {
		err = json.Unmarshal(data, &manifest)
	}
	if err != nil {
		return schema.ExtensionManifest{}, errors.ManifestInvalid(path, err)
	}

	manifest.ApplyDefaults()
	return manifest, nil
}
