package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/testutil"
)

const calcManifest = `{
  "id": "calc",
  "name": "Calculator",
  "description": "Evaluates expressions",
  "keyword": "=",
  "settings": [
    {
      "id": "precision",
      "title": "Precision",
      "description": "Decimal places",
      "setting_type": "Input",
      "default_value": "2"
    }
  ]
}`

const notesManifest = `id: notes
name: Notes
description: Quick notes
keyword: n
os: linux
`

var writeManifest = testutil.WriteManifest

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *state.Store, string) {
	t.Helper()
	testutil.TempHome(t)

	root := filepath.Join(t.TempDir(), "extensions")
	store := testutil.NewStore(t)
	r, err := New(root, store, opts...)
	require.NoError(t, err)
	return r, store, root
}

func TestIndexExtensionsSkipsMalformed(t *testing.T) {
	r, store, root := newTestRegistry(t)

	writeManifest(t, root, "broken", "manifest.json", `{"id": "broken", "name": `)
	writeManifest(t, root, "calc", "manifest.json", calcManifest)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "calc", manifests[0].ID)
	assert.Equal(t, schema.AllOS, manifests[0].OS)

	catalog := store.Extensions()
	require.Len(t, catalog, 1)
	assert.Equal(t, "calc", catalog[0].ID)

	current, found := store.Settings()
	require.True(t, found)
	for _, row := range current.Extensions {
		assert.Equal(t, "calc", row.ExtensionID)
	}

	keyword, ok := settings.Lookup(current, "calc", schema.KeywordSettingID)
	require.True(t, ok)
	assert.Equal(t, "=", keyword)

	precision, ok := settings.Lookup(current, "calc", "precision")
	require.True(t, ok)
	assert.Equal(t, "2", precision)

	assert.Equal(t, settings.Defaults().SearchKeyword, current.SearchKeyword)
}

func TestIndexExtensionsRejectsSchemaViolations(t *testing.T) {
	r, _, root := newTestRegistry(t)

	writeManifest(t, root, "typed", "manifest.json",
		`{"id": "typed", "name": "Typed", "description": "x", "keyword": ["k"]}`)
	writeManifest(t, root, "nameless", "manifest.json",
		`{"id": "nameless", "description": "x", "keyword": "k"}`)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func TestIndexExtensionsAcceptsUnroutableKeywords(t *testing.T) {
	r, store, root := newTestRegistry(t)

	writeManifest(t, root, "anon", "manifest.json",
		`{"id": "", "name": "Anon", "description": "x", "keyword": "a"}`)
	writeManifest(t, root, "silent", "manifest.json",
		`{"id": "silent", "name": "Silent", "description": "x", "keyword": ""}`)
	writeManifest(t, root, "spaced", "manifest.json",
		`{"id": "spaced", "name": "Spaced", "description": "x", "keyword": "two words"}`)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	assert.Len(t, manifests, 3)

	current, found := store.Settings()
	require.True(t, found)
	for id, keyword := range map[string]string{"": "a", "silent": "", "spaced": "two words"} {
		value, ok := settings.Lookup(current, id, "keyword")
		assert.True(t, ok, id)
		assert.Equal(t, keyword, value, id)
	}
}

func TestIndexExtensionsPreservesUserValues(t *testing.T) {
	r, store, root := newTestRegistry(t)
	writeManifest(t, root, "calc", "manifest.json", calcManifest)

	_, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.UpdateSettings(func(current *schema.Settings, found bool) error {
		*current, _ = settings.Set(*current, "calc", schema.KeywordSettingID, "calc")
		return nil
	}))

	_, err = r.IndexExtensions(context.Background())
	require.NoError(t, err)

	current, _ := store.Settings()
	keyword, _ := settings.Lookup(current, "calc", schema.KeywordSettingID)
	assert.Equal(t, "calc", keyword)

	count := 0
	for _, row := range current.Extensions {
		if row.ExtensionID == "calc" && row.SettingID == schema.KeywordSettingID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestIndexExtensionsYAMLAndDuplicates(t *testing.T) {
	r, _, root := newTestRegistry(t)

	writeManifest(t, root, "a-notes", "manifest.yml", notesManifest)
	writeManifest(t, root, "b-notes", "manifest.yaml", notesManifest)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "notes", manifests[0].ID)
	assert.Equal(t, "linux", manifests[0].OS)

	dir, ok := r.ExtensionDir("notes")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a-notes"), dir)
}

func TestIndexExtensionsHonoursIgnore(t *testing.T) {
	r, _, root := newTestRegistry(t, WithIgnore([]string{"disabled"}))

	writeManifest(t, root, "calc", "manifest.json", calcManifest)
	writeManifest(t, root, "disabled", "manifest.yml", notesManifest)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "calc", manifests[0].ID)
}

func TestIndexExtensionsCreatesRoot(t *testing.T) {
	r, store, root := newTestRegistry(t)

	manifests, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, manifests)
	assert.DirExists(t, root)
	assert.Empty(t, store.Extensions())
}

func TestExtensionDirMissing(t *testing.T) {
	r, _, root := newTestRegistry(t)
	writeManifest(t, root, "calc", "manifest.json", calcManifest)

	dir, ok := r.ExtensionDir("nope")
	assert.False(t, ok)
	assert.Empty(t, dir)

	dir, ok = r.ExtensionDir("calc")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "calc"), dir)
}

func TestFindUsesCatalog(t *testing.T) {
	r, _, root := newTestRegistry(t)
	writeManifest(t, root, "calc", "manifest.json", calcManifest)

	_, ok := r.Find("calc")
	assert.False(t, ok, "catalog is empty before indexing")

	_, err := r.IndexExtensions(context.Background())
	require.NoError(t, err)

	manifest, ok := r.Find("calc")
	require.True(t, ok)
	assert.Equal(t, "Calculator", manifest.Name)
}

func TestLoadManifestError(t *testing.T) {
	r, _, root := newTestRegistry(t)
	dir := writeManifest(t, root, "bad", "manifest.json", `[]`)

	_, err := r.LoadManifest(filepath.Join(dir, "manifest.json"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeManifestInvalid, errors.GetCode(err))
}

func TestWithIgnoreRejectsBadPattern(t *testing.T) {
	_, err := New(t.TempDir(), testutil.NewStore(t), WithIgnore([]string{"["}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}
