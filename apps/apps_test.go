package apps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/state"
)

type staticEnumerator []schema.App

func (s staticEnumerator) Enumerate(ctx context.Context) ([]schema.App, error) {
	return s, nil
}

func TestStableID(t *testing.T) {
	a := StableID("/usr/bin/firefox")
	assert.Equal(t, a, StableID("/usr/bin/firefox"))
	assert.Equal(t, a, StableID("/usr/bin/../bin/firefox"))
	assert.NotEqual(t, a, StableID("/usr/bin/chromium"))
	assert.Len(t, a, 36)
}

func TestIndexSortsAndAssignsIDs(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "state.db"))
	indexer := NewIndexer(staticEnumerator{
		schema.NewApp("", "zed", "/bin/zed"),
		schema.NewApp("", "Alacritty", "/bin/alacritty"),
		schema.NewApp("", "blender", "/bin/blender"),
		schema.NewApp("", "Alacritty", "/bin/alacritty"),
	}, store)

	indexed, err := indexer.Index(context.Background())
	require.NoError(t, err)

	titles := []string{}
	for _, app := range indexed {
		titles = append(titles, app.Title)
		assert.Equal(t, StableID(app.Path), app.ID)
	}
	assert.Equal(t, []string{"Alacritty", "blender", "zed"}, titles)
	assert.Equal(t, indexed, store.Apps())
}

func TestFilter(t *testing.T) {
	list := []schema.App{
		schema.NewApp("1", "htop", "/usr/bin/htop"),
		schema.NewApp("2", "Steam", "/opt/games/steam/steam"),
		schema.NewApp("3", "Firefox", "/usr/bin/firefox"),
		schema.NewApp("4", "Vim", "/usr/bin/vim"),
	}

	kept, err := Filter(list, []string{"/usr/bin/htop", "/opt/games", "4"})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Firefox", kept[0].Title)

	all, err := Filter(list, nil)
	require.NoError(t, err)
	assert.Equal(t, list, all)
}

func TestFilterSkipsInvalidPatterns(t *testing.T) {
	list := []schema.App{
		schema.NewApp("1", "htop", "/usr/bin/htop"),
		schema.NewApp("2", "Firefox", "/usr/bin/firefox"),
		schema.NewApp("[", "Bracket", "/opt/bracket"),
	}

	kept, err := Filter(list, []string{"[", "/usr/bin/htop"})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "Firefox", kept[0].Title)
}

func TestExecutableEnumerator(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not used on windows")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tool"), []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("docs"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	found, err := (&ExecutableEnumerator{Dirs: []string{dir, filepath.Join(dir, "missing")}}).Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "tool", found[0].Title)
	assert.Equal(t, StableID(filepath.Join(dir, "tool")), found[0].ID)
}
