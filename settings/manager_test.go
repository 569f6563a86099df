package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/state"
)

type recordingAutostart struct {
	enabled  int
	disabled int
}

func (r *recordingAutostart) Enable() error {
	r.enabled++
	return nil
}

func (r *recordingAutostart) Disable() error {
	r.disabled++
	return nil
}

func newTestManager(t *testing.T) (*Manager, *recordingAutostart) {
	t.Helper()
	auto := &recordingAutostart{}
	store := state.NewStore(filepath.Join(t.TempDir(), "state.db"))
	return NewManager(store, auto), auto
}

func TestManagerLoadDefaults(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, Defaults(), m.Load())
}

func TestManagerSaveTogglesAutostartOnlyOnChange(t *testing.T) {
	m, auto := newTestManager(t)

	s := m.Load()
	s.ShowAltHint = false
	require.NoError(t, m.Save(s))
	assert.Equal(t, 0, auto.enabled+auto.disabled)

	s.AutoStart = false
	require.NoError(t, m.Save(s))
	assert.Equal(t, 1, auto.disabled)

	require.NoError(t, m.Save(s))
	assert.Equal(t, 1, auto.disabled)

	s.AutoStart = true
	require.NoError(t, m.Save(s))
	assert.Equal(t, 1, auto.enabled)

	assert.False(t, m.Load().ShowAltHint)
}

func TestManagerReconcileAndLookup(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Reconcile([]schema.ExtensionManifest{calcManifest()}))
	require.NoError(t, m.SetExtensionSetting("calc", "precision", "4"))
	require.NoError(t, m.Reconcile([]schema.ExtensionManifest{calcManifest()}))

	value, ok := m.ExtensionSetting("calc", "precision")
	require.True(t, ok)
	assert.Equal(t, "4", value)

	_, ok = m.ExtensionSetting("calc", "missing")
	assert.False(t, ok)
}

func TestDesktopEntryAutostart(t *testing.T) {
	dir := t.TempDir()
	a := NewDesktopEntryAutostart(dir, "whiskers index-extensions")

	require.NoError(t, a.Enable())
	data, err := os.ReadFile(filepath.Join(dir, DesktopEntryName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Exec=whiskers index-extensions")
	assert.Contains(t, string(data), "[Desktop Entry]")

	require.NoError(t, a.Disable())
	_, err = os.Stat(filepath.Join(dir, DesktopEntryName))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, a.Disable())
}
