package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/schema"
)

func calcManifest() schema.ExtensionManifest {
	return schema.ExtensionManifest{
		ID:      "calc",
		Name:    "Calculator",
		Keyword: "=",
		Settings: []schema.ExtensionManifestSetting{
			{ID: "precision", SettingType: schema.SettingInput, DefaultValue: "2"},
			{ID: "degrees", SettingType: schema.SettingToggle, DefaultValue: "false"},
		},
		OS: schema.AllOS,
	}
}

func TestReconcileAddsMissingRows(t *testing.T) {
	merged, changed := Reconcile(Defaults(), calcManifest())
	require.True(t, changed)

	assert.Equal(t, []schema.ExtensionSetting{
		{ExtensionID: "calc", SettingID: "keyword", SettingValue: "="},
		{ExtensionID: "calc", SettingID: "precision", SettingValue: "2"},
		{ExtensionID: "calc", SettingID: "degrees", SettingValue: "false"},
	}, merged.Extensions)
}

func TestReconcileIsIdempotent(t *testing.T) {
	once, _ := Reconcile(Defaults(), calcManifest())
	twice, changed := Reconcile(once, calcManifest())

	assert.False(t, changed)
	assert.Equal(t, once, twice)
}

func TestReconcileKeepsUserValues(t *testing.T) {
	current := Defaults()
	current.Extensions = []schema.ExtensionSetting{
		{ExtensionID: "calc", SettingID: "keyword", SettingValue: "calc"},
		{ExtensionID: "calc", SettingID: "precision", SettingValue: "6"},
		{ExtensionID: "gone", SettingID: "keyword", SettingValue: "g"},
	}
	before := append([]schema.ExtensionSetting{}, current.Extensions...)

	merged, changed := Reconcile(current, calcManifest())
	require.True(t, changed)

	assert.Equal(t, before, merged.Extensions[:len(before)], "existing rows must be untouched")
	assert.Equal(t, before, current.Extensions, "input must not be mutated")

	value, ok := Lookup(merged, "calc", "keyword")
	require.True(t, ok)
	assert.Equal(t, "calc", value)

	value, ok = Lookup(merged, "calc", "degrees")
	require.True(t, ok)
	assert.Equal(t, "false", value)

	_, ok = Lookup(merged, "gone", "keyword")
	assert.True(t, ok, "rows of removed extensions are kept")
}

func TestReconcileDuplicateDeclarations(t *testing.T) {
	manifest := calcManifest()
	manifest.Settings = append(manifest.Settings, schema.ExtensionManifestSetting{ID: "precision", DefaultValue: "9"})

	merged, _ := Reconcile(Defaults(), manifest)

	count := 0
	for _, row := range merged.Extensions {
		if row.ExtensionID == "calc" && row.SettingID == "precision" {
			count++
			assert.Equal(t, "2", row.SettingValue)
		}
	}
	assert.Equal(t, 1, count)
}

func TestReconcileAll(t *testing.T) {
	other := schema.ExtensionManifest{ID: "notes", Keyword: "n"}

	merged, changed := ReconcileAll(Defaults(), []schema.ExtensionManifest{calcManifest(), other})
	require.True(t, changed)
	assert.Len(t, merged.Extensions, 4)

	_, changed = ReconcileAll(merged, []schema.ExtensionManifest{calcManifest(), other})
	assert.False(t, changed)
}

func TestLookup(t *testing.T) {
	s := schema.Settings{Extensions: []schema.ExtensionSetting{
		{ExtensionID: "a", SettingID: "x", SettingValue: "1"},
		{ExtensionID: "b", SettingID: "x", SettingValue: "2"},
	}}

	tests := []struct {
		ext, id string
		want    string
		found   bool
	}{
		{"a", "x", "1", true},
		{"b", "x", "2", true},
		{"a", "y", "", false},
		{"c", "x", "", false},
	}
	for _, tt := range tests {
		got, found := Lookup(s, tt.ext, tt.id)
		assert.Equal(t, tt.found, found, "%s/%s", tt.ext, tt.id)
		assert.Equal(t, tt.want, got, "%s/%s", tt.ext, tt.id)
	}
}

func TestSet(t *testing.T) {
	s := schema.Settings{Extensions: []schema.ExtensionSetting{{ExtensionID: "a", SettingID: "x", SettingValue: "1"}}}

	updated, changed := Set(s, "a", "x", "2")
	require.True(t, changed)
	assert.Equal(t, "1", s.Extensions[0].SettingValue, "input must not be mutated")
	value, _ := Lookup(updated, "a", "x")
	assert.Equal(t, "2", value)

	_, changed = Set(updated, "a", "x", "2")
	assert.False(t, changed)

	added, changed := Set(updated, "a", "y", "3")
	require.True(t, changed)
	assert.Len(t, added.Extensions, 2)
}

func TestEffectiveKeyword(t *testing.T) {
	manifest := calcManifest()
	assert.Equal(t, "=", EffectiveKeyword(Defaults(), manifest))

	s, _ := Set(Defaults(), "calc", "keyword", "c")
	assert.Equal(t, "c", EffectiveKeyword(s, manifest))
}

func TestDecodeExtension(t *testing.T) {
	s, _ := Reconcile(Defaults(), calcManifest())
	s, _ = Set(s, "calc", "degrees", "true")

	var cfg struct {
		Keyword   string `setting:"keyword"`
		Precision int    `setting:"precision"`
		Degrees   bool   `setting:"degrees"`
	}
	require.NoError(t, DecodeExtension(s, "calc", &cfg))

	assert.Equal(t, "=", cfg.Keyword)
	assert.Equal(t, 2, cfg.Precision)
	assert.True(t, cfg.Degrees)
}

func TestDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, "ctrl", d.FirstKey)
	assert.Nil(t, d.SecondKey)
	assert.Equal(t, "space", d.ThirdKey)
	assert.True(t, d.AutoStart)
	assert.Equal(t, "s", d.SearchKeyword)
	assert.Equal(t, 0, d.DefaultSearchEngine)
	assert.Equal(t, "#FFE072", d.Theme.Accent)
	assert.Empty(t, d.Extensions)

	require.Len(t, d.SearchEngines, 4)
	keywords := []string{}
	for _, engine := range d.SearchEngines {
		keywords = append(keywords, engine.Keyword)
	}
	assert.Equal(t, []string{"gs", "ds", "bs", "ss"}, keywords)
	assert.Nil(t, d.SearchEngines[3].IconPath)
	assert.False(t, d.SearchEngines[3].TintIcon)
}
