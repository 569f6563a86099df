// Package settings owns the launcher settings: defaults, reconciliation of
// extension-declared settings, lookups, and persistence through the state
// store.
package settings

import (
	"github.com/whiskers-launcher/companion/schema"
)

// Reconcile merges the settings declared by manifest into settings. Missing
// rows are appended (the keyword row with the manifest keyword, every
// declared setting with its default value); existing rows are never
// modified and no row is ever removed. The boolean reports whether any row
// was added. The input slice is not mutated.
func Reconcile(settings schema.Settings, manifest schema.ExtensionManifest) (schema.Settings, bool) {
	rows := make([]schema.ExtensionSetting, len(settings.Extensions), len(settings.Extensions)+len(manifest.Settings)+1)
	copy(rows, settings.Extensions)

	existing := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.ExtensionID == manifest.ID {
			existing[row.SettingID] = true
		}
	}

	changed := false
	add := func(settingID, value string) {
		if existing[settingID] {
			return
		}
		existing[settingID] = true
		rows = append(rows, schema.ExtensionSetting{
			ExtensionID:  manifest.ID,
			SettingID:    settingID,
			SettingValue: value,
		})
		changed = true
	}

	add(schema.KeywordSettingID, manifest.Keyword)
	for _, declared := range manifest.Settings {
		add(declared.ID, declared.DefaultValue)
	}

	settings.Extensions = rows
	return settings, changed
}

// ReconcileAll reconciles every manifest in order.
func ReconcileAll(settings schema.Settings, manifests []schema.ExtensionManifest) (schema.Settings, bool) {
	changed := false
	for _, manifest := range manifests {
		var added bool
		settings, added = Reconcile(settings, manifest)
		changed = changed || added
	}
	return settings, changed
}

// Lookup returns the value of the first row matching the key pair.
func Lookup(settings schema.Settings, extensionID, settingID string) (string, bool) {
	for _, row := range settings.Extensions {
		if row.ExtensionID == extensionID && row.SettingID == settingID {
			return row.SettingValue, true
		}
	}
	return "", false
}

// Set updates the row for the key pair, appending it if absent. It returns
// false when an existing row already held value.
func Set(settings schema.Settings, extensionID, settingID, value string) (schema.Settings, bool) {
	rows := append([]schema.ExtensionSetting{}, settings.Extensions...)
	for i, row := range rows {
		if row.ExtensionID == extensionID && row.SettingID == settingID {
			if row.SettingValue == value {
				return settings, false
			}
			rows[i].SettingValue = value
			settings.Extensions = rows
			return settings, true
		}
	}
	settings.Extensions = append(rows, schema.ExtensionSetting{
		ExtensionID:  extensionID,
		SettingID:    settingID,
		SettingValue: value,
	})
	return settings, true
}

// ForExtension returns every row belonging to extensionID as a map.
func ForExtension(settings schema.Settings, extensionID string) map[string]string {
	values := make(map[string]string)
	for _, row := range settings.Extensions {
		if row.ExtensionID != extensionID {
			continue
		}
		if _, seen := values[row.SettingID]; !seen {
			values[row.SettingID] = row.SettingValue
		}
	}
	return values
}

// EffectiveKeyword returns the keyword routing queries to an extension: the
// user's keyword row when present, otherwise the manifest keyword.
func EffectiveKeyword(settings schema.Settings, manifest schema.ExtensionManifest) string {
	if keyword, ok := Lookup(settings, manifest.ID, schema.KeywordSettingID); ok && keyword != "" {
		return keyword
	}
	return manifest.Keyword
}
