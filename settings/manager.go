package settings

import (
	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/state"
)

// Autostart registers or removes the launcher from the session autostart.
type Autostart interface {
	Enable() error
	Disable() error
}

type noopAutostart struct{}

func (noopAutostart) Enable() error  { return nil }
func (noopAutostart) Disable() error { return nil }

// NoopAutostart is an Autostart that does nothing.
var NoopAutostart Autostart = noopAutostart{}

// Manager reads and writes settings through the state store.
type Manager struct {
	store     *state.Store
	autostart Autostart
	logger    *logrus.Entry
}

// NewManager creates a manager. A nil autostart disables registration.
func NewManager(store *state.Store, autostart Autostart) *Manager {
	if autostart == nil {
		autostart = NoopAutostart
	}
	return &Manager{
		store:     store,
		autostart: autostart,
		logger:    logging.NewLogger("settings"),
	}
}

// Load returns the stored settings, or Defaults when none are usable.
func (m *Manager) Load() schema.Settings {
	current, found := m.store.Settings()
	if !found {
		return Defaults()
	}
	return current
}

// Save replaces the stored settings. Autostart is toggled only when
// AutoStart differs from the previously stored value.
func (m *Manager) Save(next schema.Settings) error {
	return m.Update(func(current *schema.Settings) error {
		*current = next
		return nil
	})
}

// Update applies fn to the current settings (defaults when none are stored)
// and persists the result in one transaction.
func (m *Manager) Update(fn func(current *schema.Settings) error) error {
	var before, after bool
	err := m.store.UpdateSettings(func(current *schema.Settings, found bool) error {
		if !found {
			*current = Defaults()
		}
		before = current.AutoStart
		if err := fn(current); err != nil {
			return err
		}
		after = current.AutoStart
		return nil
	})
	if err != nil {
		return err
	}

	if before != after {
		m.applyAutostart(after)
	}
	return nil
}

func (m *Manager) applyAutostart(enabled bool) {
	var err error
	if enabled {
		err = m.autostart.Enable()
	} else {
		err = m.autostart.Disable()
	}
	if err != nil {
		m.logger.WithError(err).WithField("enabled", enabled).Warn("Failed to update autostart registration")
		return
	}
	m.logger.WithField("enabled", enabled).Info("Updated autostart registration")
}

// Reconcile merges the declared settings of every manifest and persists the
// result once.
func (m *Manager) Reconcile(manifests []schema.ExtensionManifest) error {
	return m.Update(func(current *schema.Settings) error {
		*current, _ = ReconcileAll(*current, manifests)
		return nil
	})
}

// ExtensionSetting returns the stored value of one extension setting.
func (m *Manager) ExtensionSetting(extensionID, settingID string) (string, bool) {
	return Lookup(m.Load(), extensionID, settingID)
}

// SetExtensionSetting stores the value of one extension setting.
func (m *Manager) SetExtensionSetting(extensionID, settingID, value string) error {
	return m.Update(func(current *schema.Settings) error {
		*current, _ = Set(*current, extensionID, settingID, value)
		return nil
	})
}
