package schema

// AllOS is the platform filter value matching every operating system.
const AllOS = "*"

// ExtensionSettingType is the kind of control used to edit a declared setting.
type ExtensionSettingType string

const (
	SettingInput    ExtensionSettingType = "Input"
	SettingTextArea ExtensionSettingType = "TextArea"
	SettingSelect   ExtensionSettingType = "Select"
	SettingToggle   ExtensionSettingType = "Toggle"
)

// ExtensionManifest is the static declaration shipped in every extension
// directory. ID is the foreign key used by settings, requests and forms.
type ExtensionManifest struct {
	ID          string                     `json:"id" yaml:"id" jsonschema:"description=Stable identifier of the extension"`
	Name        string                     `json:"name" yaml:"name" jsonschema:"description=Display name"`
	Description string                     `json:"description" yaml:"description"`
	Keyword     string                     `json:"keyword" yaml:"keyword" jsonschema:"description=Default keyword routing queries to the extension"`
	Settings    []ExtensionManifestSetting `json:"settings,omitempty" yaml:"settings,omitempty" jsonschema:"description=Settings the extension exposes to the user"`
	OS          string                     `json:"os,omitempty" yaml:"os,omitempty" jsonschema:"description=Platform filter; '*' matches every platform,default=*"`
}

// ExtensionManifestSetting is one user-editable setting declared by a manifest.
type ExtensionManifestSetting struct {
	ID             string                `json:"id" yaml:"id"`
	Title          string                `json:"title" yaml:"title"`
	Description    string                `json:"description" yaml:"description"`
	SettingType    ExtensionSettingType  `json:"setting_type" yaml:"setting_type" jsonschema:"enum=Input,enum=TextArea,enum=Select,enum=Toggle"`
	DefaultValue   string                `json:"default_value" yaml:"default_value"`
	ShowConditions []ShowCondition       `json:"show_conditions,omitempty" yaml:"show_conditions,omitempty"`
	SelectOptions  []SettingSelectOption `json:"select_options,omitempty" yaml:"select_options,omitempty"`
	OS             string                `json:"os,omitempty" yaml:"os,omitempty" jsonschema:"default=*"`
}

// ShowCondition hides a setting unless another setting holds a given value.
type ShowCondition struct {
	SettingID    string `json:"setting_id" yaml:"setting_id"`
	SettingValue string `json:"setting_value" yaml:"setting_value"`
}

// SettingSelectOption is one choice of a Select setting.
type SettingSelectOption struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// ApplyDefaults fills the platform filters a manifest may leave out.
func (m *ExtensionManifest) ApplyDefaults() {
	if m.OS == "" {
		m.OS = AllOS
	}
	for i := range m.Settings {
		if m.Settings[i].OS == "" {
			m.Settings[i].OS = AllOS
		}
	}
}

// SupportsOS reports whether the manifest's platform filter matches goos.
func (m ExtensionManifest) SupportsOS(goos string) bool {
	return matchesOS(m.OS, goos)
}

// SupportsOS reports whether the setting's platform filter matches goos.
func (s ExtensionManifestSetting) SupportsOS(goos string) bool {
	return matchesOS(s.OS, goos)
}

func matchesOS(filter, goos string) bool {
	return filter == "" || filter == AllOS || filter == goos
}
