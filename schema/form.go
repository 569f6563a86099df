package schema

// Defaults applied by NewOpenFormAction.
const (
	DefaultFormTitle      = "Extension Form"
	DefaultFormActionText = "Ok"
)

// OpenFormAction asks the host to render a form. Fields are kept in display
// order. On submit the host sends Command back to ExtensionID with Args.
type OpenFormAction struct {
	ExtensionID string      `json:"extension_id"`
	Command     string      `json:"command"`
	Title       string      `json:"title"`
	Fields      []FormField `json:"fields"`
	Args        []string    `json:"args"`
	ActionText  string      `json:"action_text"`
}

// NewOpenFormAction creates a form with the default title and action text.
func NewOpenFormAction(extensionID, command string, fields ...FormField) OpenFormAction {
	if fields == nil {
		fields = []FormField{}
	}
	return OpenFormAction{
		ExtensionID: extensionID,
		Command:     command,
		Title:       DefaultFormTitle,
		Fields:      fields,
		Args:        []string{},
		ActionText:  DefaultFormActionText,
	}
}

func (f OpenFormAction) WithTitle(title string) OpenFormAction {
	f.Title = title
	return f
}

func (f OpenFormAction) WithActionText(text string) OpenFormAction {
	f.ActionText = text
	return f
}

func (f OpenFormAction) WithArgs(args ...string) OpenFormAction {
	f.Args = append([]string{}, args...)
	return f
}

// FieldType discriminates the FormField union.
type FieldType string

const (
	FieldInput        FieldType = "Input"
	FieldTextArea     FieldType = "TextArea"
	FieldToggle       FieldType = "Toggle"
	FieldSelect       FieldType = "Select"
	FieldFilePicker   FieldType = "FilePicker"
	FieldFolderPicker FieldType = "FolderPicker"
)

// Field is the payload of a FormField. It is implemented only by the field
// types of this package.
type Field interface {
	FieldType() FieldType
	isField()
}

// FormField is one control of a form. Args survives the form round trip and
// is returned in the matching FormResult.
type FormField struct {
	ID    string
	Args  []string
	Field Field
}

// NewFormField wraps a payload as a field with empty args.
func NewFormField(id string, field Field) FormField {
	return FormField{ID: id, Args: []string{}, Field: field}
}

func (f FormField) WithArgs(args ...string) FormField {
	f.Args = append([]string{}, args...)
	return f
}

// Type returns the discriminant of the payload.
func (f FormField) Type() FieldType {
	if f.Field == nil {
		return ""
	}
	return f.Field.FieldType()
}

// FormValidation is a client-side check the host runs before submitting.
type FormValidation string

const (
	IsNumber   FormValidation = "IsNumber"
	IsNotEmpty FormValidation = "IsNotEmpty"
)

type InputField struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Text        string           `json:"text"`
	Placeholder string           `json:"placeholder"`
	Validation  []FormValidation `json:"validation"`
}

func NewInputField(title, description string) InputField {
	return InputField{Title: title, Description: description}
}

func (f InputField) WithText(text string) InputField {
	f.Text = text
	return f
}

func (f InputField) WithPlaceholder(placeholder string) InputField {
	f.Placeholder = placeholder
	return f
}

// NotEmpty adds the IsNotEmpty check, keeping any existing checks.
func (f InputField) NotEmpty() InputField {
	return f.withValidation(IsNotEmpty)
}

// Numeric adds the IsNumber check, keeping any existing checks.
func (f InputField) Numeric() InputField {
	return f.withValidation(IsNumber)
}

func (f InputField) withValidation(v FormValidation) InputField {
	for _, existing := range f.Validation {
		if existing == v {
			return f
		}
	}
	f.Validation = append(append([]FormValidation{}, f.Validation...), v)
	return f
}

type TextAreaField struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Text        string          `json:"text"`
	Placeholder string          `json:"placeholder"`
	Validation  *FormValidation `json:"validation"`
}

func NewTextAreaField(title, description string) TextAreaField {
	return TextAreaField{Title: title, Description: description}
}

func (f TextAreaField) WithText(text string) TextAreaField {
	f.Text = text
	return f
}

func (f TextAreaField) WithPlaceholder(placeholder string) TextAreaField {
	f.Placeholder = placeholder
	return f
}

func (f TextAreaField) NotEmpty() TextAreaField {
	v := IsNotEmpty
	f.Validation = &v
	return f
}

type ToggleField struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Toggled     bool   `json:"toggled"`
}

func NewToggleField(title, description string, toggled bool) ToggleField {
	return ToggleField{Title: title, Description: description, Toggled: toggled}
}

type SelectField struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	SelectedOptionID string         `json:"selected_option_id"`
	Options          []SelectOption `json:"options"`
}

type SelectOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func NewSelectField(title, description, selectedOptionID string, options ...SelectOption) SelectField {
	if options == nil {
		options = []SelectOption{}
	}
	return SelectField{Title: title, Description: description, SelectedOptionID: selectedOptionID, Options: options}
}

// ImageFileTypes are the extensions accepted by FilePickerField.Images.
var ImageFileTypes = []string{"png", "webp", "jpg", "jpeg"}

type FilePickerField struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	FilePath    *string         `json:"file_path"`
	FileTypes   []string        `json:"file_types"`
	Validation  *FormValidation `json:"validation"`
}

func NewFilePickerField(title, description string) FilePickerField {
	return FilePickerField{Title: title, Description: description}
}

func (f FilePickerField) WithFilePath(path string) FilePickerField {
	f.FilePath = &path
	return f
}

func (f FilePickerField) WithFileTypes(types ...string) FilePickerField {
	f.FileTypes = append([]string{}, types...)
	return f
}

// Images restricts the picker to common image formats.
func (f FilePickerField) Images() FilePickerField {
	return f.WithFileTypes(ImageFileTypes...)
}

func (f FilePickerField) NotEmpty() FilePickerField {
	v := IsNotEmpty
	f.Validation = &v
	return f
}

type FolderPickerField struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	FolderPath  *string         `json:"folder_path"`
	Validation  *FormValidation `json:"validation"`
}

func NewFolderPickerField(title, description string) FolderPickerField {
	return FolderPickerField{Title: title, Description: description}
}

func (f FolderPickerField) WithFolderPath(path string) FolderPickerField {
	f.FolderPath = &path
	return f
}

func (f FolderPickerField) NotEmpty() FolderPickerField {
	v := IsNotEmpty
	f.Validation = &v
	return f
}

func (InputField) FieldType() FieldType        { return FieldInput }
func (TextAreaField) FieldType() FieldType     { return FieldTextArea }
func (ToggleField) FieldType() FieldType       { return FieldToggle }
func (SelectField) FieldType() FieldType       { return FieldSelect }
func (FilePickerField) FieldType() FieldType   { return FieldFilePicker }
func (FolderPickerField) FieldType() FieldType { return FieldFolderPicker }

func (InputField) isField()        {}
func (TextAreaField) isField()     {}
func (ToggleField) isField()       {}
func (SelectField) isField()       {}
func (FilePickerField) isField()   {}
func (FolderPickerField) isField() {}

// FormResponse is what the host returns to an extension after a form is
// submitted. Results are not guaranteed to follow the field order.
type FormResponse struct {
	Results []FormResult `json:"results"`
	Args    []string     `json:"args"`
}

// NewFormResponse creates a response with empty args.
func NewFormResponse(results ...FormResult) FormResponse {
	if results == nil {
		results = []FormResult{}
	}
	return FormResponse{Results: results, Args: []string{}}
}

func (r FormResponse) WithArgs(args ...string) FormResponse {
	r.Args = append([]string{}, args...)
	return r
}

// Result returns the submitted value of a field.
func (r FormResponse) Result(fieldID string) (FormResult, bool) {
	for _, result := range r.Results {
		if result.FieldID == fieldID {
			return result, true
		}
	}
	return FormResult{}, false
}

// FormResult is the submitted value of one field, always as a string.
type FormResult struct {
	FieldID    string   `json:"field_id"`
	FieldValue string   `json:"field_value"`
	Args       []string `json:"args"`
}

func NewFormResult(fieldID, value string) FormResult {
	return FormResult{FieldID: fieldID, FieldValue: value, Args: []string{}}
}

func (r FormResult) WithArgs(args ...string) FormResult {
	r.Args = append([]string{}, args...)
	return r
}

// Bool reports whether the value is the literal "true".
func (r FormResult) Bool() bool {
	return r.FieldValue == "true"
}
