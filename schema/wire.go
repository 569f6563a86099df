package schema

import (
	"encoding/json"
	"fmt"

	"github.com/ugorji/go/codec"
)

// The two unions travel in a flat shape: a discriminant, then one key per
// payload kind with every non-matching key null. Both the JSON line and the
// MessagePack files use this shape.

type resultActionWire struct {
	ActionType         ActionType          `json:"action_type"`
	Dangerous          bool                `json:"dangerous"`
	CopyTextAction     *CopyTextAction     `json:"copy_text_action"`
	CopyImageAction    *CopyImageAction    `json:"copy_image_action"`
	OpenLinkAction     *OpenLinkAction     `json:"open_link_action"`
	OpenAppAction      *OpenAppAction      `json:"open_app_action"`
	OpenFormAction     *OpenFormAction     `json:"open_form_action"`
	RunExtensionAction *RunExtensionAction `json:"run_extension_action"`
}

func (a ResultAction) toWire() resultActionWire {
	w := resultActionWire{ActionType: a.Type(), Dangerous: a.Dangerous}
	switch v := a.Action.(type) {
	case CopyTextAction:
		w.CopyTextAction = &v
	case CopyImageAction:
		w.CopyImageAction = &v
	case OpenLinkAction:
		w.OpenLinkAction = &v
	case OpenAppAction:
		w.OpenAppAction = &v
	case OpenFormAction:
		w.OpenFormAction = &v
	case RunExtensionAction:
		w.RunExtensionAction = &v
	}
	return w
}

func (w resultActionWire) payloads() int {
	n := 0
	for _, set := range []bool{
		w.CopyTextAction != nil,
		w.CopyImageAction != nil,
		w.OpenLinkAction != nil,
		w.OpenAppAction != nil,
		w.OpenFormAction != nil,
		w.RunExtensionAction != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (w resultActionWire) toAction() (ResultAction, error) {
	var action Action
	switch w.ActionType {
	case ActionCopyText:
		if w.CopyTextAction != nil {
			action = *w.CopyTextAction
		}
	case ActionCopyImage:
		if w.CopyImageAction != nil {
			action = *w.CopyImageAction
		}
	case ActionOpenLink:
		if w.OpenLinkAction != nil {
			action = *w.OpenLinkAction
		}
	case ActionOpenApp:
		if w.OpenAppAction != nil {
			action = *w.OpenAppAction
		}
	case ActionOpenForm:
		if w.OpenFormAction != nil {
			action = *w.OpenFormAction
		}
	case ActionRunExtension:
		if w.RunExtensionAction != nil {
			action = *w.RunExtensionAction
		}
	case ActionDoNothing:
		if w.payloads() != 0 {
			return ResultAction{}, fmt.Errorf("action_type %s must not carry a payload", w.ActionType)
		}
		return ResultAction{Dangerous: w.Dangerous, Action: DoNothingAction{}}, nil
	default:
		return ResultAction{}, fmt.Errorf("unknown action_type %q", w.ActionType)
	}

	if action == nil {
		return ResultAction{}, fmt.Errorf("action_type %s has no matching payload", w.ActionType)
	}
	if w.payloads() != 1 {
		return ResultAction{}, fmt.Errorf("action_type %s carries more than one payload", w.ActionType)
	}
	return ResultAction{Dangerous: w.Dangerous, Action: action}, nil
}

// MarshalJSON implements json.Marshaler.
func (a ResultAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toWire())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *ResultAction) UnmarshalJSON(data []byte) error {
	var w resultActionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toAction()
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// CodecEncodeSelf implements codec.Selfer.
func (a *ResultAction) CodecEncodeSelf(e *codec.Encoder) {
	e.MustEncode(a.toWire())
}

// CodecDecodeSelf implements codec.Selfer.
func (a *ResultAction) CodecDecodeSelf(d *codec.Decoder) {
	var w resultActionWire
	d.MustDecode(&w)
	decoded, err := w.toAction()
	if err != nil {
		panic(err)
	}
	*a = decoded
}

type formFieldWire struct {
	ID                string             `json:"id"`
	FieldType         FieldType          `json:"field_type"`
	Args              []string           `json:"args"`
	InputField        *InputField        `json:"input_field"`
	TextAreaField     *TextAreaField     `json:"text_area_field"`
	ToggleField       *ToggleField       `json:"toggle_field"`
	SelectField       *SelectField       `json:"select_field"`
	FilePickerField   *FilePickerField   `json:"file_picker_field"`
	FolderPickerField *FolderPickerField `json:"folder_picker_field"`
}

func (f FormField) toWire() (formFieldWire, error) {
	args := f.Args
	if args == nil {
		args = []string{}
	}
	w := formFieldWire{ID: f.ID, FieldType: f.Type(), Args: args}
	switch v := f.Field.(type) {
	case InputField:
		w.InputField = &v
	case TextAreaField:
		w.TextAreaField = &v
	case ToggleField:
		w.ToggleField = &v
	case SelectField:
		w.SelectField = &v
	case FilePickerField:
		w.FilePickerField = &v
	case FolderPickerField:
		w.FolderPickerField = &v
	default:
		return formFieldWire{}, fmt.Errorf("form field %q has no payload", f.ID)
	}
	return w, nil
}

func (w formFieldWire) payloads() int {
	n := 0
	for _, set := range []bool{
		w.InputField != nil,
		w.TextAreaField != nil,
		w.ToggleField != nil,
		w.SelectField != nil,
		w.FilePickerField != nil,
		w.FolderPickerField != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func (w formFieldWire) toField() (FormField, error) {
	var field Field
	switch w.FieldType {
	case FieldInput:
		if w.InputField != nil {
			field = *w.InputField
		}
	case FieldTextArea:
		if w.TextAreaField != nil {
			field = *w.TextAreaField
		}
	case FieldToggle:
		if w.ToggleField != nil {
			field = *w.ToggleField
		}
	case FieldSelect:
		if w.SelectField != nil {
			field = *w.SelectField
		}
	case FieldFilePicker:
		if w.FilePickerField != nil {
			field = *w.FilePickerField
		}
	case FieldFolderPicker:
		if w.FolderPickerField != nil {
			field = *w.FolderPickerField
		}
	default:
		return FormField{}, fmt.Errorf("form field %q: unknown field_type %q", w.ID, w.FieldType)
	}

	if field == nil {
		return FormField{}, fmt.Errorf("form field %q: field_type %s has no matching payload", w.ID, w.FieldType)
	}
	if w.payloads() != 1 {
		return FormField{}, fmt.Errorf("form field %q: field_type %s carries more than one payload", w.ID, w.FieldType)
	}
	return FormField{ID: w.ID, Args: w.Args, Field: field}, nil
}

// MarshalJSON implements json.Marshaler.
func (f FormField) MarshalJSON() ([]byte, error) {
	w, err := f.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FormField) UnmarshalJSON(data []byte) error {
	var w formFieldWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toField()
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// CodecEncodeSelf implements codec.Selfer.
func (f *FormField) CodecEncodeSelf(e *codec.Encoder) {
	w, err := f.toWire()
	if err != nil {
		panic(err)
	}
	e.MustEncode(w)
}

// CodecDecodeSelf implements codec.Selfer.
func (f *FormField) CodecDecodeSelf(d *codec.Decoder) {
	var w formFieldWire
	d.MustDecode(&w)
	decoded, err := w.toField()
	if err != nil {
		panic(err)
	}
	*f = decoded
}
