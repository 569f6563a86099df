package transport

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
)

// Locator finds the directory of an installed extension.
type Locator interface {
	ExtensionDir(id string) (string, bool)
}

// SettingsSource supplies the current launcher settings.
type SettingsSource interface {
	Load() schema.Settings
}

// Host drives request/response cycles with extensions on behalf of the
// launcher UI.
type Host struct {
	transport Transport
	locator   Locator
	settings  SettingsSource
	exchange  state.Exchange
	logger    *logrus.Entry
}

// NewHost creates a host. src may be nil when extension settings are not
// needed.
func NewHost(t Transport, locator Locator, src SettingsSource, exchange state.Exchange) *Host {
	return &Host{
		transport: t,
		locator:   locator,
		settings:  src,
		exchange:  exchange,
		logger:    logging.NewLogger("host"),
	}
}

// Search asks the extension for results matching text. When the extension
// answers with a form, the form request is stored for the form UI.
func (h *Host) Search(ctx context.Context, extensionID, text string) (Response, error) {
	return h.send(ctx, schema.NewGetResultsRequest(extensionID, text))
}

// RunCommand asks the extension to run a command. args are passed through
// untouched.
func (h *Host) RunCommand(ctx context.Context, extensionID, command string, args []string) (Response, error) {
	return h.send(ctx, schema.NewRunCommandRequest(extensionID, command).WithArgs(args))
}

// RunAction performs a result's RunExtension action.
func (h *Host) RunAction(ctx context.Context, action schema.RunExtensionAction) (Response, error) {
	return h.RunCommand(ctx, action.ExtensionID, action.Command, action.Args)
}

// OpenForm stores a form request so the form UI can display it.
func (h *Host) OpenForm(form schema.OpenFormAction) error {
	return h.exchange.WriteFormRequest(form)
}

// PendingForm returns the last stored form request.
func (h *Host) PendingForm() (schema.OpenFormAction, error) {
	return h.exchange.ReadFormRequest()
}

// SubmitForm stores the user's answers and runs the form's command with the
// form's args. Answers without args carry the args of their field, and a
// response without args carries the form's. The extension reads the answers
// with its FormResponse call.
func (h *Host) SubmitForm(ctx context.Context, form schema.OpenFormAction, resp schema.FormResponse) (Response, error) {
	resp = echoFormArgs(form, resp)
	if err := h.exchange.WriteFormResponse(resp); err != nil {
		return Response{}, err
	}
	return h.RunCommand(ctx, form.ExtensionID, form.Command, form.Args)
}

func echoFormArgs(form schema.OpenFormAction, resp schema.FormResponse) schema.FormResponse {
	if len(resp.Args) == 0 {
		resp.Args = append([]string{}, form.Args...)
	}

	fieldArgs := make(map[string][]string, len(form.Fields))
	for _, field := range form.Fields {
		if _, seen := fieldArgs[field.ID]; !seen {
			fieldArgs[field.ID] = field.Args
		}
	}

	results := make([]schema.FormResult, len(resp.Results))
	for i, result := range resp.Results {
		if len(result.Args) == 0 {
			result.Args = append([]string{}, fieldArgs[result.FieldID]...)
		}
		results[i] = result
	}
	resp.Results = results
	return resp
}

// ExtensionSetting returns the value of an extension setting from the
// current settings.
func (h *Host) ExtensionSetting(extensionID, settingID string) (string, bool) {
	if h.settings == nil {
		return "", false
	}
	return ExtensionSetting(h.settings.Load(), extensionID, settingID)
}

// ExtensionSetting returns the first row of s matching the key pair.
func ExtensionSetting(s schema.Settings, extensionID, settingID string) (string, bool) {
	return settings.Lookup(s, extensionID, settingID)
}

func (h *Host) send(ctx context.Context, req schema.ExtensionRequest) (Response, error) {
	dir, ok := h.locator.ExtensionDir(req.ExtensionID)
	if !ok {
		return Response{}, errors.ExtensionNotFound(req.ExtensionID)
	}

	resp, err := h.transport.Exchange(ctx, dir, req)
	if err != nil {
		h.logger.WithError(err).WithField("extension", req.ExtensionID).Warn("Extension request failed")
		return Response{}, err
	}

	if resp.IsForm() {
		if err := h.OpenForm(*resp.Form); err != nil {
			return Response{}, err
		}
	}

	h.logger.WithFields(logrus.Fields{
		"extension": req.ExtensionID,
		"type":      req.RequestType,
		"kind":      resp.Kind,
	}).Debug("Extension responded")
	return resp, nil
}
