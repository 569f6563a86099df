package schema

// ViewType selects how the host lays out a result list.
type ViewType string

const (
	ViewGrid ViewType = "Grid"
	ViewList ViewType = "List"
)

// AccentTint is the icon tint asking the host to use the theme accent color.
const AccentTint = "accent"

// SearchResults is the payload an extension returns for a query.
type SearchResults struct {
	ViewType ViewType       `json:"view_type"`
	Results  []SearchResult `json:"results"`
}

// NewGridResults lays results out as a grid.
func NewGridResults(results ...SearchResult) SearchResults {
	return SearchResults{ViewType: ViewGrid, Results: nonNilResults(results)}
}

// NewListResults lays results out as a list.
func NewListResults(results ...SearchResult) SearchResults {
	return SearchResults{ViewType: ViewList, Results: nonNilResults(results)}
}

func nonNilResults(results []SearchResult) []SearchResult {
	if results == nil {
		return []SearchResult{}
	}
	return results
}

// SearchResult is one selectable entry.
type SearchResult struct {
	Icon        *string      `json:"icon"`
	IconTint    *string      `json:"icon_tint"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Action      ResultAction `json:"action"`
}

// NewSearchResult creates a result with only a title and an action.
func NewSearchResult(title string, action ResultAction) SearchResult {
	return SearchResult{Title: title, Action: action}
}

func (r SearchResult) WithIcon(path string) SearchResult {
	r.Icon = &path
	return r
}

func (r SearchResult) WithIconTint(tint string) SearchResult {
	r.IconTint = &tint
	return r
}

// WithAccentIconTint tints the icon with the theme accent color.
func (r SearchResult) WithAccentIconTint() SearchResult {
	return r.WithIconTint(AccentTint)
}

func (r SearchResult) WithDescription(description string) SearchResult {
	r.Description = &description
	return r
}

// ActionType discriminates the ResultAction union.
type ActionType string

const (
	ActionCopyText     ActionType = "CopyText"
	ActionCopyImage    ActionType = "CopyImage"
	ActionOpenLink     ActionType = "OpenLink"
	ActionOpenApp      ActionType = "OpenApp"
	ActionOpenForm     ActionType = "OpenForm"
	ActionRunExtension ActionType = "RunExtension"
	ActionDoNothing    ActionType = "DoNothing"
)

// Action is the payload of a ResultAction. It is implemented only by the
// action types of this package.
type Action interface {
	ActionType() ActionType
	isAction()
}

// ResultAction is what happens when a result is selected. The discriminant
// is derived from the payload type, so a value always carries exactly one
// payload. Dangerous actions must be confirmed by the host before running.
type ResultAction struct {
	Dangerous bool
	Action    Action
}

// NewResultAction wraps a payload as a non-dangerous action.
func NewResultAction(action Action) ResultAction {
	if action == nil {
		action = DoNothingAction{}
	}
	return ResultAction{Action: action}
}

// AsDangerous returns a copy of the action flagged for confirmation.
func (a ResultAction) AsDangerous() ResultAction {
	a.Dangerous = true
	return a
}

// Type returns the discriminant, DoNothing for an empty action.
func (a ResultAction) Type() ActionType {
	if a.Action == nil {
		return ActionDoNothing
	}
	return a.Action.ActionType()
}

type CopyTextAction struct {
	Text string `json:"text"`
}

type CopyImageAction struct {
	ImagePath string `json:"image_path"`
}

type OpenLinkAction struct {
	Link string `json:"link"`
}

type OpenAppAction struct {
	AppID string `json:"app_id"`
}

// RunExtensionAction re-invokes an extension with a RunCommand request
// carrying Command and Args.
type RunExtensionAction struct {
	ExtensionID string   `json:"extension_id"`
	Command     string   `json:"command"`
	Args        []string `json:"args"`
}

// NewRunExtensionAction creates a RunExtensionAction with empty args.
func NewRunExtensionAction(extensionID, command string, args ...string) RunExtensionAction {
	if args == nil {
		args = []string{}
	}
	return RunExtensionAction{ExtensionID: extensionID, Command: command, Args: args}
}

// DoNothingAction carries no payload.
type DoNothingAction struct{}

func (CopyTextAction) ActionType() ActionType     { return ActionCopyText }
func (CopyImageAction) ActionType() ActionType    { return ActionCopyImage }
func (OpenLinkAction) ActionType() ActionType     { return ActionOpenLink }
func (OpenAppAction) ActionType() ActionType      { return ActionOpenApp }
func (OpenFormAction) ActionType() ActionType     { return ActionOpenForm }
func (RunExtensionAction) ActionType() ActionType { return ActionRunExtension }
func (DoNothingAction) ActionType() ActionType    { return ActionDoNothing }

func (CopyTextAction) isAction()     {}
func (CopyImageAction) isAction()    {}
func (OpenLinkAction) isAction()     {}
func (OpenAppAction) isAction()      {}
func (OpenFormAction) isAction()     {}
func (RunExtensionAction) isAction() {}
func (DoNothingAction) isAction()    {}
