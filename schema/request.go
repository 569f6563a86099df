package schema

// RequestType selects which shape of ExtensionRequest is meaningful.
type RequestType string

const (
	GetResults RequestType = "GetResults"
	RunCommand RequestType = "RunCommand"
)

// ExtensionRequest is sent by the host to an extension process. SearchText is
// set for GetResults, Command for RunCommand. Args is a carry-bag echoed
// from the action or form that triggered the request.
type ExtensionRequest struct {
	ExtensionID string      `json:"extension_id"`
	RequestType RequestType `json:"request_type"`
	SearchText  *string     `json:"search_text"`
	Command     *string     `json:"command"`
	Args        []string    `json:"args"`
}

// NewGetResultsRequest builds a request asking an extension for results.
func NewGetResultsRequest(extensionID, searchText string) ExtensionRequest {
	return ExtensionRequest{
		ExtensionID: extensionID,
		RequestType: GetResults,
		SearchText:  &searchText,
		Args:        []string{},
	}
}

// NewRunCommandRequest builds a request running a named extension command.
func NewRunCommandRequest(extensionID, command string) ExtensionRequest {
	return ExtensionRequest{
		ExtensionID: extensionID,
		RequestType: RunCommand,
		Command:     &command,
		Args:        []string{},
	}
}

// WithArg returns a copy of the request with arg appended.
func (r ExtensionRequest) WithArg(arg string) ExtensionRequest {
	r.Args = append(append([]string{}, r.Args...), arg)
	return r
}

// WithArgs returns a copy of the request with its args replaced.
func (r ExtensionRequest) WithArgs(args []string) ExtensionRequest {
	r.Args = append([]string{}, args...)
	return r
}

// Text returns the search text, or "" for RunCommand requests.
func (r ExtensionRequest) Text() string {
	if r.SearchText == nil {
		return ""
	}
	return *r.SearchText
}

// CommandName returns the command, or "" for GetResults requests.
func (r ExtensionRequest) CommandName() string {
	if r.Command == nil {
		return ""
	}
	return *r.Command
}
