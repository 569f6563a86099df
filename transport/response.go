package transport

import (
	"encoding/json"
	"fmt"

	"github.com/whiskers-launcher/companion/codec"
	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
)

// ResponseKind tells which payload a Response carries.
type ResponseKind string

const (
	KindNone    ResponseKind = ""
	KindResults ResponseKind = "results"
	KindForm    ResponseKind = "form"
)

// Response is the reply of an extension: either search results to display or
// a form to open. Exactly one of Results and Form is set, except for the
// empty response of a command that printed nothing.
type Response struct {
	Kind    ResponseKind           `json:"kind"`
	Results *schema.SearchResults  `json:"results"`
	Form    *schema.OpenFormAction `json:"form"`
}

// ResultsResponse wraps search results.
func ResultsResponse(results schema.SearchResults) Response {
	return Response{Kind: KindResults, Results: &results}
}

// FormResponse wraps a form request.
func FormResponse(form schema.OpenFormAction) Response {
	return Response{Kind: KindForm, Form: &form}
}

// IsForm reports whether the extension asked the host to open a form.
func (r Response) IsForm() bool {
	return r.Kind == KindForm
}

// IsEmpty reports whether the extension replied with nothing.
func (r Response) IsEmpty() bool {
	return r.Kind == KindNone
}

// Validate checks that the kind matches the payload.
func (r Response) Validate() error {
	switch r.Kind {
	case KindNone:
		if r.Results != nil || r.Form != nil {
			return fmt.Errorf("empty response must not carry a payload")
		}
	case KindResults:
		if r.Results == nil || r.Form != nil {
			return fmt.Errorf("results response must carry only results")
		}
	case KindForm:
		if r.Form == nil || r.Results != nil {
			return fmt.Errorf("form response must carry only a form")
		}
	default:
		return fmt.Errorf("unknown response kind %q", r.Kind)
	}
	return nil
}

// EncodeStreamLine renders the payload as the single JSON line an extension
// prints on stdout. The bare payload is written, not the envelope.
func EncodeStreamLine(r Response) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, errors.ProtocolEncode("response", err)
	}
	if r.IsEmpty() {
		return nil, errors.ProtocolEncode("response", fmt.Errorf("nothing to send"))
	}
	var payload interface{} = r.Results
	if r.IsForm() {
		payload = r.Form
	}
	line, err := codec.EncodeLine(payload)
	if err != nil {
		return nil, errors.ProtocolEncode("response", err)
	}
	return line, nil
}

// DecodeStreamLine parses a stdout line, telling results from forms by their
// distinguishing keys.
func DecodeStreamLine(line []byte) (Response, error) {
	var keys map[string]json.RawMessage
	if err := codec.DecodeLine(line, &keys); err != nil {
		return Response{}, errors.ProtocolDecode("response", err)
	}

	_, hasView := keys["view_type"]
	_, hasFields := keys["fields"]
	switch {
	case hasView && !hasFields:
		var results schema.SearchResults
		if err := codec.DecodeLine(line, &results); err != nil {
			return Response{}, errors.ProtocolDecode("search results", err)
		}
		if results.Results == nil {
			results.Results = []schema.SearchResult{}
		}
		return ResultsResponse(results), nil
	case hasFields && !hasView:
		var form schema.OpenFormAction
		if err := codec.DecodeLine(line, &form); err != nil {
			return Response{}, errors.ProtocolDecode("form", err)
		}
		return FormResponse(form), nil
	default:
		return Response{}, errors.ProtocolDecode("response", fmt.Errorf("neither search results nor a form"))
	}
}

// EncodeFile renders the binary envelope written to the response file.
func EncodeFile(r Response) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, errors.ProtocolEncode("response", err)
	}
	data, err := codec.EncodeBinary(r)
	if err != nil {
		return nil, errors.ProtocolEncode("response", err)
	}
	return data, nil
}

// DecodeFile parses the binary envelope read from the response file.
func DecodeFile(data []byte) (Response, error) {
	var r Response
	if err := codec.DecodeBinary(data, &r); err != nil {
		return Response{}, errors.ProtocolDecode("response", err)
	}
	if err := r.Validate(); err != nil {
		return Response{}, errors.ProtocolDecode("response", err)
	}
	if r.Results != nil && r.Results.Results == nil {
		r.Results.Results = []schema.SearchResult{}
	}
	return r, nil
}
