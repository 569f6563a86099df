package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/schema"
)

func TestStreamLineDetectsPayload(t *testing.T) {
	results := schema.NewListResults(
		schema.NewSearchResult("Copy", schema.NewResultAction(schema.CopyTextAction{Text: "hi"})).WithAccentIconTint(),
		schema.NewSearchResult("Delete", schema.NewResultAction(schema.NewRunExtensionAction("notes", "delete", "42")).AsDangerous()),
	)
	line, err := EncodeStreamLine(ResultsResponse(results))
	require.NoError(t, err)

	decoded, err := DecodeStreamLine(line)
	require.NoError(t, err)
	assert.Equal(t, KindResults, decoded.Kind)
	require.NotNil(t, decoded.Results)
	assert.Equal(t, results, *decoded.Results)

	form := schema.NewOpenFormAction("notes", "create",
		schema.NewFormField("title", schema.NewInputField("Title", "Note title").NotEmpty()),
		schema.NewFormField("pinned", schema.NewToggleField("Pinned", "Keep on top", false)),
	).WithArgs("draft")
	line, err = EncodeStreamLine(FormResponse(form))
	require.NoError(t, err)

	decoded, err = DecodeStreamLine(line)
	require.NoError(t, err)
	assert.True(t, decoded.IsForm())
	require.NotNil(t, decoded.Form)
	assert.Equal(t, form, *decoded.Form)
}

func TestDecodeStreamLineRejectsUnknownShapes(t *testing.T) {
	for _, input := range []string{
		"",
		"not json",
		`{"title": "x"}`,
		`{"view_type": "List", "fields": []}`,
		`{"view_type": "List", "results": [{"title": "x", "action": {"action_type": "CopyText"}}]}`,
	} {
		_, err := DecodeStreamLine([]byte(input))
		require.Error(t, err, input)
		assert.Equal(t, errors.ErrCodeProtocolDecode, errors.GetCode(err), input)
	}
}

func TestFileEnvelope(t *testing.T) {
	results := schema.NewGridResults(
		schema.NewSearchResult("Firefox", schema.NewResultAction(schema.OpenAppAction{AppID: "abc"})).WithIcon("/icons/firefox.png"),
	)
	data, err := EncodeFile(ResultsResponse(results))
	require.NoError(t, err)

	decoded, err := DecodeFile(data)
	require.NoError(t, err)
	require.NotNil(t, decoded.Results)
	assert.Equal(t, results, *decoded.Results)
	assert.Nil(t, decoded.Form)

	_, err = DecodeFile([]byte{0xc1})
	assert.Equal(t, errors.ErrCodeProtocolDecode, errors.GetCode(err))
}

func TestResponseValidate(t *testing.T) {
	results := schema.NewListResults()
	form := schema.NewOpenFormAction("x", "y")

	assert.NoError(t, Response{}.Validate())
	assert.Error(t, Response{Kind: KindResults}.Validate())
	assert.Error(t, Response{Kind: KindResults, Results: &results, Form: &form}.Validate())
	assert.Error(t, Response{Kind: "other"}.Validate())

	_, err := EncodeStreamLine(Response{})
	assert.Error(t, err)
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		configured string
		goos       string
		want       Mode
	}{
		{"auto", "linux", ModeStream},
		{"auto", "windows", ModeFile},
		{"", "darwin", ModeStream},
		{"stream", "windows", ModeStream},
		{"file", "linux", ModeFile},
	}

	for _, tt := range tests {
		t.Run(tt.configured+"/"+tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMode(tt.configured, tt.goos))
		})
	}
}
