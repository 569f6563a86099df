package transport_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/errors"
	"github.com/whiskers-launcher/companion/extension"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/testutil"
	"github.com/whiskers-launcher/companion/transport"
)

type mapLocator map[string]string

func (m mapLocator) ExtensionDir(id string) (string, bool) {
	dir, ok := m[id]
	return dir, ok
}

// inProcessLauncher runs a Go function as the extension, wired to the
// environment the transport hands to real processes.
type inProcessLauncher struct {
	store *state.Store
	run   func(ext *extension.Context)
	exits []int
}

func (l *inProcessLauncher) Launch(ctx context.Context, dir string, env []string) ([]byte, error) {
	vars := map[string]string{}
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var stdout bytes.Buffer
	stdout.WriteString("starting up\n")
	ext := extension.New(
		extension.WithMode(transport.Mode(vars[transport.EnvTransport])),
		extension.WithExchange(state.ExchangeIn(vars[transport.EnvExchangeDir])),
		extension.WithDir(vars[transport.EnvExtensionDir]),
		extension.WithStore(l.store),
		extension.WithStdout(&stdout),
		extension.WithExit(func(code int) { l.exits = append(l.exits, code) }),
	)
	l.run(ext)
	return stdout.Bytes(), nil
}

type fixture struct {
	host     *transport.Host
	launcher *inProcessLauncher
	exchange state.Exchange
	store    *state.Store
}

func newFixture(t *testing.T, mode transport.Mode, run func(ext *extension.Context)) *fixture {
	t.Helper()
	testutil.TempHome(t)

	store := testutil.NewStore(t)
	exchange := state.ExchangeIn(filepath.Join(t.TempDir(), "exchange"))
	launcher := &inProcessLauncher{store: store, run: run}
	tr := transport.New(mode, exchange, launcher)
	manager := settings.NewManager(store, nil)

	return &fixture{
		host:     transport.NewHost(tr, mapLocator{"echo": "/ext/echo"}, manager, exchange),
		launcher: launcher,
		exchange: exchange,
		store:    store,
	}
}

func echoExtension(ext *extension.Context) {
	req := ext.Request()
	ext.SendResults(schema.NewListResults(
		schema.NewSearchResult("Echo: "+req.Text(), schema.NewResultAction(schema.CopyTextAction{Text: req.Text()})).
			WithDescription(ext.Dir()),
	))
}

func TestSearchRoundTrip(t *testing.T) {
	for _, mode := range []transport.Mode{transport.ModeStream, transport.ModeFile} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode, echoExtension)

			resp, err := f.host.Search(context.Background(), "echo", "hello world")
			require.NoError(t, err)
			require.Equal(t, transport.KindResults, resp.Kind)
			require.Len(t, resp.Results.Results, 1)

			result := resp.Results.Results[0]
			assert.Equal(t, "Echo: hello world", result.Title)
			require.NotNil(t, result.Description)
			assert.Equal(t, "/ext/echo", *result.Description)
			assert.Equal(t, schema.CopyTextAction{Text: "hello world"}, result.Action.Action)
			assert.Equal(t, []int{0}, f.launcher.exits)
		})
	}
}

func TestFormCycle(t *testing.T) {
	for _, mode := range []transport.Mode{transport.ModeStream, transport.ModeFile} {
		t.Run(string(mode), func(t *testing.T) {
			var (
				gotArgs   []string
				gotTitle  string
				gotAnswer schema.FormResponse
			)
			f := newFixture(t, mode, func(ext *extension.Context) {
				req := ext.Request()
				switch req.RequestType {
				case schema.GetResults:
					ext.SendForm(schema.NewOpenFormAction("echo", "save",
						schema.NewFormField("title", schema.NewInputField("Title", "Note title").NotEmpty()).WithArgs("title-state"),
						schema.NewFormField("pinned", schema.NewToggleField("Pinned", "", false)),
					).WithArgs("draft", "7"))
				case schema.RunCommand:
					gotArgs = req.Args
					resp := ext.FormResponse()
					gotAnswer = resp
					if r, ok := resp.Result("title"); ok {
						gotTitle = r.FieldValue
					}
				}
			})

			resp, err := f.host.Search(context.Background(), "echo", "")
			require.NoError(t, err)
			require.True(t, resp.IsForm())

			pending, err := f.host.PendingForm()
			require.NoError(t, err)
			assert.Equal(t, resp.Form.Command, pending.Command)
			assert.Equal(t, resp.Form.Args, pending.Args)
			require.Len(t, pending.Fields, 2)
			assert.Equal(t, "title", pending.Fields[0].ID)
			assert.Equal(t, "pinned", pending.Fields[1].ID)

			answers := schema.NewFormResponse(
				schema.NewFormResult("title", "groceries"),
				schema.NewFormResult("pinned", "true"),
			)
			followUp, err := f.host.SubmitForm(context.Background(), pending, answers)
			require.NoError(t, err)
			assert.True(t, followUp.IsEmpty())

			assert.Equal(t, []string{"draft", "7"}, gotArgs)
			assert.Equal(t, "groceries", gotTitle)
			assert.Equal(t, []string{"draft", "7"}, gotAnswer.Args)
			require.Len(t, gotAnswer.Results, 2)
			assert.Equal(t, []string{"title-state"}, gotAnswer.Results[0].Args)
			assert.Empty(t, gotAnswer.Results[1].Args)
		})
	}
}

func TestRunActionEchoesArgs(t *testing.T) {
	var got schema.ExtensionRequest
	f := newFixture(t, transport.ModeStream, func(ext *extension.Context) {
		got = ext.Request()
	})

	action := schema.NewRunExtensionAction("echo", "open", "a", "b")
	resp, err := f.host.RunAction(context.Background(), action)
	require.NoError(t, err)
	assert.True(t, resp.IsEmpty())
	assert.Equal(t, "open", got.CommandName())
	assert.Equal(t, []string{"a", "b"}, got.Args)
}

func TestSearchWithoutResponseFails(t *testing.T) {
	for _, mode := range []transport.Mode{transport.ModeStream, transport.ModeFile} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, mode, func(ext *extension.Context) {})

			_, err := f.host.Search(context.Background(), "echo", "x")
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeExtensionFailed, errors.GetCode(err))
		})
	}
}

func TestFileModeIgnoresStaleResponse(t *testing.T) {
	f := newFixture(t, transport.ModeFile, func(ext *extension.Context) {})

	stale, err := transport.EncodeFile(transport.ResultsResponse(schema.NewListResults()))
	require.NoError(t, err)
	require.NoError(t, state.WriteFileAtomic(f.exchange.ResponsePath, stale, 0644))

	_, err = f.host.Search(context.Background(), "echo", "x")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExtensionFailed, errors.GetCode(err))
}

func TestUnknownExtension(t *testing.T) {
	f := newFixture(t, transport.ModeStream, echoExtension)

	_, err := f.host.Search(context.Background(), "missing", "x")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeExtensionNotFound, errors.GetCode(err))
}

func TestHostExtensionSetting(t *testing.T) {
	f := newFixture(t, transport.ModeStream, echoExtension)

	_, ok := f.host.ExtensionSetting("echo", "keyword")
	assert.False(t, ok)

	manager := settings.NewManager(f.store, nil)
	require.NoError(t, manager.SetExtensionSetting("echo", "keyword", "e"))

	value, ok := f.host.ExtensionSetting("echo", "keyword")
	require.True(t, ok)
	assert.Equal(t, "e", value)
}

func TestSubmitFormKeepsExplicitArgs(t *testing.T) {
	var got schema.FormResponse
	f := newFixture(t, transport.ModeFile, func(ext *extension.Context) {
		got = ext.FormResponse()
	})

	form := schema.NewOpenFormAction("echo", "save",
		schema.NewFormField("title", schema.NewInputField("Title", "")).WithArgs("field-state"),
	).WithArgs("form-state")
	answers := schema.NewFormResponse(
		schema.NewFormResult("title", "x").WithArgs("answer-state"),
	).WithArgs("response-state")

	_, err := f.host.SubmitForm(context.Background(), form, answers)
	require.NoError(t, err)

	assert.Equal(t, []string{"response-state"}, got.Args)
	require.Len(t, got.Results, 1)
	assert.Equal(t, []string{"answer-state"}, got.Results[0].Args)
	assert.Equal(t, []string{"answer-state"}, answers.Results[0].Args)
}
