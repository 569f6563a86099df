package extension

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/testutil"
	"github.com/whiskers-launcher/companion/transport"
)

type harness struct {
	ctx      *Context
	stdout   *bytes.Buffer
	exits    []int
	exchange state.Exchange
	store    *state.Store
}

func newHarness(t *testing.T, mode transport.Mode) *harness {
	t.Helper()
	testutil.TempHome(t)

	h := &harness{
		stdout:   &bytes.Buffer{},
		exchange: state.ExchangeIn(t.TempDir()),
		store:    testutil.NewStore(t),
	}
	h.ctx = New(
		WithMode(mode),
		WithExchange(h.exchange),
		WithStore(h.store),
		WithDir("/ext/calc"),
		WithStdout(h.stdout),
		WithExit(func(code int) { h.exits = append(h.exits, code) }),
	)
	return h
}

func TestStreamSendResults(t *testing.T) {
	h := newHarness(t, transport.ModeStream)

	results := schema.NewListResults(schema.NewSearchResult("4", schema.NewResultAction(schema.CopyTextAction{Text: "4"})))
	h.ctx.SendResults(results)

	assert.Equal(t, []int{0}, h.exits)
	assert.Equal(t, 1, bytes.Count(h.stdout.Bytes(), []byte("\n")))

	resp, err := transport.DecodeStreamLine(h.stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, results, *resp.Results)
}

func TestFileSendForm(t *testing.T) {
	h := newHarness(t, transport.ModeFile)

	form := schema.NewOpenFormAction("calc", "convert",
		schema.NewFormField("amount", schema.NewInputField("Amount", "").Numeric()),
	)
	h.ctx.SendForm(form)

	assert.Equal(t, []int{0}, h.exits)
	assert.Zero(t, h.stdout.Len())

	data, err := os.ReadFile(h.exchange.ResponsePath)
	require.NoError(t, err)
	resp, err := transport.DecodeFile(data)
	require.NoError(t, err)
	require.True(t, resp.IsForm())
	assert.Equal(t, "convert", resp.Form.Command)
	assert.Equal(t, schema.FieldInput, resp.Form.Fields[0].Type())
}

func TestRequest(t *testing.T) {
	h := newHarness(t, transport.ModeStream)

	require.NoError(t, h.exchange.WriteRequest(schema.NewGetResultsRequest("calc", "2+2")))
	req := h.ctx.Request()
	assert.Equal(t, "2+2", req.Text())
	assert.Empty(t, h.exits)
}

func TestMissingRequestExitsNonZero(t *testing.T) {
	h := newHarness(t, transport.ModeStream)

	h.ctx.Request()
	assert.Equal(t, []int{1}, h.exits)
}

func TestMalformedFormResponseExitsNonZero(t *testing.T) {
	h := newHarness(t, transport.ModeStream)

	require.NoError(t, os.MkdirAll(filepath.Dir(h.exchange.FormResponsePath), 0755))
	require.NoError(t, os.WriteFile(h.exchange.FormResponsePath, []byte{0xc1, 0x00}, 0644))

	h.ctx.FormResponse()
	assert.Equal(t, []int{1}, h.exits)
}

func TestSettings(t *testing.T) {
	h := newHarness(t, transport.ModeStream)

	manager := settings.NewManager(h.store, nil)
	require.NoError(t, manager.SetExtensionSetting("calc", "precision", "4"))
	require.NoError(t, manager.SetExtensionSetting("calc", "degrees", "true"))

	value, ok := h.ctx.Setting("calc", "precision")
	require.True(t, ok)
	assert.Equal(t, "4", value)

	_, ok = h.ctx.Setting("calc", "missing")
	assert.False(t, ok)

	var cfg struct {
		Precision int  `setting:"precision"`
		Degrees   bool `setting:"degrees"`
	}
	require.NoError(t, h.ctx.DecodeSettings("calc", &cfg))
	assert.Equal(t, 4, cfg.Precision)
	assert.True(t, cfg.Degrees)

	assert.Equal(t, "/ext/calc", h.ctx.Dir())
}

func TestNewReadsHostEnvironment(t *testing.T) {
	testutil.TempHome(t)
	exchangeDir := t.TempDir()
	t.Setenv(transport.EnvTransport, "file")
	t.Setenv(transport.EnvExchangeDir, exchangeDir)
	t.Setenv(transport.EnvExtensionDir, "/ext/notes")

	ctx := New()
	assert.Equal(t, transport.ModeFile, ctx.mode)
	assert.Equal(t, exchangeDir, filepath.Dir(ctx.exchange.RequestPath))
	assert.Equal(t, "/ext/notes", ctx.Dir())
}
