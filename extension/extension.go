// Package extension is the SDK used by extensions written in Go. It reads the
// pending request, replies through the transport chosen by the host and
// exposes the extension's settings.
//
// A minimal extension:
//
//	func main() {
//		req := extension.Request()
//		results := schema.NewListResults(
//			schema.NewSearchResult("Echo: "+req.Text(), schema.NewResultAction(schema.CopyTextAction{Text: req.Text()})),
//		)
//		extension.SendResults(results)
//	}
package extension

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/schema"
	"github.com/whiskers-launcher/companion/settings"
	"github.com/whiskers-launcher/companion/state"
	"github.com/whiskers-launcher/companion/transport"
)

// Context is the extension side of one request/response cycle.
type Context struct {
	mode     transport.Mode
	exchange state.Exchange
	dir      string
	store    *state.Store
	stdout   io.Writer
	exit     func(int)
	logger   *logrus.Entry
}

// Option configures a Context.
type Option func(*Context)

// WithMode overrides the transport announced by the host.
func WithMode(mode transport.Mode) Option {
	return func(c *Context) { c.mode = mode }
}

// WithExchange overrides the exchange file locations.
func WithExchange(exchange state.Exchange) Option {
	return func(c *Context) { c.exchange = exchange }
}

// WithDir overrides the extension directory.
func WithDir(dir string) Option {
	return func(c *Context) { c.dir = dir }
}

// WithStore overrides the store settings are read from.
func WithStore(store *state.Store) Option {
	return func(c *Context) { c.store = store }
}

// WithStdout redirects the stream transport output.
func WithStdout(w io.Writer) Option {
	return func(c *Context) { c.stdout = w }
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(c *Context) { c.exit = exit }
}

// New creates a context from the environment set up by the host.
func New(opts ...Option) *Context {
	c := &Context{
		mode:     transport.ModeStream,
		exchange: state.DefaultExchange(),
		stdout:   os.Stdout,
		exit:     os.Exit,
		logger:   logging.NewLogger("extension"),
	}

	if mode := os.Getenv(transport.EnvTransport); mode == string(transport.ModeFile) {
		c.mode = transport.ModeFile
	}
	if dir := os.Getenv(transport.EnvExchangeDir); dir != "" {
		c.exchange = state.ExchangeIn(dir)
	}
	if dir := os.Getenv(transport.EnvExtensionDir); dir != "" {
		c.dir = dir
	} else if exe, err := os.Executable(); err == nil {
		c.dir = filepath.Dir(exe)
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = state.Default()
	}
	return c
}

// ReadRequest returns the pending request.
func (c *Context) ReadRequest() (schema.ExtensionRequest, error) {
	return c.exchange.ReadRequest()
}

// Send writes resp through the active transport.
func (c *Context) Send(resp transport.Response) error {
	if c.mode == transport.ModeFile {
		data, err := transport.EncodeFile(resp)
		if err != nil {
			return err
		}
		return state.WriteFileAtomic(c.exchange.ResponsePath, data, 0644)
	}

	line, err := transport.EncodeStreamLine(resp)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(line)
	return err
}

// ReadFormResponse returns the answers of the last submitted form.
func (c *Context) ReadFormResponse() (schema.FormResponse, error) {
	return c.exchange.ReadFormResponse()
}

// Request returns the pending request, exiting with status 1 when it cannot
// be read.
func (c *Context) Request() schema.ExtensionRequest {
	req, err := c.ReadRequest()
	if err != nil {
		c.fatal(err, "Failed to read extension request")
	}
	return req
}

// SendResults replies with search results and exits.
func (c *Context) SendResults(results schema.SearchResults) {
	c.sendAndExit(transport.ResultsResponse(results))
}

// SendForm asks the host to open form and exits.
func (c *Context) SendForm(form schema.OpenFormAction) {
	c.sendAndExit(transport.FormResponse(form))
}

// FormResponse returns the submitted form answers, exiting with status 1
// when they cannot be read.
func (c *Context) FormResponse() schema.FormResponse {
	resp, err := c.ReadFormResponse()
	if err != nil {
		c.fatal(err, "Failed to read form response")
	}
	return resp
}

// Setting returns the value of a setting of extensionID.
func (c *Context) Setting(extensionID, settingID string) (string, bool) {
	current, found := c.store.Settings()
	if !found {
		current = settings.Defaults()
	}
	return settings.Lookup(current, extensionID, settingID)
}

// DecodeSettings decodes every setting of extensionID into target, a pointer
// to a struct with `setting` tags.
func (c *Context) DecodeSettings(extensionID string, target interface{}) error {
	current, found := c.store.Settings()
	if !found {
		current = settings.Defaults()
	}
	return settings.DecodeExtension(current, extensionID, target)
}

// Dir returns the extension's own directory.
func (c *Context) Dir() string {
	return c.dir
}

func (c *Context) sendAndExit(resp transport.Response) {
	if err := c.Send(resp); err != nil {
		c.fatal(err, "Failed to send response")
		return
	}
	c.exit(0)
}

func (c *Context) fatal(err error, msg string) {
	c.logger.WithError(err).Error(msg)
	c.exit(1)
}

var std *Context

func defaultContext() *Context {
	if std == nil {
		std = New()
	}
	return std
}

// Request returns the pending request of the default context.
func Request() schema.ExtensionRequest { return defaultContext().Request() }

// SendResults replies with results through the default context and exits.
func SendResults(results schema.SearchResults) { defaultContext().SendResults(results) }

// SendForm replies with a form through the default context and exits.
func SendForm(form schema.OpenFormAction) { defaultContext().SendForm(form) }

// FormResponse returns the submitted form answers of the default context.
func FormResponse() schema.FormResponse { return defaultContext().FormResponse() }

// Setting returns an extension setting through the default context.
func Setting(extensionID, settingID string) (string, bool) {
	return defaultContext().Setting(extensionID, settingID)
}

// Dir returns the extension directory of the default context.
func Dir() string { return defaultContext().Dir() }
