package cli

import (
	"fmt"
	"io"

	"github.com/whiskers-launcher/companion/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to out.
func NewErrorHandler(verbose bool, out io.Writer) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	var lerr *errors.LauncherError
	if le, ok := err.(*errors.LauncherError); ok {
		lerr = le
	}
	detail := func(key string) interface{} {
		if lerr == nil {
			return ""
		}
		return lerr.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration file not found: %v\n", errorMark, detail("path"))

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %v\n", errorMark, err)

	case errors.ErrCodeExtensionNotFound:
		fmt.Fprintf(h.Out, "%s Extension '%v' is not installed\n", errorMark, detail("extension"))
		fmt.Fprintf(h.Out, "Run 'whiskers index-extensions' after installing it.\n")

	case errors.ErrCodeStoreLocked:
		fmt.Fprintf(h.Out, "%s The settings database is busy. Another whiskers process holds it.\n", errorMark)

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(h.Out, "%s Extension entrypoint not found: %v\n", errorMark, detail("path"))

	case errors.ErrCodeExtensionFailed:
		fmt.Fprintf(h.Out, "%s Extension failed: %v\n", errorMark, err)
		if stderr := detail("stderr"); stderr != "" && stderr != nil {
			fmt.Fprintf(h.Out, "%v\n", stderr)
		}

	case errors.ErrCodeProtocolDecode:
		fmt.Fprintf(h.Out, "%s Extension sent a malformed response: %v\n", errorMark, err)

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", errorMark, err)
	}

	if h.Verbose && lerr != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", lerr.ToJSON())
	}
	return err
}
