package command

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxTimeout caps the timeout a caller may request for one extension run.
// Zero means no timeout: the host waits for the extension to exit.
const MaxTimeout = 10 * time.Minute

var (
	extensionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	settingIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// SafeBuilder builds extension commands after validating the values that
// end up on a command line or in a path.
type SafeBuilder struct {
	timeout    time.Duration
	validators map[string]func(string) error
	executor   Executor
}

// NewSafeBuilder creates a new SafeBuilder backed by a RealExecutor.
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor.
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		validators: makeDefaultValidators(),
		executor:   exec,
	}
}

// WithTimeout bounds every built command. Values above MaxTimeout are capped.
func (sb *SafeBuilder) WithTimeout(timeout time.Duration) *SafeBuilder {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	sb.timeout = timeout
	return sb
}

func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"extensionID": validateExtensionID,
		"settingID":   validateSettingID,
		"entrypoint":  validateEntrypoint,
		"fileName":    validateFileName,
	}
}

func validateExtensionID(id string) error {
	if id == "" {
		return fmt.Errorf("extension id cannot be empty")
	}
	if !extensionIDPattern.MatchString(id) {
		return fmt.Errorf("invalid extension id: %s", id)
	}
	return nil
}

func validateSettingID(id string) error {
	if id == "" {
		return fmt.Errorf("setting id cannot be empty")
	}
	if !settingIDPattern.MatchString(id) {
		return fmt.Errorf("invalid setting id: %s", id)
	}
	return nil
}

// validateEntrypoint accepts a bare executable name.
func validateEntrypoint(name string) error {
	if name == "" {
		return fmt.Errorf("entrypoint cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("entrypoint must be a file name: %s", name)
	}
	return nil
}

func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return fmt.Errorf("file path cannot contain '..'")
		}
	}
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("file path contains invalid characters")
	}
	return nil
}

// Validate validates a value of the named kind.
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}
	return validator(value)
}

// Command is a validated command ready to run. Release must be called once
// the process has exited.
type Command struct {
	ctx      context.Context
	cancel   context.CancelFunc
	name     string
	args     []string
	executor Executor
}

// Build creates a command running the entrypoint inside dir.
func (sb *SafeBuilder) Build(ctx context.Context, dir, entrypoint string, args ...string) (*Command, error) {
	if err := validateEntrypoint(entrypoint); err != nil {
		return nil, err
	}
	if dir == "" {
		return nil, fmt.Errorf("extension directory cannot be empty")
	}

	cmdCtx, cancel := ctx, context.CancelFunc(func() {})
	if sb.timeout > 0 {
		cmdCtx, cancel = context.WithTimeout(ctx, sb.timeout)
	}

	return &Command{
		ctx:      cmdCtx,
		cancel:   cancel,
		name:     filepath.Join(dir, entrypoint),
		args:     args,
		executor: sb.executor,
	}, nil
}

// Path returns the executable the command runs.
func (c *Command) Path() string {
	return c.name
}

// Exec creates the exec.Cmd.
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // entrypoint validated by Build
}

// Release frees the command's timeout context.
func (c *Command) Release() {
	c.cancel()
}
