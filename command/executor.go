package command

import (
	"context"
	"os/exec"
)

// Executor turns a validated command into an *exec.Cmd. Tests substitute
// one that records invocations or points at fake extension binaries.
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// CommandContext calls f.
func (f ExecutorFunc) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return f(ctx, name, args...)
}

// RealExecutor runs commands through os/exec.
type RealExecutor struct{}

// CommandContext returns exec.CommandContext(ctx, name, args...).
func (RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}
