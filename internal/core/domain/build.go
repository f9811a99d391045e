package domain

import (
	"errors"
	"time"

	"go.trai.ch/zerr"
)

// CompileRequest describes one invocation of the external compiler.
type CompileRequest struct {
	SourceDir string
	OutputDir string
	// WorkspaceDir is the directory the toolchain treats as its workspace. Empty lets it decide.
	WorkspaceDir    string
	LanguageVersion string
	Dependencies    []Dependency
}

// RunRequest describes running a project's main entry point through the toolchain.
type RunRequest struct {
	SourceDir       string
	WorkspaceDir    string
	LanguageVersion string
	MainClass       string
	Dependencies    []Dependency
	Args            []string
}

// TestRequest describes running a project's tests through the toolchain.
type TestRequest struct {
	SourceDir       string
	TestDir         string
	WorkspaceDir    string
	LanguageVersion string
	Dependencies    []Dependency
}

// Command is an external process to execute.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env overlays the inherited environment. A PATH entry is prepended to the inherited PATH.
	Env []string
}

// BuildResult reports how a project build was satisfied.
type BuildResult struct {
	Project      string
	Hash         string
	CacheHit     bool
	Dependencies []Dependency
	Duration     time.Duration
}

// ExitCodeKey is the error metadata key that carries a process exit status.
const ExitCodeKey = "exit_code"

// ExitCode returns the exit status recorded on err by the command runner, or -1 if none is recorded.
func ExitCode(err error) int {
	switch e := err.(type) { //nolint:errorlint // walks every branch of the chain itself
	case nil:
		return -1
	case *zerr.Error:
		if code, ok := e.Metadata()[ExitCodeKey].(int); ok {
			return code
		}
		return ExitCode(e.Unwrap())
	case interface{ Unwrap() []error }:
		for _, part := range e.Unwrap() {
			if code := ExitCode(part); code != -1 {
				return code
			}
		}
		return -1
	default:
		return ExitCode(errors.Unwrap(err))
	}
}
