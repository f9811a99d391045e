// Package toolchain drives scala-cli to compile and run projects.
package toolchain

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Toolchain = (*ScalaCLI)(nil)

// ScalaCLI implements ports.Toolchain with the scala-cli executable.
type ScalaCLI struct {
	path     string
	runner   ports.CommandRunner
	executor ports.Executor
	env      []string
}

// Option configures a ScalaCLI.
type Option func(*ScalaCLI)

// WithBinDir puts dir ahead of PATH for every scala-cli invocation, so the JVM and
// launchers bundled next to kiln win over system installs.
func WithBinDir(dir string) Option {
	return func(s *ScalaCLI) {
		if dir != "" {
			s.env = append(s.env, "PATH="+dir)
		}
	}
}

// NewScalaCLI creates a toolchain that runs the scala-cli executable at path.
// Compilation goes through runner so the output can be captured; programs and tests run
// through executor.
func NewScalaCLI(path string, runner ports.CommandRunner, executor ports.Executor, opts ...Option) *ScalaCLI {
	s := &ScalaCLI{path: path, runner: runner, executor: executor}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ScalaCLI) command(dir string, args []string) domain.Command {
	return domain.Command{Name: s.path, Args: args, Dir: dir, Env: s.env}
}

// Compile runs scala-cli compile and removes the scratch directories it leaves behind.
func (s *ScalaCLI) Compile(ctx context.Context, req domain.CompileRequest) error {
	if err := os.MkdirAll(req.OutputDir, domain.DirPerm); err != nil {
		return domain.Classify(domain.ErrBuild, zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "path", req.OutputDir))
	}
	defer cleanScratch(req.SourceDir, req.WorkspaceDir)

	args := []string{"compile"}
	args = append(args, commonArgs(req.WorkspaceDir, req.LanguageVersion)...)
	args = append(args, "-d", req.OutputDir, req.SourceDir)
	args = append(args, dependencyArgs(req.Dependencies)...)

	out, err := s.runner.Run(ctx, s.command(req.WorkspaceDir, args))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return domain.Classify(domain.ErrBuild, s.failure(err, out))
	}
	return nil
}

// Run compiles and runs the project's main entry point in a terminal.
func (s *ScalaCLI) Run(ctx context.Context, req domain.RunRequest, stdout, stderr io.Writer) error {
	defer cleanScratch(req.SourceDir, req.WorkspaceDir)

	args := []string{"run"}
	args = append(args, commonArgs(req.WorkspaceDir, req.LanguageVersion)...)
	args = append(args, req.SourceDir)
	args = append(args, dependencyArgs(req.Dependencies)...)
	if req.MainClass != "" {
		args = append(args, "--main-class", req.MainClass)
	}
	if len(req.Args) > 0 {
		args = append(append(args, "--"), req.Args...)
	}

	err := s.executor.Execute(ctx, s.command(req.WorkspaceDir, args), stdout, stderr)
	return s.execFailure(ctx, err, domain.ErrRunFailed)
}

// Test runs scala-cli test over the main and test sources, streaming the report. A test
// directory inside the sources is already covered by them.
func (s *ScalaCLI) Test(ctx context.Context, req domain.TestRequest, stdout, stderr io.Writer) error {
	defer cleanScratch(req.SourceDir, req.TestDir, req.WorkspaceDir)

	args := []string{"test"}
	args = append(args, commonArgs(req.WorkspaceDir, req.LanguageVersion)...)
	args = append(args, req.SourceDir)
	if !domain.Within(req.TestDir, req.SourceDir) {
		args = append(args, req.TestDir)
	}
	args = append(args, dependencyArgs(req.Dependencies)...)

	err := s.executor.Execute(ctx, s.command(req.WorkspaceDir, args), stdout, stderr)
	return s.execFailure(ctx, err, domain.ErrTestFailed)
}

// execFailure maps an executor error onto the toolchain errors. A command that never
// started means scala-cli is missing; any other failure is wrapped in failed.
func (s *ScalaCLI) execFailure(ctx context.Context, err error, failed error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if domain.ExitCode(err) == -1 {
		return domain.Classify(domain.ErrBuild, zerr.With(zerr.Wrap(err, domain.ErrToolchainNotFound.Error()), "path", s.path))
	}
	wrapped := zerr.Wrap(err, failed.Error())
	return domain.Classify(domain.ErrBuild, zerr.With(wrapped, domain.ExitCodeKey, domain.ExitCode(err)))
}

// failure attaches the compiler output verbatim to ErrBuildFailed.
func (s *ScalaCLI) failure(err error, out []byte) error {
	code := domain.ExitCode(err)
	if code == -1 {
		return zerr.With(zerr.Wrap(err, domain.ErrToolchainNotFound.Error()), "path", s.path)
	}

	output := strings.TrimRight(string(out), "\n")
	if output == "" {
		output = err.Error()
	}
	return zerr.With(zerr.Wrap(errors.New(output), domain.ErrBuildFailed.Error()), domain.ExitCodeKey, code)
}

func commonArgs(workspaceDir, languageVersion string) []string {
	var args []string
	if workspaceDir != "" {
		args = append(args, "--workspace", workspaceDir)
	}
	if languageVersion != "" {
		args = append(args, "--scala", languageVersion)
	}
	return args
}

// dependencyArgs passes published dependencies by coordinate and local projects as file URLs.
func dependencyArgs(deps []domain.Dependency) []string {
	args := make([]string, 0, 2*len(deps))
	for _, dep := range deps {
		coordinate := dep.ToolCoordinate()
		if dep.IsLocal() {
			coordinate = "file://" + filepath.ToSlash(dep.LocalDir())
		}
		args = append(args, "--dependency", coordinate)
	}
	return args
}

func cleanScratch(dirs ...string) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range domain.ScratchDirs {
			_ = os.RemoveAll(filepath.Join(dir, name))
		}
	}
}
