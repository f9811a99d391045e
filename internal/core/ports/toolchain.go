package ports

import (
	"context"
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// Toolchain drives the external compiler.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Compile compiles req.SourceDir into req.OutputDir.
	// A non-zero compiler exit is reported as domain.ErrBuildFailed carrying the compiler output.
	Compile(ctx context.Context, req domain.CompileRequest) error

	// Run runs the program described by req, streaming its output to stdout and stderr.
	Run(ctx context.Context, req domain.RunRequest, stdout, stderr io.Writer) error

	// Test compiles req.TestDir against req.SourceDir and runs the tests it finds.
	// Failing tests are reported as domain.ErrTestFailed.
	Test(ctx context.Context, req domain.TestRequest, stdout, stderr io.Writer) error
}
