package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
}

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("kiln-test", recorder)

	ctx, parent := tracer.Start(context.Background(), "build")
	parent.SetAttribute("project", "demo")
	parent.SetAttribute("deps", 3)
	parent.SetAttribute("cache_hit", false)
	parent.SetAttribute("coordinates", []string{"g:a:1"})
	parent.SetAttribute("other", struct{ N int }{N: 1})

	_, child := tracer.Start(ctx, "compile")
	child.RecordError(errors.New("compilation failed"))
	child.RecordError(nil)
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	compile, build := ended[0], ended[1]
	assert.Equal(t, "compile", compile.Name())
	assert.Equal(t, codes.Error, compile.Status().Code)
	assert.Equal(t, "compilation failed", compile.Status().Description)
	assert.Equal(t, build.SpanContext().SpanID(), compile.Parent().SpanID())

	assert.Equal(t, "build", build.Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("project", "demo"),
		attribute.Int("deps", 3),
		attribute.Bool("cache_hit", false),
		attribute.StringSlice("coordinates", []string{"g:a:1"}),
		attribute.String("other", "{1}"),
	}, build.Attributes())

	require.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
	require.NoError(t, tracer.Shutdown(ctx))
}

type recordingSink struct {
	messages []string
	args     [][]any
}

func (r *recordingSink) Debug(msg string, args ...any) {
	r.messages = append(r.messages, msg)
	r.args = append(r.args, args)
}

func TestLogBridge(t *testing.T) {
	sink := &recordingSink{}
	tracer := telemetry.NewOTelTracer("kiln-test", telemetry.NewLogBridge(sink))

	_, span := tracer.Start(context.Background(), "cache.restore")
	span.SetAttribute("hash", "abc")
	span.RecordError(errors.New("disk full"))
	span.End()

	require.Equal(t, []string{"cache.restore"}, sink.messages)
	args := sink.args[0]
	require.Len(t, args, 6)
	assert.Equal(t, "duration", args[0])
	assert.Equal(t, "hash", args[2])
	assert.Equal(t, "abc", args[3])
	assert.Equal(t, "error", args[4])
	assert.Equal(t, "disk full", fmt.Sprint(args[5]))
}

func TestLogBridge_NilSink(t *testing.T) {
	tracer := telemetry.NewOTelTracer("kiln-test", telemetry.NewLogBridge(nil))
	_, span := tracer.Start(context.Background(), "noop")
	span.End()
}
