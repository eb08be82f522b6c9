package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type sampleMeta struct {
	Name    string            `trace:"sample.name"`
	Count   int               `trace:"sample.count"`
	Skipped string            `trace:"sample.skipped,omitempty"`
	Flag    bool              `trace:"sample.flag"`
	Tags    []string          `trace:"sample.tags"`
	Headers map[string]string `trace:"sample.header"`
	Ignored string
}

func recordingTrace() (*Trace, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &Trace{TracerProvider: tp, ServiceName: "test"}, recorder
}

func TestApplyTraceAttributes(t *testing.T) {
	tr, recorder := recordingTrace()

	_, span, end := tr.WithSpan(context.Background(), "sample")
	tr.ApplyTraceAttributes(span, &sampleMeta{
		Name:    "credits",
		Count:   3,
		Flag:    true,
		Tags:    []string{"a", "b"},
		Headers: map[string]string{"accept": "application/json"},
		Ignored: "nope",
	})
	end(nil)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "sample", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "credits", attrs["sample.name"].AsString())
	assert.Equal(t, int64(3), attrs["sample.count"].AsInt64())
	assert.True(t, attrs["sample.flag"].AsBool())
	assert.Equal(t, []string{"a", "b"}, attrs["sample.tags"].AsStringSlice())
	assert.Equal(t, "application/json", attrs["sample.header.accept"].AsString())
	assert.NotContains(t, attrs, attribute.Key("sample.skipped"))
	assert.NotContains(t, attrs, attribute.Key("sample.skipped,omitempty"))
	assert.Len(t, attrs, 5)
}

func TestWithSpanUsesCallerName(t *testing.T) {
	tr, recorder := recordingTrace()

	_, _, end := tr.WithSpan(context.Background())
	end(assert.AnError)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "TestWithSpanUsesCallerName", ended[0].Name())
	assert.Equal(t, "Error", ended[0].Status().Code.String())
}

func TestZeroTraceIsNoop(t *testing.T) {
	var tr Trace
	ctx, span, end := tr.WithSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	end(nil)
}

func TestPrettifyFuncName(t *testing.T) {
	tcs := map[string]string{
		"soundgate/internal/service/suno.(*Client).GetCredits":       "Client.GetCredits",
		"soundgate/internal/handler.(*CreditsHandler).GetCredits-fm": "CreditsHandler.GetCredits",
		"soundgate/internal/cron.(*UpstreamProbe).Run.func1":         "UpstreamProbe.Run",
		"soundgate/internal/telemetry.TestPrettifyFuncName":          "TestPrettifyFuncName",
	}
	for in, want := range tcs {
		assert.Equal(t, want, prettifyFuncName(in), in)
	}
}
