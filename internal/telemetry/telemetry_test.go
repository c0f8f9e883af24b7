package telemetry

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func newRecordedTrace(t *testing.T) (*Trace, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return &Trace{TracerProvider: provider, ServiceName: "shiftboard-test"}, recorder
}

func attributeMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestDisabledTelemetryIsNoop(t *testing.T) {
	trace, cleanup, err := NewTrace(&config.Configuration{})
	require.NoError(t, err)
	defer cleanup()

	ctx, span, end := trace.WithSpan(context.Background(), "unit")
	assert.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())
	end(nil)

	metric := NewMetric(&config.Configuration{})
	assert.NotPanics(t, func() {
		metric.ObserveRequest("/api/shifts", 200, time.Millisecond)
		metric.IncSuccess("/api/shifts", 200)
		metric.IncFail("not-found")
		metric.IncLoginThrottled()
		metric.IncAttendanceMark(true)
	})
}

func TestWithSpanNamesAfterCaller(t *testing.T) {
	trace, recorder := newRecordedTrace(t)

	_, _, end := trace.WithSpan(context.Background())
	end(errors.New("boom"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "TestWithSpanNamesAfterCaller", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestWithSpanStoresGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	trace, recorder := newRecordedTrace(t)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/shifts", nil)

	parentCtx, parent, endParent := trace.WithSpan(c, "GET /api/shifts")
	_, child, endChild := trace.WithSpan(c)
	endChild(nil)
	endParent(nil)

	stored, ok := c.Get(core.ContextTraceKey)
	require.True(t, ok)
	assert.Equal(t, child.SpanContext().SpanID(), oteltrace.SpanFromContext(stored.(context.Context)).SpanContext().SpanID())
	assert.Equal(t, parent.SpanContext().SpanID(), oteltrace.SpanFromContext(parentCtx).SpanContext().SpanID())
	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, parent.SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestApplyTraceAttributes(t *testing.T) {
	trace, recorder := newRecordedTrace(t)

	_, span, end := trace.WithSpan(context.Background(), "list")
	trace.ApplyTraceAttributes(span, &core.TraceListMeta{
		Resource:    "shift",
		Filter:      map[string]any{"status": "scheduled", "day": nil},
		ResultCount: 2,
	})
	trace.ApplyTraceAttributes(span, core.TraceAuthGateMeta{AllowedRoles: []string{"admin", "employee"}})
	trace.ApplyTraceAttributes(span, nil)
	end(nil)

	attrs := attributeMap(recorder.Ended()[0])
	assert.Equal(t, "shift", attrs["list.resource"].AsString())
	assert.Equal(t, "scheduled", attrs["filter.status"].AsString())
	assert.NotContains(t, attrs, attribute.Key("filter.day"))
	assert.Equal(t, int64(2), attrs["result.count"].AsInt64())
	assert.Equal(t, []string{"admin", "employee"}, attrs["auth.allowed_roles"].AsStringSlice())
}

func TestFuncSpanName(t *testing.T) {
	assert.Equal(t, "ShiftService.Create", funcSpanName("shiftboard/internal/service.(*ShiftService).Create"))
	assert.Equal(t, "ShiftHandler.List", funcSpanName("shiftboard/internal/handler.(*ShiftHandler).List-fm"))
	assert.Equal(t, "Cron.completePastShifts", funcSpanName("shiftboard/internal/cron.(*Cron).completePastShifts.func1"))
	assert.Equal(t, "decodeAll", funcSpanName("shiftboard/internal/database/mongodb/repository.decodeAll[...]"))
}
