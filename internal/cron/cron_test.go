package cron

import (
	"context"
	"testing"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/service"
	"shiftboard/internal/service/servicetest"
	"shiftboard/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func newTestCron(t *testing.T, enabled bool, spec string) (*Cron, *servicetest.ShiftStore, *tracetest.SpanRecorder) {
	t.Helper()
	conf := &config.Configuration{Cron: config.Cron{Enabled: enabled, ShiftCompletionSpec: spec}}
	store := &servicetest.ShiftStore{}
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	trace := &telemetry.Trace{TracerProvider: provider, ServiceName: "cron-test"}
	return NewCron(zap.NewNop(), conf, trace, service.NewShiftService(trace, store)), store, recorder
}

func TestDisabledCronDoesNotSchedule(t *testing.T) {
	c, _, _ := newTestCron(t, false, "not a spec")
	require.NoError(t, c.Run())
	assert.Empty(t, c.server.Entries())
	require.NoError(t, c.Stop(context.Background()))
}

func TestInvalidSpecFails(t *testing.T) {
	c, _, _ := newTestCron(t, true, "*/5 * * *")
	assert.Error(t, c.Run())
}

func TestCompletePastShiftsJob(t *testing.T) {
	c, store, recorder := newTestCron(t, true, "0 */10 * * * *")
	past := time.Now().UTC().Add(-48 * time.Hour)
	_, err := store.Create(context.Background(), &model.Shift{
		EmployeeID: "E1",
		Date:       past,
		StartTime:  past,
		EndTime:    past.Add(time.Hour),
		Location:   "Main store",
	})
	require.NoError(t, err)

	c.completePastShifts()

	shifts, err := store.List(context.Background(), core.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, core.ShiftStatusCompleted, shifts[0].Status)

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "ShiftService.CompletePastShifts", ended[0].Name())
	assert.Equal(t, string(core.SpanCronJob), ended[1].Name())
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())

	require.NoError(t, c.Run())
	assert.Len(t, c.server.Entries(), 1)
	require.NoError(t, c.Stop(context.Background()))
}
