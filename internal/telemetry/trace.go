package telemetry

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"shiftboard/config"
	"shiftboard/internal/core"

	gcppropagator "github.com/GoogleCloudPlatform/opentelemetry-operations-go/propagator"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var ProviderSet = wire.NewSet(NewTrace, NewMetric)

// Trace 零值（TracerProvider 為 nil）時所有 span 都是 noop
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}
	exporter, err := newExporter(conf.Telemetry.Trace.EndpointUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
		)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		// 接受 GCLB 帶入的 X-Cloud-Trace-Context
		gcppropagator.CloudTraceOneWayPropagator{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}
	return &Trace{TracerProvider: provider, ServiceName: conf.App.Name}, cleanup, nil
}

func newExporter(endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  60 * time.Second,
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(ctx context.Context, spanName core.TraceSpanName, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan handler 傳 *gin.Context，其他層傳 context.Context。
// 未指定 name 時以呼叫者的 Type.Method 命名；gin 的新 ctx 會寫回 core.ContextTraceKey
func (t *Trace) WithSpan(parent any, name ...string) (context.Context, trace.Span, func(error)) {
	spanName := ""
	if len(name) > 0 {
		spanName = strings.TrimSpace(name[0])
	}
	if spanName == "" {
		spanName = "unknown"
		if pc, _, _, ok := runtime.Caller(1); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				spanName = funcSpanName(fn.Name())
			}
		}
	}

	var ctx context.Context
	switch p := parent.(type) {
	case *gin.Context:
		ctx = ginTraceContext(p)
	case context.Context:
		ctx = p
	default:
		ctx = context.Background()
	}

	ctx, span := t.StartSpanForLayer(ctx, core.TraceSpanName(spanName))
	if c, ok := parent.(*gin.Context); ok {
		c.Set(core.ContextTraceKey, ctx)
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ApplyTraceAttributes 依欄位的 trace tag 寫入 span；巢狀 struct 與指標會展開
func (t *Trace) ApplyTraceAttributes(span trace.Span, meta any) {
	if span == nil || meta == nil {
		return
	}
	span.SetAttributes(traceAttributes(reflect.ValueOf(meta))...)
}

func ginTraceContext(c *gin.Context) context.Context {
	if ctx, ok := c.Get(core.ContextTraceKey); ok {
		if traced, ok := ctx.(context.Context); ok {
			return traced
		}
	}
	return c.Request.Context()
}

func traceAttributes(value reflect.Value) []attribute.KeyValue {
	for value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var attrs []attribute.KeyValue
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldValue := value.Field(i)
		tag := field.Tag.Get("trace")
		switch kind := fieldValue.Kind(); {
		case kind == reflect.Struct || kind == reflect.Ptr:
			attrs = append(attrs, traceAttributes(fieldValue)...)
		case tag == "":
		case kind == reflect.Map:
			attrs = append(attrs, mapAttributes(tag, fieldValue)...)
		default:
			if kv, ok := attributeOf(tag, fieldValue); ok {
				attrs = append(attrs, kv)
			}
		}
	}
	return attrs
}

// map 以 tag.key 展開，只支援 string key
func mapAttributes(prefix string, value reflect.Value) []attribute.KeyValue {
	if value.Type().Key().Kind() != reflect.String {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		entry := iter.Value()
		if entry.Kind() == reflect.Interface {
			entry = entry.Elem()
		}
		if kv, ok := attributeOf(prefix+"."+iter.Key().String(), entry); ok {
			attrs = append(attrs, kv)
		}
	}
	return attrs
}

func attributeOf(key string, value reflect.Value) (attribute.KeyValue, bool) {
	switch value.Kind() {
	case reflect.String:
		return attribute.String(key, value.String()), true
	case reflect.Bool:
		return attribute.Bool(key, value.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return attribute.Int64(key, value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return attribute.Int64(key, int64(value.Uint())), true
	case reflect.Float32, reflect.Float64:
		return attribute.Float64(key, value.Float()), true
	case reflect.Slice, reflect.Array:
		if value.Type().Elem().Kind() != reflect.String {
			break
		}
		values := make([]string, value.Len())
		for i := range values {
			values[i] = value.Index(i).String()
		}
		return attribute.StringSlice(key, values), true
	}
	return attribute.KeyValue{}, false
}

// funcSpanName shiftboard/internal/service.(*ShiftService).Create -> ShiftService.Create
func funcSpanName(full string) string {
	full = full[strings.LastIndex(full, "/")+1:]
	full = strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(full, ".func"); i >= 0 {
		full = full[:i]
	}
	if i := strings.Index(full, "."); i >= 0 {
		full = full[i+1:]
	}
	full = strings.NewReplacer("(*", "", "(", "", ")", "").Replace(full)
	// 泛型型參
	if i := strings.Index(full, "["); i >= 0 {
		if j := strings.Index(full, "]"); j > i {
			full = full[:i] + full[j+1:]
		}
	}
	return full
}
