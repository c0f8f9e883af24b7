package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanDecodeMiddleware   TraceSpanName = "decode_middleware"
	SpanAuthMiddleware     TraceSpanName = "auth_middleware"
	SpanThrottleMiddleware TraceSpanName = "throttle_middleware"
	SpanCronJob            TraceSpanName = "cron_job"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal    MetricName = "requests_total"
	MetricHttpRequestDuration  MetricName = "request_duration_seconds"
	MetricRequestSuccessTotal  MetricName = "request_success_total"
	MetricRequestFailTotal     MetricName = "request_fail_total"
	MetricLoginThrottledTotal  MetricName = "login_throttled_total"
	MetricAttendanceMarksTotal MetricName = "attendance_marks_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelResult   MetricLabelName = "result"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceAuthGateMeta struct {
	UserID       string   `trace:"auth.user_id"`
	Role         string   `trace:"auth.role"`
	AllowedRoles []string `trace:"auth.allowed_roles"`
	TokenFrom    string   `trace:"auth.token_from"`
	Status       string   `trace:"auth.status"`
}

type TraceAuthMeta struct {
	Action string `trace:"auth.action"`
	Email  string `trace:"auth.email"`
}

type TraceThrottleMeta struct {
	Key       string `trace:"throttle.key"`
	Limit     int    `trace:"throttle.limit"`
	WindowSec int64  `trace:"throttle.window_sec"`
	Remaining int    `trace:"throttle.remaining"`
	TTL       int64  `trace:"throttle.ttl_sec"`
	Blocked   bool   `trace:"throttle.blocked"`
}

type TraceListMeta struct {
	Resource    string         `trace:"list.resource"`
	Filter      map[string]any `trace:"filter"`
	ResultCount int            `trace:"result.count"`
}

type TraceAttendanceMarkMeta struct {
	EmployeeID string `trace:"attendance.employee_id"`
	Date       string `trace:"attendance.date"`
	CallerID   string `trace:"auth.user_id"`
	Created    bool   `trace:"attendance.created"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	RequestID         string `trace:"http.request.id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

type TraceCronJobMeta struct {
	Job      string `trace:"cron.job"`
	Affected int64  `trace:"cron.affected"`
}
