package middleware

import (
	"io"
	"net/http"
	"strings"

	"shiftboard/internal/core"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/pkg/response"
	"shiftboard/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// 解壓後的 body 上限
const maxDecodedBodyBytes = 1 << 20

type Decompress struct {
	trace *telemetry.Trace
}

func NewDecompress(trace *telemetry.Trace) *Decompress {
	return &Decompress{trace: trace}
}

type decodedBody struct {
	io.Reader
	closers []io.Closer
}

func (b *decodedBody) Close() error {
	var first error
	for _, closer := range b.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Handler 依 Content-Encoding 解開 request body（gzip / deflate / br / zstd）
func (m *Decompress) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		if encoding == "" || encoding == "identity" || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanDecodeMiddleware))
		reader, err := decodeReader(encoding, c.Request.Body)
		if err != nil {
			end(err)
			response.AbortWithError(c, err)
			return
		}
		span.AddEvent("body decoded: " + encoding)
		end(nil)

		c.Request.Body = reader
		c.Request.Header.Del("Content-Encoding")
		c.Request.Header.Del("Content-Length")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func decodeReader(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch encoding {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, cErr.UnsupportedEncoding("Invalid gzip body")
		}
		return &decodedBody{Reader: io.LimitReader(gz, maxDecodedBodyBytes), closers: []io.Closer{gz, body}}, nil
	case "deflate":
		zl, err := zlib.NewReader(body)
		if err != nil {
			return nil, cErr.UnsupportedEncoding("Invalid deflate body")
		}
		return &decodedBody{Reader: io.LimitReader(zl, maxDecodedBodyBytes), closers: []io.Closer{zl, body}}, nil
	case "br":
		return &decodedBody{Reader: io.LimitReader(brotli.NewReader(body), maxDecodedBodyBytes), closers: []io.Closer{body}}, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, cErr.UnsupportedEncoding("Invalid zstd body")
		}
		return &decodedBody{Reader: io.LimitReader(zr, maxDecodedBodyBytes), closers: []io.Closer{zr.IOReadCloser(), body}}, nil
	}
	return nil, cErr.UnsupportedEncoding("Unsupported Content-Encoding: " + encoding)
}
