package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func Test_ContextHandler(t *testing.T) {
	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{0x01}})

	testCases := []struct {
		name            string
		ctx             context.Context
		expectedReqID   string
		expectedTraceID string
	}{
		{name: "empty context", ctx: context.Background()},
		{name: "request id", ctx: context.WithValue(context.Background(), middleware.RequestIDKey, "req-1"), expectedReqID: "req-1"},
		{name: "trace id", ctx: trace.ContextWithSpanContext(context.Background(), spanCtx), expectedTraceID: traceID.String()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			log := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).With("component", "test")

			// when
			log.InfoContext(tc.ctx, "hello")

			// then
			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "test", record["component"])
			if tc.expectedReqID != "" {
				assert.Equal(t, tc.expectedReqID, record["request_id"])
			} else {
				assert.NotContains(t, record, "request_id")
			}
			if tc.expectedTraceID != "" {
				assert.Equal(t, tc.expectedTraceID, record["trace_id"])
			} else {
				assert.NotContains(t, record, "trace_id")
			}
		})
	}
}
