package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/visitdesk/internal/metrics"
)

// toolMetricsMiddleware times tools/call requests per tool name.
func toolMetricsMiddleware(m *metrics.Metrics) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if m == nil || method != "tools/call" {
				return next(ctx, method, req)
			}
			name := "unknown"
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				name = call.Params.Name
			}
			start := time.Now()
			result, err := next(ctx, method, req)
			m.ObserveToolCall(name, start)
			return result, err
		}
	}
}
