package domain

import (
	"context"
	"time"

	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/dataset"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

// CurrentTimeLayout formats the local wall clock.
const CurrentTimeLayout = "2006-01-02 15:04:05"

// CurrentTimeOperation reports the local time as {"current_time": ...}.
// A nil now uses time.Now.
func CurrentTimeOperation(now func() time.Time) registry.Operation {
	if now == nil {
		now = time.Now
	}
	return registry.Operation{
		Name:    "get_current_time",
		Summary: "获取当前时间",
		Source:  "本地时钟",
		WrapKey: "current_time",
		Call: func(context.Context, registry.Args) (dataset.Result, error) {
			return dataset.Scalar(now().Format(CurrentTimeLayout)), nil
		},
	}
}

// ClockOperations returns the operations answered without the provider.
func ClockOperations(now func() time.Time) []registry.Operation {
	return []registry.Operation{CurrentTimeOperation(now)}
}
