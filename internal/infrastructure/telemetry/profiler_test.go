package telemetry

import (
	"context"
	"runtime/pprof"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := NewProfiler(ProfilerConfig{Enabled: false}, nil)

	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "fresh-choice"}, nil)
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, nil)
	assert.ErrorContains(t, err, "application name")
}

func TestWithProfilingLabels(t *testing.T) {
	var route, method string
	var hasEmpty bool
	WithProfilingLabels(context.Background(), map[string]string{
		"route":  "/api/v1/inventory",
		"method": "GET",
		"empty":  "",
	}, func(ctx context.Context) {
		route, _ = pprof.Label(ctx, "route")
		method, _ = pprof.Label(ctx, "method")
		_, hasEmpty = pprof.Label(ctx, "empty")
	})

	assert.Equal(t, "/api/v1/inventory", route)
	assert.Equal(t, "GET", method)
	assert.False(t, hasEmpty)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
