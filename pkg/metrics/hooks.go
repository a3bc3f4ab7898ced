package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/clevacompass/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)

func (r *Registry) OnCompose(_ context.Context, entries, size int, _ time.Duration) {
	r.ComposeTotal.Inc()
	r.ComposeEntries.Observe(float64(entries))
	r.ComposeOutputBytes.Observe(float64(size))
}

func (r *Registry) OnRenderStart(_ context.Context, _ string) {
	r.RendersInFlight.Inc()
}

func (r *Registry) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	r.RendersInFlight.Dec()
	status := "success"
	if err != nil {
		status = "error"
	}
	r.RenderTotal.WithLabelValues(format, status).Inc()
	r.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (r *Registry) OnRequest(context.Context, string, string, string) {}

func (r *Registry) OnResponse(_ context.Context, method, host, _ string, status int, d time.Duration) {
	r.UpstreamRequestsTotal.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
	r.UpstreamRequestDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (r *Registry) OnError(_ context.Context, method, host, _ string, _ error) {
	r.UpstreamErrorsTotal.WithLabelValues(method, host).Inc()
}
