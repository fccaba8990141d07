// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about seeding runs, pipeline execution,
// and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSeedingHooks(&mySeedingHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Seeding().OnRunStart(ctx, dsep, dtest)
//	// ... place streamlines ...
//	observability.Seeding().OnRunComplete(ctx, lines, points)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Seeding Hooks
// =============================================================================

// SeedingHooks receives events from the streamline seeding loop.
type SeedingHooks interface {
	// OnRunStart fires when a seeding run begins.
	OnRunStart(ctx context.Context, dsep, dtest float64)

	// OnLineAccepted fires when a traced streamline is accepted.
	OnLineAccepted(ctx context.Context, pointCount int)

	// OnSeedRejected fires when a candidate seed is discarded, either for
	// violating the separation distance or for producing a trivial trace.
	OnSeedRejected(ctx context.Context)

	// OnRunComplete fires when the candidate queue drains.
	OnRunComplete(ctx context.Context, lineCount, pointCount int)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the trace → render pipeline.
type PipelineHooks interface {
	// Trace events
	OnTraceStart(ctx context.Context, fieldName string)
	OnTraceComplete(ctx context.Context, fieldName string, lineCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSeedingHooks is a no-op implementation of SeedingHooks.
type NoopSeedingHooks struct{}

func (NoopSeedingHooks) OnRunStart(context.Context, float64, float64) {}
func (NoopSeedingHooks) OnLineAccepted(context.Context, int)          {}
func (NoopSeedingHooks) OnSeedRejected(context.Context)               {}
func (NoopSeedingHooks) OnRunComplete(context.Context, int, int)      {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnTraceStart(context.Context, string) {}
func (NoopPipelineHooks) OnTraceComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	seedingHooks  SeedingHooks  = NoopSeedingHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetSeedingHooks registers custom seeding hooks.
// This should be called once at application startup before any seeding runs.
func SetSeedingHooks(h SeedingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		seedingHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Reset restores all hooks to their no-op defaults. Used by tests and by
// callers that register hooks for the duration of a single run.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	seedingHooks = NoopSeedingHooks{}
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}

// Seeding returns the registered seeding hooks.
func Seeding() SeedingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return seedingHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}
