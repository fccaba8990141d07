package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Seeding hooks
	s := NoopSeedingHooks{}
	s.OnRunStart(ctx, 0.5, 0.25)
	s.OnLineAccepted(ctx, 120)
	s.OnSeedRejected(ctx)
	s.OnRunComplete(ctx, 40, 4800)

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnTraceStart(ctx, "vortex")
	p.OnTraceComplete(ctx, "vortex", 40, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "dataset")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

type testSeedingHooks struct {
	NoopSeedingHooks
	accepted int
}

func (h *testSeedingHooks) OnLineAccepted(ctx context.Context, pointCount int) {
	h.accepted++
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Seeding().(NoopSeedingHooks); !ok {
		t.Error("Seeding() should return NoopSeedingHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customSeeding := &testSeedingHooks{}
	SetSeedingHooks(customSeeding)
	if Seeding() != customSeeding {
		t.Error("SetSeedingHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Seeding().(NoopSeedingHooks); !ok {
		t.Error("Reset() should restore NoopSeedingHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSeedingHooks{}
	SetSeedingHooks(custom)
	SetSeedingHooks(nil)
	if Seeding() != custom {
		t.Error("SetSeedingHooks(nil) should keep the previous hooks")
	}

	SetPipelineHooks(nil)
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("SetPipelineHooks(nil) should keep the noop default")
	}

	Reset()
}
