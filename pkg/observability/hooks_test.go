package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	mu        sync.Mutex
	starts    []string
	completes []string
}

func (r *recordingPipelineHooks) OnStageStart(_ context.Context, stage string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts = append(r.starts, stage)
}

func (r *recordingPipelineHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes = append(r.completes, stage)
}

type recordingCacheHooks struct {
	mu     sync.Mutex
	hits   int
	misses int
	sets   int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
}

func (r *recordingCacheHooks) OnCacheMiss(context.Context, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}

func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	Pipeline().OnStageStart(context.Background(), StageBuild)
	Pipeline().OnStageComplete(context.Background(), StageBuild, time.Millisecond, nil)
	Cache().OnCacheHit(context.Background(), "tree")
	Cache().OnCacheMiss(context.Background(), "tree")
	Cache().OnCacheSet(context.Background(), "tree", 128)
}

func TestSetPipelineHooks(t *testing.T) {
	defer Reset()

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	Pipeline().OnStageStart(context.Background(), StageLayout)
	Pipeline().OnStageComplete(context.Background(), StageLayout, time.Millisecond, nil)

	if len(rec.starts) != 1 || rec.starts[0] != StageLayout {
		t.Errorf("starts = %v, want [%s]", rec.starts, StageLayout)
	}
	if len(rec.completes) != 1 || rec.completes[0] != StageLayout {
		t.Errorf("completes = %v, want [%s]", rec.completes, StageLayout)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	Cache().OnCacheHit(context.Background(), "layout")
	Cache().OnCacheMiss(context.Background(), "artifact")
	Cache().OnCacheSet(context.Background(), "artifact", 64)

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("hits=%d misses=%d sets=%d, want 1 each", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnStageStart(context.Background(), StageCount)
	if len(rec.starts) != 1 {
		t.Errorf("starts = %v, want one entry after nil set", rec.starts)
	}
}

func TestReset(t *testing.T) {
	SetPipelineHooks(&recordingPipelineHooks{})
	SetCacheHooks(&recordingCacheHooks{})
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetCacheHooks(&recordingCacheHooks{})
		}()
		go func() {
			defer wg.Done()
			Cache().OnCacheHit(context.Background(), "tree")
		}()
	}
	wg.Wait()
}
