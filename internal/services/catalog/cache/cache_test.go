package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func counter(calls *int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestGetCachesWithinTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))
	var calls int32

	for i := 0; i < 3; i++ {
		got, err := Get(context.Background(), c, "k", DefaultTTL, counter(&calls, "v"))
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "v" {
			t.Fatalf("value = %q, want v", got)
		}
		clock.Advance(time.Minute)
	}
	if calls != 1 {
		t.Fatalf("resolve calls = %d, want 1", calls)
	}
}

func TestGetRefreshesAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))
	var calls int32

	if _, err := Get(context.Background(), c, "k", DefaultTTL, counter(&calls, "v")); err != nil {
		t.Fatalf("get: %v", err)
	}
	clock.Advance(DefaultTTL)
	if _, err := Get(context.Background(), c, "k", DefaultTTL, counter(&calls, "v")); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 2 {
		t.Fatalf("resolve calls = %d, want 2", calls)
	}
}

func TestGetNoExpiryNeverRefreshes(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	c := New(WithClock(clock.Now))
	var calls int32

	if _, err := Get(context.Background(), c, "pokemons", NoExpiry, counter(&calls, "v")); err != nil {
		t.Fatalf("get: %v", err)
	}
	clock.Advance(30 * 24 * time.Hour)
	if _, err := Get(context.Background(), c, "pokemons", NoExpiry, counter(&calls, "v")); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("resolve calls = %d, want 1", calls)
	}
}

func TestGetDoesNotStoreFailures(t *testing.T) {
	t.Parallel()

	c := New()
	boom := errors.New("boom")
	_, err := Get(context.Background(), c, "k", DefaultTTL, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if c.Contains("k") {
		t.Fatal("failed resolution was stored")
	}
	got, err := Get(context.Background(), c, "k", DefaultTTL, func(context.Context) (int, error) {
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Fatalf("get = %d, %v; want 7, nil", got, err)
	}
}

func TestGetCollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	c := New()
	var calls int32
	release := make(chan struct{})
	resolve := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	var started sync.WaitGroup
	wg.Add(workers)
	started.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			started.Done()
			if _, err := Get(context.Background(), c, "k", DefaultTTL, resolve); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("resolve calls = %d, want 1", got)
	}
}

type requestKey struct{}

func TestGetCancelledCallerDoesNotFailWaiters(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := New()
	var calls int32
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	resolve := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		entered <- struct{}{}
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if ctx.Value(requestKey{}) != "first" {
			return "", errors.New("resolve lost context values")
		}
		return "v", nil
	}

	firstCtx, cancel := context.WithCancel(context.WithValue(context.Background(), requestKey{}, "first"))
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := Get(firstCtx, c, "k", DefaultTTL, resolve)
		firstErr <- err
	}()
	<-entered

	type result struct {
		value string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		v, err := Get(context.Background(), c, "k", DefaultTTL, resolve)
		second <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller err = %v, want context.Canceled", err)
	}

	close(release)
	got := <-second
	if got.err != nil || got.value != "v" {
		t.Fatalf("second caller = %q, %v; want v, nil", got.value, got.err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("resolve calls = %d, want 1", n)
	}
	if !c.Contains("k") {
		t.Fatal("expected value to be cached after the shared resolve")
	}
}

func TestGetTypeMismatch(t *testing.T) {
	t.Parallel()

	c := New()
	c.Set("k", 42)
	if _, err := Get(context.Background(), c, "k", NoExpiry, counterString()); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func counterString() func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return "", nil }
}

func TestContainsInvalidateLen(t *testing.T) {
	t.Parallel()

	c := New()
	c.Set("a", 1)
	c.Set("b", 2)
	if !c.Contains("a") || c.Len() != 2 {
		t.Fatalf("contains/len = %v/%d", c.Contains("a"), c.Len())
	}
	c.Invalidate("a")
	if c.Contains("a") || c.Len() != 1 {
		t.Fatalf("after invalidate contains/len = %v/%d", c.Contains("a"), c.Len())
	}
}

func TestNilCacheResolvesDirectly(t *testing.T) {
	t.Parallel()

	var c *Cache
	var calls int32
	if _, err := Get(context.Background(), c, "k", DefaultTTL, counter(&calls, "v")); err != nil {
		t.Fatalf("get: %v", err)
	}
	if calls != 1 || c.Contains("k") || c.Len() != 0 {
		t.Fatalf("nil cache calls=%d", calls)
	}
}
