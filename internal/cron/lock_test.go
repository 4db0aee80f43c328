package cron

import (
	"context"
	"testing"
	"time"
)

type memoryKV struct {
	data map[string][]byte
}

func (m *memoryKV) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = []byte(value.(string))
	return true, nil
}

func (m *memoryKV) DeleteIfValue(_ context.Context, key, value string) (bool, error) {
	if string(m.data[key]) != value {
		return false, nil
	}
	delete(m.data, key)
	return true, nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	ctx := context.Background()
	kv := &memoryKV{data: map[string][]byte{}}
	a, err := NewRedisLock(kv, "sweetslice:lock:housekeeping", 0)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	b, _ := NewRedisLock(kv, "sweetslice:lock:housekeeping", time.Minute)

	if ok, err := a.Acquire(ctx); err != nil || !ok {
		t.Fatalf("first acquire should win, ok=%v err=%v", ok, err)
	}
	if ok, _ := b.Acquire(ctx); ok {
		t.Fatal("second instance must not acquire a held lock")
	}
	if err := b.Release(ctx); err != nil {
		t.Fatalf("release by non-owner should be a no-op, got %v", err)
	}
	if _, held := kv.data["sweetslice:lock:housekeeping"]; !held {
		t.Fatal("non-owner release removed the lock")
	}
	if err := a.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := b.Acquire(ctx); !ok {
		t.Fatal("lock should be free after owner release")
	}
}

func TestRedisLockLeavesReacquiredKey(t *testing.T) {
	ctx := context.Background()
	kv := &memoryKV{data: map[string][]byte{}}
	a, _ := NewRedisLock(kv, "k", time.Minute)

	if ok, _ := a.Acquire(ctx); !ok {
		t.Fatal("expected acquire")
	}
	// Simulate expiry followed by another instance taking the key.
	kv.data["k"] = []byte("someone-else")

	if err := a.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if string(kv.data["k"]) != "someone-else" {
		t.Fatal("release must not delete a lock taken by another holder")
	}
}

func TestNewRedisLockValidates(t *testing.T) {
	if _, err := NewRedisLock(nil, "k", 0); err == nil {
		t.Fatal("expected client error")
	}
	if _, err := NewRedisLock(&memoryKV{}, "", 0); err == nil {
		t.Fatal("expected key error")
	}
}

func TestLocalLock(t *testing.T) {
	var l LocalLock
	ctx := context.Background()
	if ok, _ := l.Acquire(ctx); !ok {
		t.Fatal("expected first acquire")
	}
	if ok, _ := l.Acquire(ctx); ok {
		t.Fatal("expected second acquire to fail")
	}
	_ = l.Release(ctx)
	if ok, _ := l.Acquire(ctx); !ok {
		t.Fatal("expected acquire after release")
	}
	_ = l.Release(ctx)
	if err := l.Release(ctx); err != nil {
		t.Fatalf("releasing a free lock should be harmless, got %v", err)
	}
}
