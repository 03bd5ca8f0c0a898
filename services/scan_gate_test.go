package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGate(t *testing.T, ttl time.Duration) (*RedisScanGate, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisScanGate(rdb, ttl), mr
}

func TestRedisScanGateSingleHolder(t *testing.T) {
	gate, mr := newTestGate(t, 30*time.Second)
	ctx := context.Background()

	token, ok, err := gate.Acquire(ctx, "scan_gate:7")
	if err != nil || !ok || token == "" {
		t.Fatalf("first Acquire = %q, %v, %v", token, ok, err)
	}
	if got := mr.TTL("scan_gate:7"); got != 30*time.Second {
		t.Errorf("gate ttl = %v, want 30s", got)
	}

	second, ok, err := gate.Acquire(ctx, "scan_gate:7")
	if err != nil {
		t.Fatal(err)
	}
	if ok || second != "" {
		t.Fatalf("second Acquire on a held gate = %q, %v", second, ok)
	}

	other, ok, err := gate.Acquire(ctx, "scan_gate:8")
	if err != nil || !ok || other == token {
		t.Fatalf("other user's gate = %q, %v, %v", other, ok, err)
	}
}

func TestRedisScanGateReleaseRequiresToken(t *testing.T) {
	gate, mr := newTestGate(t, time.Minute)
	ctx := context.Background()

	token, ok, err := gate.Acquire(ctx, "scan_gate:7")
	if err != nil || !ok {
		t.Fatalf("Acquire = %v, %v", ok, err)
	}

	if err := gate.Release(ctx, "scan_gate:7", "someone-else"); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("scan_gate:7") {
		t.Fatal("release with a foreign token freed the gate")
	}
	if got, _ := mr.Get("scan_gate:7"); got != token {
		t.Errorf("gate value = %q, want %q", got, token)
	}

	if err := gate.Release(ctx, "scan_gate:7", token); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("scan_gate:7") {
		t.Fatal("release with the holder's token left the gate set")
	}

	if _, ok, err := gate.Acquire(ctx, "scan_gate:7"); err != nil || !ok {
		t.Fatalf("re-Acquire after release = %v, %v", ok, err)
	}
}

func TestRedisScanGateExpires(t *testing.T) {
	gate, mr := newTestGate(t, 30*time.Second)
	ctx := context.Background()

	if _, ok, _ := gate.Acquire(ctx, "scan_gate:7"); !ok {
		t.Fatal("Acquire failed")
	}
	mr.FastForward(31 * time.Second)

	if _, ok, err := gate.Acquire(ctx, "scan_gate:7"); err != nil || !ok {
		t.Fatalf("Acquire after ttl = %v, %v", ok, err)
	}
}
