package httpclient

import (
	"context"
	"testing"
	"time"
)

func TestForProbeSplitsConnectAndTotalBudget(t *testing.T) {
	client := ForProbe(10*time.Second, 2*time.Second)
	if client.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", client.Timeout)
	}
}

func TestHostLimiterWaitAllowsBurst(t *testing.T) {
	l := NewHostLimiter(1000, 5)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "example.com"); err != nil {
			t.Fatalf("Wait() attempt %d err = %v", i, err)
		}
	}
}

func TestHostLimiterIsolatesHosts(t *testing.T) {
	l := NewHostLimiter(1, 1)
	ctx := context.Background()
	if err := l.Wait(ctx, "a.example.com"); err != nil {
		t.Fatalf("Wait(a) err = %v", err)
	}
	// Different host should have its own bucket, not share a's exhausted burst.
	ctx2, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx2, "b.example.com"); err != nil {
		t.Fatalf("Wait(b) err = %v, want immediate admission on a fresh bucket", err)
	}
}
