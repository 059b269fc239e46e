package vault

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestLazySharesInFlightInit(t *testing.T) {
	var inits atomic.Int32
	cell := newLazy(func(context.Context) (int, error) {
		inits.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	})

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			v, err := cell.get(context.Background())
			if err != nil {
				return err
			}
			if v != 42 {
				t.Errorf("value mismatch: %d", v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent get: %v", err)
	}

	if got := inits.Load(); got != 1 {
		t.Fatalf("expected one init, got %d", got)
	}
}

func TestLazyRetriesAfterFailure(t *testing.T) {
	var attempts atomic.Int32
	boom := errors.New("dial failed")
	cell := newLazy(func(context.Context) (string, error) {
		if attempts.Add(1) == 1 {
			return "", boom
		}
		return "ready", nil
	})

	if _, err := cell.get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected first init to fail, got %v", err)
	}
	v, err := cell.get(context.Background())
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if v != "ready" {
		t.Fatalf("value mismatch: %s", v)
	}

	// cached value, no further init
	if _, err := cell.get(context.Background()); err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if got := attempts.Load(); got != 2 {
		t.Fatalf("expected two init attempts, got %d", got)
	}
}
