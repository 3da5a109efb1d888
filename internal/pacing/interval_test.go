package pacing

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInterval_FirstWaitBlocks(t *testing.T) {
	const interval = 40 * time.Millisecond
	start := time.Now()
	pacer := NewInterval(interval)

	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < interval-5*time.Millisecond {
		t.Errorf("First wait returned after %v, want about %v", elapsed, interval)
	}
}

func TestInterval_SpacesCalls(t *testing.T) {
	pacer := NewInterval(30 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("Expected at least ~90ms for three calls, got %v", elapsed)
	}
}

func TestInterval_ZeroDoesNotBlock(t *testing.T) {
	pacer := NewInterval(0)

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := pacer.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Zero interval blocked for %v", elapsed)
	}
}

func TestInterval_ContextCancelled(t *testing.T) {
	pacer := NewInterval(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := pacer.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		mode    string
		want    interface{}
		wantErr bool
	}{
		{"", &FixedDelay{}, false},
		{ModeFixed, &FixedDelay{}, false},
		{ModeInterval, &Interval{}, false},
		{"burst", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			pacer, err := New(tt.mode, time.Second)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error for unknown mode")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			switch tt.want.(type) {
			case *FixedDelay:
				if _, ok := pacer.(*FixedDelay); !ok {
					t.Errorf("Expected *FixedDelay, got %T", pacer)
				}
			case *Interval:
				if _, ok := pacer.(*Interval); !ok {
					t.Errorf("Expected *Interval, got %T", pacer)
				}
			}
		})
	}
}
