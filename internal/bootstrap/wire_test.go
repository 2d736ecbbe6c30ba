package bootstrap

import (
	"runtime"
	"testing"
)

func TestApplyThreadCap(t *testing.T) {
	prev := runtime.GOMAXPROCS(0)
	t.Cleanup(func() { runtime.GOMAXPROCS(prev) })

	// at or above the current limit: no change
	applyThreadCap(prev)
	if got := runtime.GOMAXPROCS(0); got != prev {
		t.Fatalf("equal cap changed GOMAXPROCS to %d", got)
	}
	applyThreadCap(prev + 4)
	if got := runtime.GOMAXPROCS(0); got != prev {
		t.Fatalf("higher cap raised GOMAXPROCS to %d", got)
	}

	if prev > 1 {
		applyThreadCap(1)
		if got := runtime.GOMAXPROCS(0); got != 1 {
			t.Fatalf("lower cap not applied, GOMAXPROCS = %d", got)
		}
	}
}
