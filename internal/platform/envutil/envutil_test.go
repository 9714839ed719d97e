package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("EDUADMIN_TEST_DUR", "15s")
	if got := Duration("EDUADMIN_TEST_DUR", time.Second); got != 15*time.Second {
		t.Fatalf("got %v", got)
	}
	t.Setenv("EDUADMIN_TEST_DUR", "7")
	if got := Duration("EDUADMIN_TEST_DUR", time.Second); got != 7*time.Second {
		t.Fatalf("got %v", got)
	}
	t.Setenv("EDUADMIN_TEST_DUR", "soon")
	if got := Duration("EDUADMIN_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("got %v", got)
	}
}

func TestIntAndBool(t *testing.T) {
	t.Setenv("EDUADMIN_TEST_INT", "x")
	if got := Int("EDUADMIN_TEST_INT", 4); got != 4 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("EDUADMIN_TEST_BOOL", "on")
	if !Bool("EDUADMIN_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	if Bool("EDUADMIN_TEST_UNSET_BOOL", false) {
		t.Fatalf("expected default false")
	}
}
