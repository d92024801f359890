package query

import (
	"errors"
	"strconv"
	"testing"
)

func TestZeroValueIsPending(t *testing.T) {
	var r Result[string, error]

	if !r.IsPending() {
		t.Fatalf("expected zero value to be pending, got %s", r.State())
	}
	if _, ok := r.Value(); ok {
		t.Fatal("expected no value while pending")
	}
	if got := r.ValueOr("loading"); got != "loading" {
		t.Fatalf("expected fallback value, got %q", got)
	}
}

func TestResolveOnlyFromPending(t *testing.T) {
	var r Result[int, string]

	if err := r.Resolve(4); err != nil {
		t.Fatalf("expected resolve to succeed: %v", err)
	}
	if v, ok := r.Value(); !ok || v != 4 {
		t.Fatalf("expected loaded 4, got %d (ok=%v)", v, ok)
	}

	if err := r.Resolve(5); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on second resolve, got %v", err)
	}
	if err := r.Fail("boom"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending when failing a loaded result, got %v", err)
	}
	if v, _ := r.Value(); v != 4 {
		t.Fatalf("expected value to stay 4, got %d", v)
	}
}

func TestFailThenResetAllowsReload(t *testing.T) {
	var r Result[int, string]

	if err := r.Fail("not found"); err != nil {
		t.Fatalf("expected fail to succeed: %v", err)
	}
	if e, ok := r.Err(); !ok || e != "not found" {
		t.Fatalf("expected error payload, got %q (ok=%v)", e, ok)
	}

	r.Reset()
	if !r.IsPending() {
		t.Fatalf("expected pending after reset, got %s", r.State())
	}
	if _, ok := r.Err(); ok {
		t.Fatal("expected error to be cleared by reset")
	}

	if err := r.Resolve(1); err != nil {
		t.Fatalf("expected resolve after reset to succeed: %v", err)
	}
}

func TestMapOnlyTouchesLoaded(t *testing.T) {
	loaded := NewLoaded[int, string](42)
	mapped := Map(loaded, strconv.Itoa)
	if v, ok := mapped.Value(); !ok || v != "42" {
		t.Fatalf("expected mapped value \"42\", got %q (ok=%v)", v, ok)
	}

	failed := NewError[int, string]("denied")
	called := false
	mappedErr := Map(failed, func(int) string {
		called = true
		return ""
	})
	if called {
		t.Fatal("expected map function not to run for error results")
	}
	if e, ok := mappedErr.Err(); !ok || e != "denied" {
		t.Fatalf("expected error to pass through, got %q", e)
	}

	var pending Result[int, string]
	if !Map(pending, strconv.Itoa).IsPending() {
		t.Fatal("expected pending to pass through map")
	}
}
