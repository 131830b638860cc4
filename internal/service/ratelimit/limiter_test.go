package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowIndependentKeys(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatal("first a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("second a should be limited")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("b has its own bucket")
	}
}
