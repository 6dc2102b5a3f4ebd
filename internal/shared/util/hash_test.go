package util

import (
	"strings"
	"testing"
)

func TestHashUserKeyIsStableAndSafe(t *testing.T) {
	a := HashUserKey("guest:../../etc/passwd")
	b := HashUserKey("guest:../../etc/passwd")
	if a != b {
		t.Fatalf("hash must be deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if strings.ContainsAny(a, "/\\.") {
		t.Fatalf("hash must be filesystem safe: %q", a)
	}
	if HashUserKey("user-1") == HashUserKey("user-2") {
		t.Fatalf("different inputs must not collide")
	}
}
