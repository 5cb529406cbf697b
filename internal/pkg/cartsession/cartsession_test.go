package cartsession

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestGenerateIsValid(t *testing.T) {
	id := Generate("cart")
	if !strings.HasPrefix(id, "cart_") {
		t.Fatalf("unexpected prefix: %s", id)
	}
	if !IsValid(id) {
		t.Fatalf("generated id must be valid: %s", id)
	}
}

func TestGenerateDefaultPrefix(t *testing.T) {
	id := Generate("")
	if !strings.HasPrefix(id, DefaultPrefix+"_") {
		t.Fatalf("expected default prefix, got %s", id)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := Generate("cart")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate session id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsValidRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"cart",
		"cart_",
		"cart_123",
		"cart_notanumber_abcdef",
		"cart_123_zz-not-hex",
		"cart_-5_abcdef",
	}
	for _, id := range cases {
		if IsValid(id) {
			t.Fatalf("expected %q to be invalid", id)
		}
	}
}

func TestIsFresh(t *testing.T) {
	fresh := fmt.Sprintf("cart_%d_abcdef", time.Now().UnixMilli())
	if !IsFresh(fresh, DefaultMaxAge) {
		t.Fatal("just-generated session must be fresh")
	}

	stale := fmt.Sprintf("cart_%d_abcdef", time.Now().Add(-31*time.Minute).UnixMilli())
	if IsFresh(stale, DefaultMaxAge) {
		t.Fatal("31-minute-old session must be stale")
	}

	future := fmt.Sprintf("cart_%d_abcdef", time.Now().Add(5*time.Minute).UnixMilli())
	if IsFresh(future, DefaultMaxAge) {
		t.Fatal("session from the future must not be fresh")
	}

	if IsFresh("garbage", DefaultMaxAge) {
		t.Fatal("malformed session must not be fresh")
	}
}

func TestIsFreshBoundary(t *testing.T) {
	almost := fmt.Sprintf("cart_%d_abcdef", time.Now().Add(-29*time.Minute).UnixMilli())
	if !IsFresh(almost, DefaultMaxAge) {
		t.Fatal("29-minute-old session must still be fresh")
	}
}
