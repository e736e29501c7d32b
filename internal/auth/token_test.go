package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tk := NewTokens("test-secret", time.Hour)

	signed, err := tk.Issue("u-1", "buyer", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := tk.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != "buyer" || claims.Name != "Alice" {
		t.Fatalf("claims do not match issue inputs: %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	tk := NewTokens("test-secret", -time.Minute)
	signed, err := tk.Issue("u-1", "buyer", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tk.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Issue("u-1", "seller", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokens("secret-b", time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tk := NewTokens("test-secret", time.Hour)
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tk.Verify(bad); err != ErrInvalidToken {
			t.Fatalf("want ErrInvalidToken for %q, got %v", bad, err)
		}
	}
}
