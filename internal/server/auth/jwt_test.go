package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sparks/noteapp/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	email := "a@x.com"

	tok, err := GenerateToken(email, secret, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotSubject, err := GetSubjectFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetSubjectFromToken error: %v", err)
	}
	if gotSubject != email {
		t.Fatalf("subject mismatch: got %q want %q", gotSubject, email)
	}
}

func TestGetSubjectFromToken_NoExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	// issued long ago, still verifiable: no exp claim is set
	tok, err := GenerateToken("old@x.com", secret, time.Now().Add(-24*365*time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetSubjectFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetSubjectFromToken error: %v", err)
	}
	if got != "old@x.com" {
		t.Fatalf("subject mismatch: got %q", got)
	}
}

func TestGetSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u@x.com", []byte("right-secret"), time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetSubjectFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetSubjectFromToken_Tampered(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("u@x.com", secret, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// flip one byte in each segment of the token
	for _, pos := range []int{1, len(tok) / 2, len(tok) - 2} {
		b := []byte(tok)
		if b[pos] != 'A' {
			b[pos] = 'A'
		} else {
			b[pos] = 'B'
		}
		if _, err := GetSubjectFromToken(string(b), secret); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("tampered token at %d: expected common.ErrInvalidToken, got %v", pos, err)
		}
	}
}

func TestGetSubjectFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not.a.jwt", strings.Repeat("x", 64)} {
		if _, err := GetSubjectFromToken(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("malformed token %q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}
