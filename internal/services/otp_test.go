package services

import (
	"testing"
	"time"
)

func TestOTPStoreSingleUse(t *testing.T) {
	s := NewOTPStore(6, time.Minute, "")
	code, err := s.Issue("0700000000")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("Issue: expected 6 digits, got %q", code)
	}
	if s.Consume("0700000000", "not-it") {
		t.Fatalf("Consume: wrong code accepted")
	}
	if !s.Consume("0700000000", code) {
		t.Fatalf("Consume: right code rejected")
	}
	if s.Consume("0700000000", code) {
		t.Fatalf("Consume: code accepted twice")
	}
}

func TestOTPStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewOTPStore(4, time.Minute, "1234")
	s.now = func() time.Time { return now }

	if _, err := s.Issue("0700000000"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if s.Consume("0700000000", "1234") {
		t.Fatalf("Consume: expired code accepted")
	}
}

func TestOTPStoreReissueReplaces(t *testing.T) {
	s := NewOTPStore(6, time.Minute, "")
	first, _ := s.Issue("0700000000")
	second, _ := s.Issue("0700000000")
	if first != second && s.Consume("0700000000", first) {
		t.Fatalf("Consume: replaced code still accepted")
	}
	if !s.Consume("0700000000", second) {
		t.Fatalf("Consume: latest code rejected")
	}
}
