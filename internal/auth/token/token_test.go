package token

import (
	"testing"
	"time"

	"github.com/signdesk/signdesk/internal/clock"
	"github.com/signdesk/signdesk/internal/config"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func newManager(t *testing.T, clk clock.Clock) *Manager {
	t.Helper()
	m, err := New(config.Config{AuthJWTSecret: "test-secret", AuthTokenTTL: 1}, clk)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestIssueAndParse(t *testing.T) {
	officeID := "109951162777600"
	m := newManager(t, clock.NewFakeClock(testNow))

	signed, expiresAt, err := m.Issue("42", "agent@example.com", "AGENT", &officeID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("expected expiry one hour out, got %v", expiresAt)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "42" || claims.Email != "agent@example.com" || claims.Role != "AGENT" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.OfficeID == nil || *claims.OfficeID != officeID {
		t.Fatal("office id claim lost in round trip")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	clk := clock.NewFakeClock(testNow)
	m := newManager(t, clk)

	signed, _, err := m.Issue("42", "agent@example.com", "AGENT", nil)
	if err != nil {
		t.Fatal(err)
	}

	clk.Advance(2 * time.Hour)
	if _, err := m.Parse(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	clk := clock.NewFakeClock(testNow)
	m := newManager(t, clk)

	other, err := New(config.Config{AuthJWTSecret: "other-secret", AuthTokenTTL: 1}, clk)
	if err != nil {
		t.Fatal(err)
	}
	signed, _, err := other.Issue("42", "agent@example.com", "AGENT", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Parse(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New(config.Config{}, clock.NewFakeClock(testNow)); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}
