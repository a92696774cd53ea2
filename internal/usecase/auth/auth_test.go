package auth

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := IssueToken(&models.User{ID: 42, Role: "admin"}, "s3cret", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(tok, "s3cret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, _ := IssueToken(&models.User{ID: 1, Role: "staff"}, "s3cret", time.Now().Add(-2*TokenTTL))
	if _, err := ParseToken(tok, "s3cret"); err == nil {
		t.Fatal("expired token accepted")
	}
}
