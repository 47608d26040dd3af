package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/katalog/internal/db"
)

func TestRevokeToken(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if revoked, err := IsTokenRevoked(ctx, database, "session-a"); err != nil || revoked {
		t.Fatalf("fresh session: revoked=%v err=%v", revoked, err)
	}

	for range 2 {
		if err := RevokeToken(ctx, database, "session-a", time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("RevokeToken: %v", err)
		}
	}

	if revoked, err := IsTokenRevoked(ctx, database, "session-a"); err != nil || !revoked {
		t.Errorf("logged out session: revoked=%v err=%v", revoked, err)
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "session-b"); revoked {
		t.Error("other session must stay valid")
	}
}

func TestPurgeExpiredTokens(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	now := time.Now()

	if err := RevokeToken(ctx, database, "old", now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := RevokeToken(ctx, database, "current", now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	n, err := PurgeExpiredTokens(ctx, database, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("PurgeExpiredTokens: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "current"); !revoked {
		t.Error("unexpired revocation was purged")
	}
}

func TestRevokeTokenPurgesExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := RevokeToken(ctx, database, "stale", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if revoked, _ := IsTokenRevoked(ctx, database, "stale"); revoked {
		t.Error("expired revocation should be purged on the next logout")
	}
}
