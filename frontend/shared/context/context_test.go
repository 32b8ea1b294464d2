package context

import (
	"context"
	"testing"

	"keepstock/models"
)

func TestSessionRoundTripAndBranchScope(t *testing.T) {
	store := models.Session{ID: "s1", User: models.User{Username: "store1", Role: "store", Branch: "Branch 1"}}
	ctx := NewContextWithSession(context.Background(), store)
	got, ok := GetSessionFromContext(ctx)
	if !ok || got.ID != "s1" {
		t.Fatalf("expected session in context, got %+v ok=%v", got, ok)
	}
	if _, ok := GetSessionFromContext(context.Background()); ok {
		t.Fatalf("expected no session in bare context")
	}

	if b := ScopeBranch(store, "Branch 2"); b != "Branch 1" {
		t.Fatalf("store users are pinned to their branch, got %q", b)
	}
	admin := models.Session{User: models.User{Username: "admin", Role: "admin"}}
	if b := ScopeBranch(admin, " Branch 2 "); b != "Branch 2" {
		t.Fatalf("expected requested branch, got %q", b)
	}
	if b := ScopeBranch(admin, ""); b != "" {
		t.Fatalf("expected all branches, got %q", b)
	}
}
