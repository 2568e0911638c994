package store

import (
	"context"
	"errors"
	"testing"

	"github.com/fadhilmr/gudang/internal/db"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, database, "budi", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Username != "budi" {
		t.Errorf("expected username 'budi', got %q", u.Username)
	}

	got, err := GetUserByUsername(ctx, database, "budi")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Errorf("expected user %d, got %+v", u.ID, got)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "budi", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := CreateUser(ctx, database, "budi", "other")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, "budi", "hash")
	CreateUser(ctx, database, "siti", "hash")

	users, err := ListUsers(ctx, database)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
