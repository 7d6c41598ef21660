package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SGP-2025/attendance-service/internal/models"
)

func testUser() *models.User {
	return &models.User{
		Username:    "alice",
		Role:        models.RoleTeacher,
		DisplayName: "Alice",
	}
}

func TestNew(t *testing.T) {
	sess := New(testUser(), time.Hour)

	if sess.ID == "" {
		t.Error("session must get a random ID")
	}
	if sess.Username != "alice" || sess.Role != models.RoleTeacher || sess.DisplayName != "Alice" {
		t.Errorf("user fields not carried over: %+v", sess)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Errorf("ExpiresAt %v not after CreatedAt %v", sess.ExpiresAt, sess.CreatedAt)
	}
	if other := New(testUser(), time.Hour); other.ID == sess.ID {
		t.Error("two sessions must not share an ID")
	}
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sess := New(testUser(), time.Hour)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != sess.Username || got.ID != sess.ID {
		t.Errorf("Get = %+v, want %+v", got, sess)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty ID: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ExpiredSessionIsGone(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := New(testUser(), 50*time.Millisecond)
	if err := store.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}

	time.Sleep(80 * time.Millisecond)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestMemoryStore_RejectsInvalidSaves(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, Session{}); err == nil {
		t.Error("saving a session without ID must fail")
	}

	dead := New(testUser(), time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Save(ctx, dead); err == nil {
		t.Error("saving an already expired session must fail")
	}
}

func TestMemoryStore_DeleteUnknownIsNoop(t *testing.T) {
	if err := NewMemoryStore().Delete(context.Background(), "nope"); err != nil {
		t.Errorf("Delete of unknown ID must succeed, got %v", err)
	}
}
