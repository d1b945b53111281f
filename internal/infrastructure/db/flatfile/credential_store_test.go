package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ticketec/order-system/internal/core/domain"
)

func newTestCredentialStore(t *testing.T) (*CredentialStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usuarios.txt")
	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store, path
}

func TestCredentialStore_CreateAndFind(t *testing.T) {
	store, path := newTestCredentialStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &domain.User{
		Username:     "ana",
		PasswordHash: "$2a$10$examplehashexamplehashexamplehashexampleha",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	found, err := store.FindByUsername(ctx, "ana")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Username != "ana" || found.PasswordHash != created.PasswordHash {
		t.Fatalf("unexpected record: %+v", found)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at not round-tripped: %v vs %v", found.CreatedAt, created.CreatedAt)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	line := strings.TrimSpace(string(raw))
	if line != "ana|$2a$10$examplehashexamplehashexamplehashexampleha|2026-01-02T03:04:05Z|1" {
		t.Fatalf("unexpected record format: %q", line)
	}
}

func TestCredentialStore_DuplicateUsername(t *testing.T) {
	store, _ := newTestCredentialStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h2", CreatedAt: time.Now().UTC()}); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCredentialStore_CaseSensitiveUsernames(t *testing.T) {
	store, _ := newTestCredentialStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, &domain.User{Username: "Ana", PasswordHash: "h", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.FindByUsername(ctx, "ana"); err != domain.ErrUserNotFound {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
	if _, err := store.Create(ctx, &domain.User{Username: "ana", PasswordHash: "h", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("lowercase variant should register: %v", err)
	}
}

func TestCredentialStore_NotFound(t *testing.T) {
	store, _ := newTestCredentialStore(t)

	if _, err := store.FindByUsername(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.txt")
	content := "broken line without delimiters\n" +
		"carol|hash3|2026-01-01T00:00:00Z\n" +
		"|missing|2026-01-01T00:00:00Z\n" +
		"too|many|fields|here\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewCredentialStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	found, err := store.FindByUsername(context.Background(), "carol")
	if err != nil {
		t.Fatalf("expected carol found despite corrupt neighbours: %v", err)
	}
	if found.PasswordHash != "hash3" {
		t.Fatalf("unexpected record: %+v", found)
	}
}

func TestCredentialStore_StoredIDsSurviveCorruptNeighbours(t *testing.T) {
	store, path := newTestCredentialStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, &domain.User{Username: "ana", PasswordHash: "h1", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create ana: %v", err)
	}
	bob, err := store.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h2", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}
	if bob.ID != 2 {
		t.Fatalf("expected bob id 2, got %d", bob.ID)
	}

	// Corrupt ana's record in place; bob's id must not shift.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	lines[0] = "corrupted beyond recognition"
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	found, err := store.FindByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("find bob: %v", err)
	}
	if found.ID != 2 {
		t.Fatalf("bob was renumbered to %d", found.ID)
	}

	// The next registration continues after the highest stored id.
	carol, err := store.Create(ctx, &domain.User{Username: "carol", PasswordHash: "h3", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("create carol: %v", err)
	}
	if carol.ID != 3 {
		t.Fatalf("expected carol id 3, got %d", carol.ID)
	}
}

func TestCredentialStore_FileNeverContainsRawPassword(t *testing.T) {
	store, path := newTestCredentialStore(t)

	// the store only ever receives hashes; assert the invariant end to end
	if _, err := store.Create(context.Background(), &domain.User{Username: "dave", PasswordHash: "hashed-value", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "dave|dave") {
		t.Fatalf("file appears to contain raw credentials: %s", raw)
	}
	if !strings.Contains(string(raw), "hashed-value") {
		t.Fatalf("hash missing from file: %s", raw)
	}
}
