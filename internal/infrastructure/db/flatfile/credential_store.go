// Package flatfile implements the credential store and ticket ledger on
// append-only text files, mirroring the line-oriented formats the counter
// originally used. Single-process access is assumed; a mutex serialises the
// read-then-append sequences within the process.
package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ticketec/order-system/internal/core/domain"
)

const credentialDelimiter = "|"

// CredentialStore persists users as one delimited record per line:
//
//	username|password_hash|created_at|id
//
// The id is stored in the record so it stays stable even when earlier lines
// are corrupted; legacy three-field records are still readable and get
// positional ids. Malformed lines are skipped on read so a corrupt record
// never blocks login for everyone else.
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

// NewCredentialStore opens (creating if necessary) the credentials file.
func NewCredentialStore(path string) (*CredentialStore, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open credentials file: %v", domain.ErrStorageUnavailable, err)
	}
	_ = f.Close()
	return &CredentialStore{path: path}, nil
}

// FindByUsername scans the file for an exact, case-sensitive username match.
func (s *CredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(username)
}

// Create appends a new credential record. The duplicate check runs under the
// same lock as the append so two registrations in one process cannot race.
func (s *CredentialStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.findLocked(user.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open credentials file: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	id := s.nextIDLocked()
	record := strings.Join([]string{
		user.Username,
		user.PasswordHash,
		user.CreatedAt.UTC().Format(time.RFC3339),
		strconv.FormatInt(id, 10),
	}, credentialDelimiter)
	if _, err := f.WriteString(record + "\n"); err != nil {
		return nil, fmt.Errorf("%w: append credential: %v", domain.ErrStorageUnavailable, err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (s *CredentialStore) findLocked(username string) (*domain.User, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: read credentials file: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	var position int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		u, ok := parseCredentialRecord(line, position+1)
		if !ok {
			// corrupt record, skip
			continue
		}
		position++
		if u.Username != username {
			continue
		}
		return u, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan credentials file: %v", domain.ErrStorageUnavailable, err)
	}
	return nil, domain.ErrUserNotFound
}

// nextIDLocked returns max(stored ids)+1 over the well-formed records.
func (s *CredentialStore) nextIDLocked() int64 {
	f, err := os.Open(s.path)
	if err != nil {
		return 1
	}
	defer f.Close()

	var maxID, position int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		u, ok := parseCredentialRecord(line, position+1)
		if !ok {
			continue
		}
		position++
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}

// parseCredentialRecord parses one record line. Legacy three-field records
// carry no id and fall back to position, their original numbering.
func parseCredentialRecord(line string, position int64) (*domain.User, bool) {
	parts := strings.Split(line, credentialDelimiter)
	if (len(parts) != 3 && len(parts) != 4) || parts[0] == "" {
		return nil, false
	}

	u := &domain.User{
		ID:           position,
		Username:     parts[0],
		PasswordHash: parts[1],
	}
	if created, err := time.Parse(time.RFC3339, parts[2]); err == nil {
		u.CreatedAt = created
	}
	if len(parts) == 4 {
		id, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		u.ID = id
	}
	return u, true
}
