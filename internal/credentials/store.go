// Package credentials implements the flat username/password store.
//
// The backing file holds one "username, password" pair per line. Passwords are
// stored as given unless hashing is enabled, in which case new registrations are
// written as bcrypt hashes. Authentication accepts both forms, so a file may mix
// legacy plaintext entries with hashed ones.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Delimiter separates the username and password of a record
const Delimiter = ", "

var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUserExists       = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidField     = errors.New("username and password must not contain \", \" or line breaks")
)

// Store is the in-memory credential mapping backed by a file
type Store struct {
	mu    sync.Mutex
	path  string
	found bool
	hash  bool
	users map[string]string
	order []string
}

// Option configures a Store
type Option func(*Store)

// WithHashing stores bcrypt hashes instead of plaintext for new registrations
func WithHashing(enabled bool) Option {
	return func(s *Store) { s.hash = enabled }
}

// Load reads the credential file. A missing file yields an empty store;
// Found reports whether the file existed.
func Load(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:  path,
		users: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rereads the backing file, picking up users registered by other
// processes. On error the store keeps its previous content.
func (s *Store) Reload() error {
	fresh := &Store{path: s.path, users: make(map[string]string)}
	if err := fresh.read(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.found = fresh.found
	s.users = fresh.users
	s.order = fresh.order
	return nil
}

func (s *Store) read() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open credentials: %w", err)
	}
	defer f.Close()
	s.found = true

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		username, password, ok := strings.Cut(line, Delimiter)
		if !ok || username == "" {
			log.Printf("warning: skipping malformed credential on line %d of %s", lineNo, s.path)
			continue
		}
		s.put(username, password)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	return nil
}

func (s *Store) put(username, password string) {
	if _, ok := s.users[username]; !ok {
		s.order = append(s.order, username)
	}
	s.users[username] = password
}

// Found reports whether the backing file existed when the store was loaded
func (s *Store) Found() bool {
	return s.found
}

// Append persists one username/password pair without checking uniqueness
func (s *Store) Append(username, password string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open credentials: %w", err)
	}
	defer f.Close()

	// A hand-edited file may lack the final newline
	prefix := ""
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, info.Size()-1); err == nil && last[0] != '\n' {
			prefix = "\n"
		}
	}

	if _, err := fmt.Fprintf(f, "%s%s%s%s\n", prefix, username, Delimiter, password); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	s.found = true
	return nil
}

// Register validates and stores a new user. State is unchanged on failure.
func (s *Store) Register(username, password, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" {
		return ErrEmptyUsername
	}
	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if !validField(username) || !validField(password) {
		return ErrInvalidField
	}

	stored := password
	if s.hash {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		stored = string(hashed)
	}

	if err := s.Append(username, stored); err != nil {
		return err
	}
	s.put(username, stored)
	return nil
}

// Authenticate reports whether the pair matches a stored credential
func (s *Store) Authenticate(username, password string) bool {
	s.mu.Lock()
	stored, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return false
	}

	if isHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored == password
}

// Exists reports whether a username is registered
func (s *Store) Exists(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok
}

// Usernames returns registered usernames in file order
func (s *Store) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of registered users
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func validField(v string) bool {
	return !strings.Contains(v, Delimiter) && !strings.ContainsAny(v, "\r\n")
}

// isHash recognises bcrypt output ($2a$, $2b$, $2y$)
func isHash(stored string) bool {
	return len(stored) == 60 && strings.HasPrefix(stored, "$2")
}
