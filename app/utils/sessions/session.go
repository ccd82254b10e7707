package sessions

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	sessionRecordName = "petshop-session"
)

// SessionStore is the device-local record of the logged-in customer.
type SessionStore interface {
	GetCustomerID() (uint, bool)
	SetCustomerID(customerID uint) error
	Clear() error
}

type sessionRecord struct {
	CustomerID uint  `json:"customer_id"`
	IssuedAt   int64 `json:"issued_at"`
}

// FileSessionStore keeps the session in a signed and encrypted file so it
// survives restarts. The file is read once when the store is opened.
type FileSessionStore struct {
	mu         sync.RWMutex
	path       string
	codec      *securecookie.SecureCookie
	customerID uint
}

func NewFileSessionStore(path string, authKey, encKey []byte, maxAge time.Duration) (*FileSessionStore, error) {
	codec := securecookie.New(authKey, encKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge / time.Second))

	s := &FileSessionStore{path: path, codec: codec}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileSessionStore) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}

	var record sessionRecord
	if err := s.codec.Decode(sessionRecordName, strings.TrimSpace(string(raw)), &record); err != nil {
		// Expired, tampered or written with other keys: start logged out.
		log.Printf("FileSessionStore.load: discarding session file %s: %v", s.path, err)
		return s.remove()
	}

	s.customerID = record.CustomerID
	return nil
}

func (s *FileSessionStore) GetCustomerID() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customerID, s.customerID != 0
}

func (s *FileSessionStore) SetCustomerID(customerID uint) error {
	if customerID == 0 {
		return s.Clear()
	}

	encoded, err := s.codec.Encode(sessionRecordName, sessionRecord{
		CustomerID: customerID,
		IssuedAt:   time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	s.customerID = customerID
	return nil
}

// Clear removes the session file, then forgets the customer. The customer
// stays logged in when the file cannot be removed.
func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.remove(); err != nil {
		return err
	}
	s.customerID = 0
	return nil
}

func (s *FileSessionStore) remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file %s: %w", s.path, err)
	}
	return nil
}

// MemorySessionStore is a non-durable SessionStore for tests and one-shot runs.
type MemorySessionStore struct {
	mu         sync.RWMutex
	customerID uint
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (m *MemorySessionStore) GetCustomerID() (uint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.customerID, m.customerID != 0
}

func (m *MemorySessionStore) SetCustomerID(customerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customerID = customerID
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customerID = 0
	return nil
}
