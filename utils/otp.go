package utils

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore holds the one-time codes issued for admin provisioning, keyed by
// email. Codes live in process memory only and expire after the configured
// TTL. Verification is an atomic compare-and-delete, so a correct code can
// be consumed exactly once.
type OTPStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]otpEntry
}

// NewOTPStore creates an OTP store whose codes expire after ttl.
func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{
		ttl:     ttl,
		entries: make(map[string]otpEntry),
	}
}

// GenOTPCode generates a random 6-digit code as a zero-padded string.
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%06d", n%1000000), nil
}

// Issue generates a fresh code for email and stores it, overwriting any
// prior unconsumed code for the same address.
func (s *OTPStore) Issue(email string) (string, error) {
	code, err := GenOTPCode()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.entries[email] = otpEntry{code: code, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return code, nil
}

// Verify checks code against the stored entry for email. On a match the
// entry is deleted and Verify reports true. A mismatch leaves the entry in
// place so a subsequent correct attempt still succeeds. Expired entries are
// pruned and never match.
func (s *OTPStore) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[email]
	if !ok {
		return false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false
	}
	if entry.code != code {
		return false
	}
	delete(s.entries, email)
	return true
}

// Pending reports whether an unexpired code exists for email.
func (s *OTPStore) Pending(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	return ok && time.Now().Before(entry.expiresAt)
}
