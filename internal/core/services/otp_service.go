package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"willeasy/internal/core/domain"
)

// OTPConfig controls code generation and verification
type OTPConfig struct {
	Digits      int
	TTL         time.Duration
	MaxAttempts int
	FixedCode   string // used instead of a random code when set (development)
}

// DefaultOTPConfig is 6 random digits valid for 5 minutes with 5 attempts
var DefaultOTPConfig = OTPConfig{
	Digits:      6,
	TTL:         5 * time.Minute,
	MaxAttempts: 5,
}

// OTPEntry represents a single OTP record in memory
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int // wrong codes entered so far
	Verified  bool
}

// OTPService handles OTP generation and verification
type OTPService struct {
	cfg   OTPConfig
	store map[string]*OTPEntry // key = signup ID
	mu    sync.Mutex
	now   func() time.Time
}

// NewOTPService creates a new OTP service
func NewOTPService(cfg OTPConfig) *OTPService {
	if cfg.Digits <= 0 {
		cfg.Digits = DefaultOTPConfig.Digits
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultOTPConfig.TTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultOTPConfig.MaxAttempts
	}
	return &OTPService{
		cfg:   cfg,
		store: make(map[string]*OTPEntry),
		now:   time.Now,
	}
}

// Generate issues a fresh code for key, replacing any previous one
func (s *OTPService) Generate(key string) (string, time.Time, error) {
	code := s.cfg.FixedCode
	if code == "" {
		var err error
		code, err = generateSecureOTP(s.cfg.Digits)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("generate otp: %w", err)
		}
	}

	expiresAt := s.now().Add(s.cfg.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[key] = &OTPEntry{
		Code:      code,
		ExpiresAt: expiresAt,
	}
	return code, expiresAt, nil
}

// Verify checks code against the entry for key. Expired and exhausted
// entries are discarded; a verified entry stays verified.
func (s *OTPService) Verify(key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[key]
	if !ok {
		return domain.ErrSignupNotFound
	}

	if !s.now().Before(entry.ExpiresAt) {
		delete(s.store, key)
		return domain.ErrOTPExpired
	}

	if entry.Verified {
		return nil
	}

	if entry.Attempts >= s.cfg.MaxAttempts {
		delete(s.store, key)
		return domain.ErrOTPAttempts
	}

	entry.Attempts++
	if entry.Code != strings.TrimSpace(code) {
		if entry.Attempts >= s.cfg.MaxAttempts {
			delete(s.store, key)
			return domain.ErrOTPAttempts
		}
		return fmt.Errorf("%w (%d attempts left)", domain.ErrOTPInvalid, s.cfg.MaxAttempts-entry.Attempts)
	}

	entry.Verified = true
	return nil
}

// IsVerified checks if the code for key was verified and is still live
func (s *OTPService) IsVerified(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[key]
	if !ok {
		return false
	}
	return entry.Verified && s.now().Before(entry.ExpiresAt)
}

// Clear removes the entry for key
func (s *OTPService) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, key)
}

// PurgeExpired removes expired entries and returns how many were dropped
func (s *OTPService) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for key, entry := range s.store {
		if !now.Before(entry.ExpiresAt) {
			delete(s.store, key)
			purged++
		}
	}
	return purged
}

// generateSecureOTP generates a cryptographically secure random OTP
func generateSecureOTP(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
