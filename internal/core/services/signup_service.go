package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/metrics"
	"willeasy/internal/pkg/validation"

	"github.com/pkg/errors"
)

// pendingSignup is an identity waiting for OTP confirmation and a password
type pendingSignup struct {
	Username   string
	NationalID string
	TaxID      string
	ExpiresAt  time.Time
}

// StartResult is returned by SignupService.Start
type StartResult struct {
	SignupID  string
	ExpiresAt time.Time
	// DevCode carries the OTP back to the caller when no SMS gateway exists.
	// Empty unless the service was built with exposeCode.
	DevCode string
}

// CompleteInput represents the final signup step
type CompleteInput struct {
	SignupID        string
	Password        string
	ConfirmPassword string
	TermsAccepted   bool
}

// SignupService runs the three step signup: identity, OTP, password
type SignupService struct {
	accountRepo repositories.AccountRepository
	accounts    *AccountService
	otp         *OTPService
	ids         idgen.Generator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	exposeCode  bool

	mu      sync.Mutex
	pending map[string]*pendingSignup
}

// NewSignupService creates a new signup service
func NewSignupService(
	accountRepo repositories.AccountRepository,
	accounts *AccountService,
	otp *OTPService,
	ids idgen.Generator,
	m *metrics.Metrics,
	logger *slog.Logger,
	exposeCode bool,
) *SignupService {
	return &SignupService{
		accountRepo: accountRepo,
		accounts:    accounts,
		otp:         otp,
		ids:         ids,
		metrics:     m,
		logger:      logger,
		exposeCode:  exposeCode,
		pending:     make(map[string]*pendingSignup),
	}
}

// Start checks the identity fields and issues an OTP
func (s *SignupService) Start(ctx context.Context, id validation.Identity) (*StartResult, error) {
	if err := validation.CheckIdentity(id); err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByUsername(ctx, id.Username)
	if err != nil {
		return nil, systemError(s.logger, "signup start", err)
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	signupID := s.ids.NewID()
	code, expiresAt, err := s.otp.Generate(signupID)
	if err != nil {
		return nil, systemError(s.logger, "signup start", err)
	}

	s.mu.Lock()
	s.pending[signupID] = &pendingSignup{
		Username:   id.Username,
		NationalID: id.NationalID,
		TaxID:      id.TaxID,
		ExpiresAt:  expiresAt,
	}
	s.mu.Unlock()

	s.metrics.IncOTPIssued()
	s.logger.Info("otp issued", "signup_id", signupID, "username", id.Username)

	result := &StartResult{SignupID: signupID, ExpiresAt: expiresAt}
	if s.exposeCode {
		result.DevCode = code
	}
	return result, nil
}

// VerifyOTP confirms the code sent for signupID
func (s *SignupService) VerifyOTP(_ context.Context, signupID, code string) error {
	if _, ok := s.lookup(signupID); !ok {
		return domain.ErrSignupNotFound
	}

	if err := s.otp.Verify(signupID, code); err != nil {
		if errors.Is(err, domain.ErrOTPExpired) || errors.Is(err, domain.ErrOTPAttempts) || errors.Is(err, domain.ErrSignupNotFound) {
			s.drop(signupID)
		}
		return err
	}
	return nil
}

// Complete sets the password and registers the account
func (s *SignupService) Complete(ctx context.Context, input CompleteInput) (*domain.Account, error) {
	p, ok := s.lookup(input.SignupID)
	if !ok {
		return nil, domain.ErrSignupNotFound
	}
	if !s.otp.IsVerified(input.SignupID) {
		return nil, domain.ErrOTPNotVerified
	}
	if err := validation.CheckPassword(input.Password, input.ConfirmPassword, input.TermsAccepted); err != nil {
		return nil, err
	}

	account, err := s.accounts.Register(ctx, RegisterInput{
		Username:   p.Username,
		Password:   input.Password,
		NationalID: p.NationalID,
		TaxID:      p.TaxID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			s.drop(input.SignupID)
		}
		return nil, err
	}

	s.drop(input.SignupID)
	return account, nil
}

// PurgeExpired drops signups and OTP entries past their expiry
func (s *SignupService) PurgeExpired(now time.Time) int {
	s.mu.Lock()
	purged := 0
	for id, p := range s.pending {
		if !now.Before(p.ExpiresAt) {
			delete(s.pending, id)
			purged++
		}
	}
	s.mu.Unlock()

	s.otp.PurgeExpired()
	return purged
}

// Pending returns the number of signups in progress
func (s *SignupService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *SignupService) lookup(signupID string) (pendingSignup, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[signupID]
	if !ok {
		return pendingSignup{}, false
	}
	return *p, true
}

func (s *SignupService) drop(signupID string) {
	s.mu.Lock()
	delete(s.pending, signupID)
	s.mu.Unlock()
	s.otp.Clear(signupID)
}
