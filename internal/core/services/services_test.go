package services

import (
	"io"
	"log/slog"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/metrics"
	"willeasy/internal/pkg/password"

	"golang.org/x/crypto/bcrypt"
)

// fakeClock is a settable time source
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// testEnv wires every service over the in-memory repositories
type testEnv struct {
	clock    *fakeClock
	metrics  *metrics.Metrics
	accounts repositories.AccountRepository
	wills    repositories.DocumentRepository
	sessions repositories.SessionRepository

	accountSvc *AccountService
	willSvc    *WillService
	otpSvc     *OTPService
	signupSvc  *SignupService
	sessionSvc *SessionService
	cronSvc    *CronService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(otpCfg OTPConfig) *testEnv {
	// session tokens are checked against the wall clock, so start from it
	clock := &fakeClock{t: time.Now().Truncate(time.Second)}
	logger := discardLogger()
	m := metrics.New()

	env := &testEnv{
		clock:    clock,
		metrics:  m,
		accounts: repositories.NewMemoryAccountRepository(),
		wills:    repositories.NewMemoryDocumentRepository(),
		sessions: repositories.NewMemorySessionRepository(),
	}

	env.accountSvc = NewAccountService(env.accounts, password.NewHasher(bcrypt.MinCost), idgen.NewUUIDGenerator("user-"), m, logger)
	env.accountSvc.now = clock.Now

	env.willSvc = NewWillService(env.wills, idgen.NewUUIDGenerator("will-"), m, logger)
	env.willSvc.now = clock.Now

	env.otpSvc = NewOTPService(otpCfg)
	env.otpSvc.now = clock.Now

	env.signupSvc = NewSignupService(env.accounts, env.accountSvc, env.otpSvc, idgen.NewUUIDGenerator("signup-"), m, logger, true)

	env.sessionSvc = NewSessionService(env.sessions, idgen.NewUUIDGenerator(""), "test-secret", time.Hour, logger)
	env.sessionSvc.now = clock.Now

	env.cronSvc = NewCronService(env.sessionSvc, env.signupSvc, m, logger, "")
	env.cronSvc.now = clock.Now

	return env
}
