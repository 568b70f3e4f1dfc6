package services

import (
	"context"
	"testing"
	"time"

	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/validation"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validIdentity = validation.Identity{
	Username:   "9876543210",
	NationalID: "111122223333",
	TaxID:      "LMNOP9012Q",
}

func newSignupEnv() *testEnv {
	env := newTestEnv(OTPConfig{FixedCode: "1234"})
	return env
}

func TestSignupService_FullFlow(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)
	assert.NotEmpty(t, started.SignupID)
	assert.Equal(t, "1234", started.DevCode)
	assert.Equal(t, env.clock.Now().Add(5*time.Minute), started.ExpiresAt)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.OTPIssued))

	require.NoError(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"))

	account, err := env.signupSvc.Complete(ctx, CompleteInput{
		SignupID:        started.SignupID,
		Password:        "test123",
		ConfirmPassword: "test123",
		TermsAccepted:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "9876543210", account.Username)
	assert.Equal(t, "111122223333", account.NationalID)
	assert.Equal(t, "LMNOP9012Q", account.TaxID)
	assert.Equal(t, domain.RolePreparer, account.Role)
	assert.Empty(t, account.SecretHash)
	assert.Zero(t, env.signupSvc.Pending())

	_, err = env.accountSvc.Authenticate(ctx, "9876543210", "test123")
	assert.NoError(t, err)

	// a finished signup cannot be replayed
	_, err = env.signupSvc.Complete(ctx, CompleteInput{
		SignupID:        started.SignupID,
		Password:        "test123",
		ConfirmPassword: "test123",
		TermsAccepted:   true,
	})
	assert.ErrorIs(t, err, domain.ErrSignupNotFound)
}

func TestSignupService_WrongCodesAfterVerifyKeepSignup(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)
	require.NoError(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"))

	for i := 0; i < DefaultOTPConfig.MaxAttempts+1; i++ {
		assert.NoError(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "0000"))
	}
	assert.Equal(t, 1, env.signupSvc.Pending())

	_, err = env.signupSvc.Complete(ctx, CompleteInput{
		SignupID:        started.SignupID,
		Password:        "test123",
		ConfirmPassword: "test123",
		TermsAccepted:   true,
	})
	assert.NoError(t, err)
}

func TestSignupService_StartRejectsFirstBadField(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	tests := []struct {
		name  string
		id    validation.Identity
		field string
	}{
		{
			name:  "bad username wins over bad ids",
			id:    validation.Identity{Username: "bad-email", NationalID: "12345", TaxID: "abcde1234f"},
			field: "username",
		},
		{
			name:  "bad national id",
			id:    validation.Identity{Username: "user@example.com", NationalID: "12345", TaxID: "abcde1234f"},
			field: "aadhaar",
		},
		{
			name:  "bad tax id",
			id:    validation.Identity{Username: "user@example.com", NationalID: "123456789012", TaxID: "abcde1234f"},
			field: "pan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.signupSvc.Start(ctx, tt.id)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Zero(t, env.signupSvc.Pending())
}

func TestSignupService_StartRejectsTakenUsername(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()
	seedPreparer(t, env)

	_, err := env.signupSvc.Start(ctx, validation.Identity{
		Username:   "user@will.com",
		NationalID: "123456789012",
		TaxID:      "ABCDE1234F",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestSignupService_CompleteRequiresVerifiedOTP(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)

	_, err = env.signupSvc.Complete(ctx, CompleteInput{
		SignupID:        started.SignupID,
		Password:        "test123",
		ConfirmPassword: "test123",
		TermsAccepted:   true,
	})
	assert.ErrorIs(t, err, domain.ErrOTPNotVerified)

	assert.ErrorIs(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "9999"), domain.ErrOTPInvalid)
	assert.Equal(t, 1, env.signupSvc.Pending())
}

func TestSignupService_CompletePasswordChecks(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)
	require.NoError(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"))

	tests := []struct {
		name  string
		input CompleteInput
		field string
	}{
		{"short", CompleteInput{Password: "abc", ConfirmPassword: "abc", TermsAccepted: true}, "password"},
		{"mismatch", CompleteInput{Password: "abcdef", ConfirmPassword: "abcdeg", TermsAccepted: true}, "confirm_password"},
		{"no terms", CompleteInput{Password: "abcdef", ConfirmPassword: "abcdef"}, "terms_accepted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.SignupID = started.SignupID
			_, err := env.signupSvc.Complete(ctx, tt.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// failed password checks keep the signup open
	assert.Equal(t, 1, env.signupSvc.Pending())
	n, err := env.accounts.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSignupService_AttemptsExhaustedDropsSignup(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)

	for i := 0; i < DefaultOTPConfig.MaxAttempts-1; i++ {
		assert.ErrorIs(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "0000"), domain.ErrOTPInvalid)
	}
	assert.ErrorIs(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "0000"), domain.ErrOTPAttempts)
	assert.Zero(t, env.signupSvc.Pending())

	assert.ErrorIs(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"), domain.ErrSignupNotFound)
}

func TestSignupService_ExpiredOTP(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)

	env.clock.Advance(6 * time.Minute)
	assert.ErrorIs(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"), domain.ErrOTPExpired)
	assert.Zero(t, env.signupSvc.Pending())
}

func TestSignupService_DuplicateAtCompleteDropsSignup(t *testing.T) {
	env := newSignupEnv()
	ctx := context.Background()

	started, err := env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)
	require.NoError(t, env.signupSvc.VerifyOTP(ctx, started.SignupID, "1234"))

	// someone else registers the same mobile number in between
	_, err = env.accountSvc.Register(ctx, RegisterInput{Username: "9876543210", Password: "other1"})
	require.NoError(t, err)

	_, err = env.signupSvc.Complete(ctx, CompleteInput{
		SignupID:        started.SignupID,
		Password:        "test123",
		ConfirmPassword: "test123",
		TermsAccepted:   true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.Zero(t, env.signupSvc.Pending())
}

func TestSignupService_HidesCodeOutsideDev(t *testing.T) {
	env := newSignupEnv()
	svc := NewSignupService(env.accounts, env.accountSvc, env.otpSvc, env.signupSvc.ids, env.metrics, discardLogger(), false)

	started, err := svc.Start(context.Background(), validIdentity)
	require.NoError(t, err)
	assert.Empty(t, started.DevCode)
}
