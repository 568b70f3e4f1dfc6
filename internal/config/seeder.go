package config

import (
	"context"
	"log/slog"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/core/domain"

	"github.com/pkg/errors"
)

// fixtureAccount is a seeded account with its plaintext secret
type fixtureAccount struct {
	account domain.Account
	secret  string
}

var fixtureAccounts = []fixtureAccount{
	{
		account: domain.Account{
			ID:         "user-1",
			Username:   "admin@mailinator.com",
			Role:       domain.RoleAdministrator,
			NationalID: "123456789012",
			TaxID:      "ABCDE1234F",
		},
		secret: "admin@123",
	},
	{
		account: domain.Account{
			ID:         "user-2",
			Username:   "user@will.com",
			Role:       domain.RolePreparer,
			NationalID: "987654321098",
			TaxID:      "FGHIJ5678K",
		},
		secret: "user123",
	},
	{
		account: domain.Account{
			ID:         "user-3",
			Username:   "9876543210",
			Role:       domain.RolePreparer,
			NationalID: "111122223333",
			TaxID:      "LMNOP9012Q",
		},
		secret: "test123",
	},
}

func fixtureDate(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}

var fixtureWills = []domain.Document{
	{ID: "will-1", OwnerID: "user-2", Language: domain.LanguageEnglish, Status: domain.StatusDraft, PaymentStatus: domain.PaymentPending, CreatedAt: fixtureDate(time.January, 15)},
	{ID: "will-2", OwnerID: "user-2", Language: domain.LanguageMarathi, Status: domain.StatusSubmitted, PaymentStatus: domain.PaymentPaid, CreatedAt: fixtureDate(time.January, 10)},
	{ID: "will-3", OwnerID: "user-3", Language: domain.LanguageEnglish, Status: domain.StatusReadyForReview, PaymentStatus: domain.PaymentPaid, CreatedAt: fixtureDate(time.January, 12)},
	{ID: "will-4", OwnerID: "user-3", Language: domain.LanguageMarathi, Status: domain.StatusFinalized, PaymentStatus: domain.PaymentPaid, CreatedAt: fixtureDate(time.January, 8)},
}

// SecretHasher hashes fixture secrets; *password.Hasher satisfies it
type SecretHasher interface {
	Hash(password string) (string, error)
}

// Seeder loads the demo accounts and wills
type Seeder struct {
	accounts repositories.AccountRepository
	wills    repositories.DocumentRepository
	hasher   SecretHasher
	logger   *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(
	accounts repositories.AccountRepository,
	wills repositories.DocumentRepository,
	hasher SecretHasher,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		accounts: accounts,
		wills:    wills,
		hasher:   hasher,
		logger:   logger,
	}
}

// Run executes all seeders. Records that already exist are left alone.
func (s *Seeder) Run(ctx context.Context) error {
	s.logger.Info("running fixture seeders")

	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	if err := s.seedWills(ctx); err != nil {
		return err
	}

	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count accounts")
	}
	wills, err := s.wills.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count wills")
	}

	s.logger.Info("fixture seeding completed", "accounts", accounts, "wills", wills)
	return nil
}

// seedAccounts seeds the demo accounts. Development only: the secrets are public.
func (s *Seeder) seedAccounts(ctx context.Context) error {
	for _, f := range fixtureAccounts {
		exists, err := s.accounts.ExistsByUsername(ctx, f.account.Username)
		if err != nil {
			return errors.Wrapf(err, "check account %s", f.account.ID)
		}
		if exists {
			continue
		}

		hash, err := s.hasher.Hash(f.secret)
		if err != nil {
			return errors.Wrapf(err, "hash fixture %s", f.account.ID)
		}

		account := f.account
		account.SecretHash = hash
		account.CreatedAt = fixtureDate(time.January, 1)

		err = s.accounts.Create(ctx, &account)
		switch {
		case err == nil:
			s.logger.Debug("seeded account", "account_id", account.ID, "role", account.Role.Label())
		case errors.Is(err, domain.ErrDuplicateAccount):
			// seeded concurrently
		default:
			return errors.Wrapf(err, "seed account %s", f.account.ID)
		}
	}
	return nil
}

// seedWills seeds the demo wills
func (s *Seeder) seedWills(ctx context.Context) error {
	for _, fixture := range fixtureWills {
		if _, err := s.wills.GetByID(ctx, fixture.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrDocumentNotFound) {
			return errors.Wrapf(err, "check will %s", fixture.ID)
		}

		doc := fixture
		doc.FormData = domain.EmptyFormData
		if err := s.wills.Create(ctx, &doc); err != nil {
			return errors.Wrapf(err, "seed will %s", fixture.ID)
		}
	}
	return nil
}
