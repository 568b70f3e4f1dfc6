package repositories

import (
	"context"

	"willeasy/internal/adapters/persistence/models"
	"willeasy/internal/core/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements AccountRepository on gorm
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a gorm-backed account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account inside a transaction; the unique index on
// username catches a racing insert the existence check missed.
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("username = ?", account.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateAccount
		}

		row := models.AccountFromDomain(account)
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		account.CreatedAt = row.CreatedAt
		return nil
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDuplicateAccount), errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateAccount
	default:
		return errors.Wrap(err, "create account")
	}
}

// GetByID gets an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrAccountNotFound, "get account by id")
	}
	return row.ToDomain(), nil
}

// GetByUsername gets an account by username
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var row models.Account
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrAccountNotFound, "get account by username")
	}
	return row.ToDomain(), nil
}

// ExistsByUsername checks if username exists
func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count accounts by username")
	}
	return count > 0, nil
}

// Count counts accounts
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count accounts")
	}
	return count, nil
}

// translateNotFound maps gorm.ErrRecordNotFound to the domain sentinel
func translateNotFound(err, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return errors.Wrap(err, op)
}
