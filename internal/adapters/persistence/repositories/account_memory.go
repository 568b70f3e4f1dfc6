package repositories

import (
	"context"
	"errors"
	"sync"

	"willeasy/internal/core/domain"
)

// memoryAccountRepository keeps accounts in an append-only slice.
// Lookups are linear scans; the directory is small.
type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts []domain.Account
}

// NewMemoryAccountRepository creates an empty in-memory account directory
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{}
}

// Create appends an account if its username is free
func (r *memoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.accounts {
		if r.accounts[i].Username == account.Username {
			return domain.ErrDuplicateAccount
		}
	}
	r.accounts = append(r.accounts, *account)
	return nil
}

// GetByID gets an account by ID
func (r *memoryAccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.accounts {
		if r.accounts[i].ID == id {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// GetByUsername gets the first account with username
func (r *memoryAccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.accounts {
		if r.accounts[i].Username == username {
			a := r.accounts[i]
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// ExistsByUsername checks if username exists
func (r *memoryAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Count returns the directory size
func (r *memoryAccountRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.accounts)), nil
}
