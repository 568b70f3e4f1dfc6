package repositories

import (
	"context"
	"time"

	"willeasy/internal/core/domain"
)

// AccountRepository defines the Account Directory storage
type AccountRepository interface {
	// Create appends the account; fails with domain.ErrDuplicateAccount if the
	// username is taken. The uniqueness check and the insert are atomic.
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// DocumentRepository defines the Document Registry storage.
// List methods return snapshots in insertion order.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
	ListAll(ctx context.Context) ([]*domain.Document, error)
	// UpdateStatus compare-and-sets the status so concurrent transitions cannot both win
	UpdateStatus(ctx context.Context, id string, from, to domain.Status, payment domain.PaymentStatus) (*domain.Document, error)
	Count(ctx context.Context) (int64, error)
}

// SessionRepository holds the signed-in account slots
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
