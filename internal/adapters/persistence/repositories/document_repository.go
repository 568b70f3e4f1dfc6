package repositories

import (
	"context"

	"willeasy/internal/adapters/persistence/models"
	"willeasy/internal/core/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// documentRepository implements DocumentRepository on gorm
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a gorm-backed document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create creates a new will
func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	row := models.WillFromDomain(doc)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return errors.Wrap(err, "create will")
	}
	return nil
}

// GetByID gets a will by ID
func (r *documentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	var row models.Will
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translateNotFound(err, domain.ErrDocumentNotFound, "get will by id")
	}
	return row.ToDomain(), nil
}

// ListByOwner lists wills of one account in insertion order
func (r *documentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	var rows []*models.Will
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list wills by owner")
	}
	return toDocuments(rows), nil
}

// ListAll lists every will in insertion order
func (r *documentRepository) ListAll(ctx context.Context) ([]*domain.Document, error) {
	var rows []*models.Will
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list wills")
	}
	return toDocuments(rows), nil
}

// UpdateStatus moves a will from one status to another with a conditional update
func (r *documentRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status, payment domain.PaymentStatus) (*domain.Document, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Will{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":         string(to),
			"payment_status": string(payment),
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "update will status")
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

// Count counts wills
func (r *documentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Will{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count wills")
	}
	return count, nil
}

func toDocuments(rows []*models.Will) []*domain.Document {
	out := make([]*domain.Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out
}
