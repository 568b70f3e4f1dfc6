package services

import (
	"context"
	"log/slog"
	"time"

	"willeasy/internal/adapters/persistence/repositories"
	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/idgen"
	"willeasy/internal/pkg/metrics"

	"github.com/pkg/errors"
)

// WillService is the Document Registry
type WillService struct {
	wills   repositories.DocumentRepository
	ids     idgen.Generator
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewWillService creates a new will service
func NewWillService(
	wills repositories.DocumentRepository,
	ids idgen.Generator,
	m *metrics.Metrics,
	logger *slog.Logger,
) *WillService {
	return &WillService{
		wills:   wills,
		ids:     ids,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateDraft starts a new Draft will for ownerID. The owner is not looked up.
func (s *WillService) CreateDraft(ctx context.Context, ownerID string, language domain.Language) (*domain.Document, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError("owner_id", "Owner is required")
	}
	if !language.IsValid() {
		return nil, domain.NewValidationError("language", "Language must be English or Marathi")
	}

	doc := &domain.Document{
		ID:            s.ids.NewID(),
		OwnerID:       ownerID,
		Language:      language,
		Status:        domain.StatusDraft,
		PaymentStatus: domain.PaymentPending,
		FormData:      domain.EmptyFormData,
		CreatedAt:     s.now(),
	}

	if err := s.wills.Create(ctx, doc); err != nil {
		return nil, systemError(s.logger, "create draft", err)
	}

	s.metrics.IncDraftCreated(string(language))
	s.logger.Info("draft created", "will_id", doc.ID, "owner_id", ownerID, "language", language)
	return doc, nil
}

// ListByOwner returns the owner's wills in creation order
func (s *WillService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	docs, err := s.wills.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, systemError(s.logger, "list wills by owner", err)
	}
	return docs, nil
}

// ListAll returns every will in creation order
func (s *WillService) ListAll(ctx context.Context) ([]*domain.Document, error) {
	docs, err := s.wills.ListAll(ctx)
	if err != nil {
		return nil, systemError(s.logger, "list wills", err)
	}
	return docs, nil
}

// Advance moves a will one step along Draft, Submitted, Fully Paid,
// Ready for Review, Finalized. Only administrators may call it.
func (s *WillService) Advance(ctx context.Context, actor domain.Role, id string, to domain.Status) (*domain.Document, error) {
	if actor != domain.RoleAdministrator {
		return nil, domain.ErrForbidden
	}
	if !to.IsValid() {
		return nil, domain.NewValidationError("status", "Unknown status")
	}

	doc, err := s.wills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, systemError(s.logger, "get will", err)
	}

	if !doc.Status.CanTransitionTo(to) {
		return nil, domain.ErrInvalidTransition
	}

	payment := doc.PaymentStatus
	if to == domain.StatusFullyPaid {
		payment = domain.PaymentPaid
	}

	updated, err := s.wills.UpdateStatus(ctx, id, doc.Status, to, payment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			return nil, domain.ErrInvalidTransition
		case errors.Is(err, domain.ErrDocumentNotFound):
			return nil, domain.ErrDocumentNotFound
		default:
			return nil, systemError(s.logger, "advance will", err)
		}
	}

	s.metrics.IncStatusTransition(string(to))
	s.logger.Info("will advanced", "will_id", id, "from", doc.Status, "to", to)
	return updated, nil
}
