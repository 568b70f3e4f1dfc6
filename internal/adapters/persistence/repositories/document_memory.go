package repositories

import (
	"context"
	"sync"

	"willeasy/internal/core/domain"
)

type memoryDocumentRepository struct {
	mu   sync.RWMutex
	docs []domain.Document
}

// NewMemoryDocumentRepository creates an empty in-memory document registry
func NewMemoryDocumentRepository() DocumentRepository {
	return &memoryDocumentRepository{}
}

// Create appends a document
func (r *memoryDocumentRepository) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	return nil
}

// GetByID gets a document by ID
func (r *memoryDocumentRepository) GetByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		d := r.docs[i]
		return &d, nil
	}
	return nil, domain.ErrDocumentNotFound
}

// ListByOwner returns the owner's documents in insertion order
func (r *memoryDocumentRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Document, 0)
	for i := range r.docs {
		if r.docs[i].OwnerID == ownerID {
			d := r.docs[i]
			out = append(out, &d)
		}
	}
	return out, nil
}

// ListAll returns the whole registry in insertion order
func (r *memoryDocumentRepository) ListAll(_ context.Context) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Document, 0, len(r.docs))
	for i := range r.docs {
		d := r.docs[i]
		out = append(out, &d)
	}
	return out, nil
}

// UpdateStatus moves a document from one status to another
func (r *memoryDocumentRepository) UpdateStatus(_ context.Context, id string, from, to domain.Status, payment domain.PaymentStatus) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrDocumentNotFound
	}
	if r.docs[i].Status != from {
		return nil, domain.ErrInvalidTransition
	}
	r.docs[i].Status = to
	r.docs[i].PaymentStatus = payment
	d := r.docs[i]
	return &d, nil
}

// Count returns the registry size
func (r *memoryDocumentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

// indexOf must be called with the lock held
func (r *memoryDocumentRepository) indexOf(id string) int {
	for i := range r.docs {
		if r.docs[i].ID == id {
			return i
		}
	}
	return -1
}
