package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"willeasy/internal/core/domain"

	"github.com/stretchr/testify/suite"
)

// AccountRepositorySuite runs the account directory contract against any backend.
type AccountRepositorySuite struct {
	suite.Suite
	newRepo func() AccountRepository
	repo    AccountRepository
}

func (s *AccountRepositorySuite) SetupTest() {
	s.repo = s.newRepo()
}

func account(id, username string) *domain.Account {
	return &domain.Account{
		ID:         id,
		Username:   username,
		SecretHash: "hash-" + id,
		Role:       domain.RolePreparer,
		NationalID: "123456789012",
		TaxID:      "ABCDE1234F",
		CreatedAt:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *AccountRepositorySuite) TestCreateAndLookup() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, account("user-1", "user@will.com")))

	byName, err := s.repo.GetByUsername(ctx, "user@will.com")
	s.Require().NoError(err)
	s.Equal("user-1", byName.ID)
	s.Equal("hash-user-1", byName.SecretHash)

	byID, err := s.repo.GetByID(ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("user@will.com", byID.Username)

	exists, err := s.repo.ExistsByUsername(ctx, "user@will.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByUsername(ctx, "nobody@will.com")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *AccountRepositorySuite) TestNotFound() {
	ctx := context.Background()
	_, err := s.repo.GetByID(ctx, "missing")
	s.ErrorIs(err, domain.ErrAccountNotFound)

	_, err = s.repo.GetByUsername(ctx, "missing@will.com")
	s.ErrorIs(err, domain.ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestDuplicateLeavesDirectoryUnchanged() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, account("user-1", "user@will.com")))

	err := s.repo.Create(ctx, account("user-2", "user@will.com"))
	s.ErrorIs(err, domain.ErrDuplicateAccount)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	kept, err := s.repo.GetByUsername(ctx, "user@will.com")
	s.Require().NoError(err)
	s.Equal("user-1", kept.ID)
	s.Equal("hash-user-1", kept.SecretHash)

	_, err = s.repo.GetByID(ctx, "user-2")
	s.ErrorIs(err, domain.ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestUsernamesAreCaseSensitive() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, account("user-1", "user@will.com")))

	_, err := s.repo.GetByUsername(ctx, "USER@WILL.COM")
	s.ErrorIs(err, domain.ErrAccountNotFound)

	exists, err := s.repo.ExistsByUsername(ctx, "User@will.com")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.repo.Create(ctx, account("user-2", "User@will.com")))

	byName, err := s.repo.GetByUsername(ctx, "User@will.com")
	s.Require().NoError(err)
	s.Equal("user-2", byName.ID)

	byName, err = s.repo.GetByUsername(ctx, "user@will.com")
	s.Require().NoError(err)
	s.Equal("user-1", byName.ID)
}

func (s *AccountRepositorySuite) TestConcurrentRegisterKeepsUsernamesUnique() {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.repo.Create(ctx, account(fmt.Sprintf("user-%d", i), "same@will.com"))
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrDuplicateAccount)
	}
	s.Equal(1, succeeded)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

// DocumentRepositorySuite runs the will registry contract against any backend.
type DocumentRepositorySuite struct {
	suite.Suite
	newRepo func() DocumentRepository
	repo    DocumentRepository
}

func (s *DocumentRepositorySuite) SetupTest() {
	s.repo = s.newRepo()
}

func draft(id, owner string, lang domain.Language) *domain.Document {
	return &domain.Document{
		ID:            id,
		OwnerID:       owner,
		Language:      lang,
		Status:        domain.StatusDraft,
		PaymentStatus: domain.PaymentPending,
		FormData:      domain.EmptyFormData,
		CreatedAt:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *DocumentRepositorySuite) TestListByOwnerFiltersAndKeepsOrder() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, draft("will-1", "user-2", domain.LanguageEnglish)))
	s.Require().NoError(s.repo.Create(ctx, draft("will-2", "user-3", domain.LanguageMarathi)))
	s.Require().NoError(s.repo.Create(ctx, draft("will-3", "user-2", domain.LanguageMarathi)))

	mine, err := s.repo.ListByOwner(ctx, "user-2")
	s.Require().NoError(err)
	s.Require().Len(mine, 2)
	s.Equal("will-1", mine[0].ID)
	s.Equal("will-3", mine[1].ID)
	for _, d := range mine {
		s.Equal("user-2", d.OwnerID)
	}

	none, err := s.repo.ListByOwner(ctx, "user-9")
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)

	all, err := s.repo.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"will-1", "will-2", "will-3"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func (s *DocumentRepositorySuite) TestListIsSnapshot() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, draft("will-1", "user-2", domain.LanguageEnglish)))

	list, err := s.repo.ListAll(ctx)
	s.Require().NoError(err)
	list[0].Status = domain.StatusFinalized

	s.Require().NoError(s.repo.Create(ctx, draft("will-2", "user-2", domain.LanguageEnglish)))
	s.Len(list, 1)

	stored, err := s.repo.GetByID(ctx, "will-1")
	s.Require().NoError(err)
	s.Equal(domain.StatusDraft, stored.Status)
}

func (s *DocumentRepositorySuite) TestUpdateStatus() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, draft("will-1", "user-2", domain.LanguageEnglish)))

	doc, err := s.repo.UpdateStatus(ctx, "will-1", domain.StatusDraft, domain.StatusSubmitted, domain.PaymentPending)
	s.Require().NoError(err)
	s.Equal(domain.StatusSubmitted, doc.Status)

	_, err = s.repo.UpdateStatus(ctx, "will-1", domain.StatusDraft, domain.StatusSubmitted, domain.PaymentPending)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	_, err = s.repo.UpdateStatus(ctx, "missing", domain.StatusDraft, domain.StatusSubmitted, domain.PaymentPending)
	s.ErrorIs(err, domain.ErrDocumentNotFound)

	n, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.EqualValues(1, n)
}
