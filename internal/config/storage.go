package config

import (
	"log/slog"

	"willeasy/internal/adapters/persistence/models"
	"willeasy/internal/adapters/persistence/repositories"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Storage bundles the repositories for the configured driver.
// DB is nil for the in-memory driver.
type Storage struct {
	DB       *gorm.DB
	Accounts repositories.AccountRepository
	Wills    repositories.DocumentRepository
	Sessions repositories.SessionRepository
}

// OpenStorage builds the repositories for cfg.StorageDriver. Sessions always
// live in memory.
func OpenStorage(cfg *Config, logger *slog.Logger) (*Storage, error) {
	storage := &Storage{Sessions: repositories.NewMemorySessionRepository()}

	switch cfg.StorageDriver {
	case StorageMySQL:
		db, err := ConnectDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			_ = CloseDatabase(db)
			return nil, errors.Wrap(err, "auto migrate")
		}
		logger.Info("database migration completed")

		storage.DB = db
		storage.Accounts = repositories.NewAccountRepository(db)
		storage.Wills = repositories.NewDocumentRepository(db)
	default:
		storage.Accounts = repositories.NewMemoryAccountRepository()
		storage.Wills = repositories.NewMemoryDocumentRepository()
	}

	return storage, nil
}

// Close releases the database connection, if any
func (s *Storage) Close() error {
	return CloseDatabase(s.DB)
}
