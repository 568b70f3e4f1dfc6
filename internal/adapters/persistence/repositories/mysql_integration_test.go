package repositories

import (
	"os"
	"testing"

	"willeasy/internal/adapters/persistence/models"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to TEST_MYSQL_DSN or skips the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func truncate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec("DELETE FROM wills").Error)
	require.NoError(t, db.Exec("DELETE FROM accounts").Error)
}

func TestMySQLAccountRepository(t *testing.T) {
	db := openTestDB(t)
	suite.Run(t, &AccountRepositorySuite{newRepo: func() AccountRepository {
		truncate(t, db)
		return NewAccountRepository(db)
	}})
}

func TestMySQLDocumentRepository(t *testing.T) {
	db := openTestDB(t)
	suite.Run(t, &DocumentRepositorySuite{newRepo: func() DocumentRepository {
		truncate(t, db)
		return NewDocumentRepository(db)
	}})
}
