package models

import (
	"time"

	"willeasy/internal/core/domain"

	"gorm.io/gorm"
)

// Account represents accounts table
type Account struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID         string    `gorm:"uniqueIndex;size:64;not null" json:"id"`
	Username   string    `gorm:"uniqueIndex;type:varchar(255) COLLATE utf8mb4_bin;not null" json:"username"` // case-sensitive
	SecretHash string    `gorm:"size:255;not null" json:"-"`
	Role       string    `gorm:"size:8;not null;default:'WA'" json:"role"`
	NationalID string    `gorm:"size:12;not null" json:"aadhaar"`
	TaxID      string    `gorm:"size:10;not null" json:"pan"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// ToDomain converts the row to a domain account
func (a *Account) ToDomain() *domain.Account {
	return &domain.Account{
		ID:         a.ID,
		Username:   a.Username,
		SecretHash: a.SecretHash,
		Role:       domain.Role(a.Role),
		NationalID: a.NationalID,
		TaxID:      a.TaxID,
		CreatedAt:  a.CreatedAt,
	}
}

// AccountFromDomain converts a domain account to a row
func AccountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:         a.ID,
		Username:   a.Username,
		SecretHash: a.SecretHash,
		Role:       string(a.Role),
		NationalID: a.NationalID,
		TaxID:      a.TaxID,
		CreatedAt:  a.CreatedAt,
	}
}

// Will represents wills table
type Will struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ID            string    `gorm:"uniqueIndex;size:64;not null" json:"id"`
	UserID        string    `gorm:"index;size:64;not null" json:"user_id"`
	Language      string    `gorm:"size:16;not null" json:"language"`
	Status        string    `gorm:"size:32;not null;default:'Draft'" json:"status"`
	PaymentStatus string    `gorm:"size:16;not null;default:'Pending'" json:"payment_status"`
	FormData      string    `gorm:"type:text" json:"form_data"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Will) TableName() string {
	return "wills"
}

// ToDomain converts the row to a domain document
func (w *Will) ToDomain() *domain.Document {
	return &domain.Document{
		ID:            w.ID,
		OwnerID:       w.UserID,
		Language:      domain.Language(w.Language),
		Status:        domain.Status(w.Status),
		PaymentStatus: domain.PaymentStatus(w.PaymentStatus),
		FormData:      w.FormData,
		CreatedAt:     w.CreatedAt,
	}
}

// WillFromDomain converts a domain document to a row
func WillFromDomain(d *domain.Document) *Will {
	return &Will{
		ID:            d.ID,
		UserID:        d.OwnerID,
		Language:      string(d.Language),
		Status:        string(d.Status),
		PaymentStatus: string(d.PaymentStatus),
		FormData:      d.FormData,
		CreatedAt:     d.CreatedAt,
	}
}

// AutoMigrate creates the accounts and wills tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Will{})
}
