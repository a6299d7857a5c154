package repository

import (
	"gorm.io/gorm"

	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/models"
)

type Repositories struct {
	EmailRepository         interfaces.EmailRepository
	BlockedSenderRepository interfaces.BlockedSenderRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EmailRepository:         NewEmailRepository(db),
		BlockedSenderRepository: NewBlockedSenderRepository(db),
	}
}

// MigrateDB creates/updates the schema. The unique index on emails.resend_id
// is the authoritative guard against duplicate webhook inserts; the
// check-then-insert in the repository is an optimization only.
func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Email{},
		&models.BlockedSender{},
	)
}
