package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return l.db.Create(&entry).Error
}

// Purge deletes entries older than the retention window and returns how many
// were removed.
func (l *Logger) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res := l.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
