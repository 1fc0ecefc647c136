package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// LogRepo appends and reads audit rows. There are deliberately no update
// or delete methods.
type LogRepo struct {
	db *gorm.DB
}

func NewLogRepo(db *gorm.DB) *LogRepo {
	return &LogRepo{db: db}
}

func (r *LogRepo) Append(ctx context.Context, entry *models.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *LogRepo) Recent(ctx context.Context, n int) ([]models.Log, error) {
	var logs []models.Log
	err := r.db.WithContext(ctx).Order("timestamp DESC").Limit(n).Find(&logs).Error
	return logs, err
}

func (r *LogRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Log{}).Count(&count).Error
	return count, err
}
