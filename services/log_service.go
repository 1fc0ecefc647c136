package services

import (
	"context"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// LogService serves the admin-only audit log reads. Writes go through
// AppLogger only; the table is append-only.
type LogService struct {
	logs LogRepository
}

func NewLogService(logs LogRepository) *LogService {
	return &LogService{logs: logs}
}

func (s *LogService) Recent(ctx context.Context, n int) ([]models.Log, error) {
	if n < 1 {
		return nil, validationf("n must be at least 1")
	}
	logs, err := s.logs.Recent(ctx, n)
	if err != nil {
		return nil, storeError(err, "log")
	}
	return logs, nil
}

func (s *LogService) Count(ctx context.Context) (int64, error) {
	count, err := s.logs.Count(ctx)
	if err != nil {
		return 0, storeError(err, "log")
	}
	return count, nil
}
