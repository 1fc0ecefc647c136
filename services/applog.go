package services

import (
	"context"
	"log"
	"time"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// AppLogger mirrors every message to the process log and the append-only
// logs table. A failure to persist must never fail the caller's operation,
// so it is reported to the process log and swallowed.
type AppLogger struct {
	logs LogRepository
}

func NewAppLogger(logs LogRepository) *AppLogger {
	return &AppLogger{logs: logs}
}

func (l *AppLogger) write(ctx context.Context, level, message string) {
	log.Printf("[%s] %s", level, message)

	if len(message) > models.LogMessageMaxLength {
		message = message[:models.LogMessageMaxLength]
	}
	entry := &models.Log{Timestamp: time.Now().UTC(), Level: level, Message: message}
	if err := l.logs.Append(ctx, entry); err != nil {
		log.Printf("[Error] audit log write failed: %v", err)
	}
}

func (l *AppLogger) Information(ctx context.Context, message string) {
	l.write(ctx, models.LogInformation, message)
}

func (l *AppLogger) Warning(ctx context.Context, message string) {
	l.write(ctx, models.LogWarning, message)
}

func (l *AppLogger) Error(ctx context.Context, message string) {
	l.write(ctx, models.LogError, message)
}
