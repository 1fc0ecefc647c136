package models

import "time"

// Log levels persisted to the audit table.
const (
	LogInformation = "Information"
	LogWarning     = "Warning"
	LogError       = "Error"
)

// Log is append-only: the application never updates or deletes rows.
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	Level     string    `gorm:"size:20;not null" json:"level"`
	Message   string    `gorm:"size:255;not null" json:"message"`
}
