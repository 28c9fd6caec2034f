package model

import "time"

type Call struct {
	Type      string     `gorm:"size:64;primaryKey"`
	ID        string     `gorm:"size:128;primaryKey"`
	CreatedBy string     `gorm:"size:255;index;not null"`
	StartsAt  *time.Time `gorm:"index"`
	EndedAt   *time.Time
	Custom    string     `gorm:"type:text;not null;default:'{}'"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

type Recording struct {
	ID        uint      `gorm:"primaryKey"`
	CallType  string    `gorm:"size:64;not null;uniqueIndex:idx_recordings_call_file"`
	CallID    string    `gorm:"size:128;not null;uniqueIndex:idx_recordings_call_file"`
	Filename  string    `gorm:"size:512;not null;uniqueIndex:idx_recordings_call_file"`
	URL       string    `gorm:"size:2048;not null"`
	StartTime time.Time `gorm:"not null"`
	EndTime   time.Time `gorm:"not null"`
	CreatedAt time.Time
}
