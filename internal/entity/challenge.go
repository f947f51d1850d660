package entity

import "time"

type Challenge struct {
	Base

	Shop        string `gorm:"size:255;index"`
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool `gorm:"index"`
}
