package entity

import "time"

type Migration struct {
	Version   string `gorm:"primarykey;size:16"`
	CreatedAt time.Time
}
