package model

import "time"

// StorageEntry is one key/value pair of the console's persistent client storage,
// scoped by origin the same way browser storage is.
type StorageEntry struct {
	Origin    string    `gorm:"type:varchar(255);primaryKey" json:"origin"`
	Key       string    `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "console_storage"
}
