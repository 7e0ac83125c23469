// models/checkin.go
package models

import (
	"time"
)

// CheckIn is an immutable presence record: one engineer, one obra, one GPS
// fix. CheckinTime is server-assigned; client timestamps are ignored.
type CheckIn struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	EngineerID uint    `gorm:"not null;index" json:"engineerId"`
	Engineer   *User   `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	ObraID     uint    `gorm:"not null;index" json:"obraId"`
	Obra       *Obra   `gorm:"foreignKey:ObraID" json:"obra,omitempty"`
	Latitude   float64 `gorm:"not null" json:"latitude"`
	Longitude  float64 `gorm:"not null" json:"longitude"`

	CheckinTime time.Time `gorm:"autoCreateTime" json:"checkinTime"`
}
