// models/obra.go
package models

import (
	"time"
)

// Obra is a construction site. The owning gestor is fixed at creation and
// never reassigned; deactivation is a soft flag, rows are only removed by an
// explicit delete.
type Obra struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Address     string   `gorm:"size:500" json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	IsActive    bool     `gorm:"default:true" json:"isActive"`
	GestorID    uint     `gorm:"not null;index" json:"gestorId"`
	Gestor      *User    `gorm:"foreignKey:GestorID" json:"gestor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ObraEngineer links one engineer to one obra. The (obra, engineer) pair is
// unique at the database level so concurrent grants collapse to one row.
type ObraEngineer struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	ObraID     uint  `gorm:"not null;uniqueIndex:idx_obra_engineer" json:"obraId"`
	EngineerID uint  `gorm:"not null;uniqueIndex:idx_obra_engineer" json:"engineerId"`
	Obra       *Obra `gorm:"foreignKey:ObraID" json:"obra,omitempty"`
	Engineer   *User `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// HasCoordinates reports whether the obra carries a geocoded location.
func (o *Obra) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}
