package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid report status")

// Report lifecycle states. Only StatusPending is ever written by the ingest path.
const (
	StatusPending         = "pending"
	StatusSubmittedToCity = "submitted_to_city"
	StatusResolved        = "resolved"
	StatusDismissed       = "dismissed"
)

// Report is one submitted parking-violation record.
type Report struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterEmail string    `gorm:"type:text;not null" json:"reporter_email"`
	LicensePlate  string    `gorm:"type:text;not null;index" json:"license_plate"`
	PlateState    string    `gorm:"type:text;not null" json:"plate_state"`
	VehicleMake   string    `gorm:"type:text;not null" json:"vehicle_make"`
	VehicleModel  *string   `gorm:"type:text" json:"vehicle_model"`
	VehicleColor  string    `gorm:"type:text;not null" json:"vehicle_color"`
	Latitude      *float64  `gorm:"type:double precision" json:"latitude"`
	Longitude     *float64  `gorm:"type:double precision" json:"longitude"`
	Address       *string   `gorm:"type:text" json:"address"`
	Reason        string    `gorm:"type:text;not null" json:"reason"`
	Notes         *string   `gorm:"type:text" json:"notes"`
	PhotoURL      *string   `gorm:"type:text" json:"photo_url"`
	Status        string    `gorm:"type:text;not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// ValidStatus reports whether s is one of the defined lifecycle states.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSubmittedToCity, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// BeforeCreate defaults an empty status to pending and rejects unknown ones.
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = StatusPending
	}
	if !ValidStatus(r.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}
	return nil
}
