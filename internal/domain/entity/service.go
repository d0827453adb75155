package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service represents a typing service in the catalog. Each service carries a
// two-part price: the service fee kept by the business and the government fee
// collected on behalf of the authority.
type Service struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Code       string         `gorm:"size:100;unique;not null" json:"code"`
	Category   string         `gorm:"size:100;default:'General'" json:"category"`
	ServiceFee int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	GovtFee    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		ServiceFee float64 `json:"service_fee"`
		GovtFee    float64 `json:"govt_fee"`
		TotalFee   float64 `json:"total_fee"`
	}{
		Alias:      Alias(s),
		ServiceFee: float64(s.ServiceFee) / 100,
		GovtFee:    float64(s.GovtFee) / 100,
		TotalFee:   float64(s.ServiceFee+s.GovtFee) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// TotalFee returns the combined service and government fee in cents
func (s *Service) TotalFee() int64 {
	return s.ServiceFee + s.GovtFee
}

// SetServiceFeeFromDecimal sets the service fee from a decimal value
func (s *Service) SetServiceFeeFromDecimal(fee float64) {
	s.ServiceFee = int64(math.Round(fee * 100))
}

// SetGovtFeeFromDecimal sets the government fee from a decimal value
func (s *Service) SetGovtFeeFromDecimal(fee float64) {
	s.GovtFee = int64(math.Round(fee * 100))
}
