package entity

import (
	"encoding/json"
	"time"

	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document represents a quotation, work order or invoice. All three kinds
// share the same shape; the kind fixes the default status and which payment
// fields are meaningful. Fee figures are snapshots taken at creation time and
// are never re-derived from the catalog.
type Document struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Kind       enum.DocumentKind `gorm:"size:50;not null;index" json:"kind"`
	Number     string            `gorm:"size:100;unique;not null" json:"number"`
	CustomerID *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`

	CustomerName   string `gorm:"size:255;not null" json:"customer_name"`
	CustomerMobile string `gorm:"size:50" json:"customer_mobile"`
	CustomerEmail  string `gorm:"size:255" json:"customer_email"`

	// Single-beneficiary fields. For combined multi-beneficiary documents
	// BeneficiaryLabel summarises the group and BeneficiaryCount > 1.
	BeneficiaryName     string `gorm:"size:255" json:"beneficiary_name"`
	BeneficiaryIDNumber string `gorm:"size:100" json:"beneficiary_id_number"`
	BeneficiaryLabel    string `gorm:"size:255" json:"beneficiary_label"`
	BeneficiaryCount    int    `gorm:"default:1" json:"beneficiary_count"`

	ServiceFee     int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	GovtFee        int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total          int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PerPersonTotal int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	PaymentStatus  enum.PaymentStatus `gorm:"default:0" json:"payment_status"`
	PaymentType    enum.PaymentType   `gorm:"size:50" json:"payment_type"`
	AmountReceived int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Change         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON

	// Work order processing state; meaningful only when Kind is work_order.
	WorkStatus      enum.WorkStatus `gorm:"default:0" json:"work_status"`
	LinkedInvoiceID *uuid.UUID      `gorm:"type:uuid;index" json:"linked_invoice_id,omitempty"`

	WalletCardID    *uuid.UUID `gorm:"type:uuid;index" json:"wallet_card_id,omitempty"`
	ReferenceNumber *string    `gorm:"size:100" json:"reference_number,omitempty"`
	Notes           *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []DocumentItem `gorm:"foreignKey:DocumentID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (d Document) MarshalJSON() ([]byte, error) {
	type Alias Document
	return json.Marshal(&struct {
		Alias
		ServiceFee     float64 `json:"service_fee"`
		GovtFee        float64 `json:"govt_fee"`
		Total          float64 `json:"total"`
		PerPersonTotal float64 `json:"per_person_total"`
		AmountReceived float64 `json:"amount_received"`
		Change         float64 `json:"change"`
	}{
		Alias:          Alias(d),
		ServiceFee:     float64(d.ServiceFee) / 100,
		GovtFee:        float64(d.GovtFee) / 100,
		Total:          float64(d.Total) / 100,
		PerPersonTotal: float64(d.PerPersonTotal) / 100,
		AmountReceived: float64(d.AmountReceived) / 100,
		Change:         float64(d.Change) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// GetTotalDecimal returns the total as a decimal
func (d *Document) GetTotalDecimal() float64 {
	return float64(d.Total) / 100
}

// DocumentItem is a line item carrying a snapshot of a service's fees at
// document-creation time. BeneficiaryName is set when multiple beneficiaries
// share one combined document.
type DocumentItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	ServiceID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"service_id"`
	ServiceName     string         `gorm:"size:255;not null" json:"service_name"`
	ServiceCode     string         `gorm:"size:100" json:"service_code"`
	BeneficiaryName string         `gorm:"size:255" json:"beneficiary_name,omitempty"`
	ServiceFee      int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	GovtFee         int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Price           int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Document Document `gorm:"foreignKey:DocumentID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (di DocumentItem) MarshalJSON() ([]byte, error) {
	type Alias DocumentItem
	return json.Marshal(&struct {
		Alias
		ServiceFee float64 `json:"service_fee"`
		GovtFee    float64 `json:"govt_fee"`
		Price      float64 `json:"price"`
	}{
		Alias:      Alias(di),
		ServiceFee: float64(di.ServiceFee) / 100,
		GovtFee:    float64(di.GovtFee) / 100,
		Price:      float64(di.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new document item
func (di *DocumentItem) BeforeCreate(tx *gorm.DB) error {
	if di.ID == uuid.Nil {
		di.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentItem model
func (DocumentItem) TableName() string {
	return "document_items"
}
