package entity

import (
	"encoding/json"
	"time"

	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WalletCard is a prepaid balance that government fees may be deducted from
// instead of being collected in cash. The balance is mutated only through the
// wallet repository's Deduct and Credit operations and never goes negative.
type WalletCard struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CardName  string          `gorm:"size:255;not null" json:"card_name"`
	CardType  string          `gorm:"size:100" json:"card_type"`
	Balance   int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status    enum.CardStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Transactions []WalletTransaction `gorm:"foreignKey:CardID" json:"transactions,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (w WalletCard) MarshalJSON() ([]byte, error) {
	type Alias WalletCard
	return json.Marshal(&struct {
		Alias
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(w),
		Balance: float64(w.Balance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new wallet card
func (w *WalletCard) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WalletCard model
func (WalletCard) TableName() string {
	return "wallet_cards"
}

// GetBalanceDecimal returns the balance as a decimal
func (w *WalletCard) GetBalanceDecimal() float64 {
	return float64(w.Balance) / 100
}

// Wallet transaction kinds
const (
	WalletTxDeduction = "deduction"
	WalletTxTopUp     = "top_up"
	WalletTxReversal  = "reversal"
)

// WalletTransaction records a single balance movement on a wallet card.
// Deductions reference the document whose government fee they funded.
type WalletTransaction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CardID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"card_id"`
	Kind       string     `gorm:"size:50;not null" json:"kind"`
	Amount     int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DocumentID *uuid.UUID `gorm:"type:uuid;index" json:"document_id,omitempty"`
	Memo       string     `gorm:"size:255" json:"memo"`
	CreatedAt  time.Time  `json:"created_at"`

	// Relationships
	Card WalletCard `gorm:"foreignKey:CardID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t WalletTransaction) MarshalJSON() ([]byte, error) {
	type Alias WalletTransaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new wallet transaction
func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WalletTransaction model
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
