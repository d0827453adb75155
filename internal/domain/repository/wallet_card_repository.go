package repository

import (
	"context"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// WalletCardRepository defines the interface for wallet card operations.
// Deduct and Credit are the only mutators of a card's balance; both commit
// the balance change and the transaction record atomically.
type WalletCardRepository interface {
	Create(ctx context.Context, card *entity.WalletCard) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error)
	Update(ctx context.Context, card *entity.WalletCard) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.WalletCard, int64, error)
	// ListActive returns cards that may currently be charged
	ListActive(ctx context.Context) ([]entity.WalletCard, error)

	// Deduct atomically decrements the balance by amount if the card exists,
	// is active and has sufficient balance, and records the deduction. A
	// conditional update guards against concurrent deductions overdrawing the
	// card. Fails with apperror.ErrCardNotFound, apperror.ErrCardInactive or
	// apperror.ErrInsufficientBalance without mutating anything.
	Deduct(ctx context.Context, cardID uuid.UUID, amount int64, documentID *uuid.UUID, memo string) (*entity.WalletTransaction, error)

	// Credit atomically increments the balance (top-ups and deduction
	// reversals) and records the transaction. kind is one of the entity
	// wallet transaction kinds.
	Credit(ctx context.Context, cardID uuid.UUID, amount int64, kind string, documentID *uuid.UUID, memo string) (*entity.WalletTransaction, error)

	// ListTransactions returns a card's balance movements, newest first
	ListTransactions(ctx context.Context, cardID uuid.UUID, params *pagination.PaginationParams) ([]entity.WalletTransaction, int64, error)
}
