package service

import (
	"context"

	"github.com/docudesk/typecenter-api/internal/application/billing"
	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// WalletService handles wallet card management and balance movements
type WalletService struct {
	walletRepo repository.WalletCardRepository
}

// NewWalletService creates a new wallet service
func NewWalletService(walletRepo repository.WalletCardRepository) *WalletService {
	return &WalletService{walletRepo: walletRepo}
}

// CreateCardInput represents the create wallet card input
type CreateCardInput struct {
	CardName       string
	CardType       string
	InitialBalance float64
}

// CreateCard registers a new wallet card, optionally with an opening balance
func (s *WalletService) CreateCard(ctx context.Context, input *CreateCardInput) (*entity.WalletCard, error) {
	if input.CardName == "" {
		return nil, apperror.NewBadRequestError("Card name is required")
	}
	if input.InitialBalance < 0 {
		return nil, apperror.NewBadRequestError("Initial balance cannot be negative")
	}

	card := &entity.WalletCard{
		CardName: input.CardName,
		CardType: input.CardType,
		Balance:  billing.ToCents(input.InitialBalance),
		Status:   enum.CardStatusActive,
	}

	if err := s.walletRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard retrieves a wallet card by ID
func (s *WalletService) GetCard(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	card, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.ErrCardNotFound
	}
	return card, nil
}

// ListCards lists wallet cards with pagination
func (s *WalletService) ListCards(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.WalletCard], error) {
	cards, total, err := s.walletRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(cards, pag), nil
}

// ListActiveCards returns the cards that may currently be charged
func (s *WalletService) ListActiveCards(ctx context.Context) ([]entity.WalletCard, error) {
	return s.walletRepo.ListActive(ctx)
}

// UpdateCardInput represents the update wallet card input
type UpdateCardInput struct {
	CardName *string
	CardType *string
	Status   *enum.CardStatus
}

// UpdateCard updates a card's name, type or status. The balance is not
// editable here; it moves only through top-ups and deductions.
func (s *WalletService) UpdateCard(ctx context.Context, id uuid.UUID, input *UpdateCardInput) (*entity.WalletCard, error) {
	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CardName != nil {
		card.CardName = *input.CardName
	}
	if input.CardType != nil {
		card.CardType = *input.CardType
	}
	if input.Status != nil {
		card.Status = *input.Status
	}

	if err := s.walletRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard removes a wallet card
func (s *WalletService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	card, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if card == nil {
		return apperror.ErrCardNotFound
	}
	return s.walletRepo.Delete(ctx, id)
}

// TopUp credits a card balance and records the top-up
func (s *WalletService) TopUp(ctx context.Context, id uuid.UUID, amount float64, memo string) (*entity.WalletCard, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Top-up amount must be positive")
	}

	if memo == "" {
		memo = "Balance top-up"
	}

	if _, err := s.walletRepo.Credit(ctx, id, billing.ToCents(amount), entity.WalletTxTopUp, nil, memo); err != nil {
		return nil, err
	}

	return s.GetCard(ctx, id)
}

// ListTransactions returns a card's balance movements, newest first
func (s *WalletService) ListTransactions(ctx context.Context, cardID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.WalletTransaction], error) {
	if _, err := s.GetCard(ctx, cardID); err != nil {
		return nil, err
	}

	txs, total, err := s.walletRepo.ListTransactions(ctx, cardID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(txs, pag), nil
}
