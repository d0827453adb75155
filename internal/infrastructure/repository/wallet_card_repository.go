package repository

import (
	"context"
	"errors"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	domainRepo "github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type walletCardRepository struct {
	db *gorm.DB
}

// NewWalletCardRepository creates a new wallet card repository
func NewWalletCardRepository(db *gorm.DB) domainRepo.WalletCardRepository {
	return &walletCardRepository{db: db}
}

func (r *walletCardRepository) Create(ctx context.Context, card *entity.WalletCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *walletCardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.WalletCard, error) {
	var card entity.WalletCard
	err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *walletCardRepository) Update(ctx context.Context, card *entity.WalletCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *walletCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.WalletCard{}, "id = ?", id).Error
}

func (r *walletCardRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.WalletCard, int64, error) {
	var cards []entity.WalletCard
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WalletCard{})

	if search != "" {
		query = query.Where("card_name ILIKE ? OR card_type ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("card_name ASC").
		Find(&cards).Error

	return cards, total, err
}

func (r *walletCardRepository) ListActive(ctx context.Context) ([]entity.WalletCard, error) {
	var cards []entity.WalletCard
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.CardStatusActive).
		Order("card_name ASC").
		Find(&cards).Error
	return cards, err
}

// Deduct atomically decrements the card balance only if the card is active
// and holds sufficient balance.
// Uses: UPDATE wallet_cards SET balance = balance - amount
//
//	WHERE id = ? AND status = active AND balance >= amount
//
// The conditional update serializes concurrent deductions against the same
// card: two near-simultaneous sales can never both succeed against
// insufficient funds.
func (r *walletCardRepository) Deduct(ctx context.Context, cardID uuid.UUID, amount int64, documentID *uuid.UUID, memo string) (*entity.WalletTransaction, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Deduction amount must be positive")
	}

	var tx *entity.WalletTransaction

	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		result := db.Model(&entity.WalletCard{}).
			Where("id = ? AND status = ? AND balance >= ?", cardID, enum.CardStatusActive, amount).
			Update("balance", gorm.Expr("balance - ?", amount))

		if result.Error != nil {
			return result.Error
		}

		// No rows affected: re-read the card to report the precise precondition
		// that failed. Nothing was mutated.
		if result.RowsAffected == 0 {
			var card entity.WalletCard
			err := db.First(&card, "id = ?", cardID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.ErrCardNotFound
			}
			if err != nil {
				return err
			}
			if card.Status != enum.CardStatusActive {
				return apperror.ErrCardInactive
			}
			return apperror.ErrInsufficientBalance
		}

		tx = &entity.WalletTransaction{
			CardID:     cardID,
			Kind:       entity.WalletTxDeduction,
			Amount:     amount,
			DocumentID: documentID,
			Memo:       memo,
		}
		return db.Create(tx).Error
	})

	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Credit atomically increments the card balance (top-ups and reversals of
// failed sales) and records the movement in the same transaction.
func (r *walletCardRepository) Credit(ctx context.Context, cardID uuid.UUID, amount int64, kind string, documentID *uuid.UUID, memo string) (*entity.WalletTransaction, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Credit amount must be positive")
	}

	var tx *entity.WalletTransaction

	err := r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		result := db.Model(&entity.WalletCard{}).
			Where("id = ?", cardID).
			Update("balance", gorm.Expr("balance + ?", amount))

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return apperror.ErrCardNotFound
		}

		tx = &entity.WalletTransaction{
			CardID:     cardID,
			Kind:       kind,
			Amount:     amount,
			DocumentID: documentID,
			Memo:       memo,
		}
		return db.Create(tx).Error
	})

	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *walletCardRepository) ListTransactions(ctx context.Context, cardID uuid.UUID, params *pagination.PaginationParams) ([]entity.WalletTransaction, int64, error) {
	var txs []entity.WalletTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WalletTransaction{}).
		Where("card_id = ?", cardID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&txs).Error

	return txs, total, err
}
