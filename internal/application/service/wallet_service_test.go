package service

import (
	"context"
	"testing"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalletEnv(t *testing.T) (*WalletService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	return NewWalletService(env.walletRepo), env
}

func TestCreateCardWithOpeningBalance(t *testing.T) {
	wallet, _ := newWalletEnv(t)

	card, err := wallet.CreateCard(context.Background(), &CreateCardInput{
		CardName:       "Immigration Card",
		CardType:       "prepaid",
		InitialBalance: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), card.Balance)
	assert.Equal(t, enum.CardStatusActive, card.Status)
}

func TestCreateCardRejectsNegativeBalance(t *testing.T) {
	wallet, _ := newWalletEnv(t)

	_, err := wallet.CreateCard(context.Background(), &CreateCardInput{
		CardName:       "Immigration Card",
		InitialBalance: -1,
	})
	require.Error(t, err)
}

func TestTopUpRecordsTransaction(t *testing.T) {
	wallet, env := newWalletEnv(t)
	card := seedCard(t, env.db, 10000, enum.CardStatusActive)
	ctx := context.Background()

	after, err := wallet.TopUp(ctx, card.ID, 250, "")
	require.NoError(t, err)
	assert.Equal(t, int64(35000), after.Balance)

	var tx entity.WalletTransaction
	require.NoError(t, env.db.First(&tx, "card_id = ?", card.ID).Error)
	assert.Equal(t, entity.WalletTxTopUp, tx.Kind)
	assert.Equal(t, int64(25000), tx.Amount)
}

// Deductions against one card must exhaust, never overdraw, the balance.
func TestDeductionsNeverOverdrawBalance(t *testing.T) {
	_, env := newWalletEnv(t)
	card := seedCard(t, env.db, 90000, enum.CardStatusActive)
	ctx := context.Background()

	var succeeded int
	for i := 0; i < 3; i++ {
		_, err := env.walletRepo.Deduct(ctx, card.ID, 40000, nil, "govt fee")
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, apperror.ErrInsufficientBalance)
		}
	}

	assert.Equal(t, 2, succeeded)

	var after entity.WalletCard
	require.NoError(t, env.db.First(&after, "id = ?", card.ID).Error)
	assert.Equal(t, int64(10000), after.Balance)
	assert.GreaterOrEqual(t, after.Balance, int64(0))
}

func TestDeductFromInactiveCard(t *testing.T) {
	_, env := newWalletEnv(t)
	card := seedCard(t, env.db, 90000, enum.CardStatusInactive)

	_, err := env.walletRepo.Deduct(context.Background(), card.ID, 1000, nil, "govt fee")
	require.ErrorIs(t, err, apperror.ErrCardInactive)
}

func TestDeactivateCardViaUpdate(t *testing.T) {
	wallet, env := newWalletEnv(t)
	card := seedCard(t, env.db, 90000, enum.CardStatusActive)
	ctx := context.Background()

	inactive := enum.CardStatusInactive
	updated, err := wallet.UpdateCard(ctx, card.ID, &UpdateCardInput{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, enum.CardStatusInactive, updated.Status)

	active, err := wallet.ListActiveCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	wallet, env := newWalletEnv(t)
	card := seedCard(t, env.db, 100000, enum.CardStatusActive)
	ctx := context.Background()

	_, err := env.walletRepo.Deduct(ctx, card.ID, 10000, nil, "first")
	require.NoError(t, err)
	_, err = wallet.TopUp(ctx, card.ID, 50, "second")
	require.NoError(t, err)

	result, err := wallet.ListTransactions(ctx, card.ID, &pagination.PaginationParams{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Pagination.Total)
	assert.Len(t, result.Items, 2)
}
