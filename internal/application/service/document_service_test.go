package service

import (
	"context"
	"errors"
	"testing"

	"github.com/docudesk/typecenter-api/internal/config"
	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	infraRepo "github.com/docudesk/typecenter-api/internal/infrastructure/repository"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Service{},
		&entity.Customer{},
		&entity.Document{},
		&entity.DocumentItem{},
		&entity.WalletCard{},
		&entity.WalletTransaction{},
	))

	return db
}

type testEnv struct {
	db         *gorm.DB
	docs       *DocumentService
	docRepo    repository.DocumentRepository
	walletRepo repository.WalletCardRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	docRepo := infraRepo.NewDocumentRepository(db)
	walletRepo := infraRepo.NewWalletCardRepository(db)

	docs := NewDocumentService(
		docRepo,
		infraRepo.NewDocumentItemRepository(db),
		infraRepo.NewServiceRepository(db),
		infraRepo.NewCustomerRepository(db),
		walletRepo,
		nil,
		config.StoreConfig{Name: "Test Typing Center"},
	)

	return &testEnv{db: db, docs: docs, docRepo: docRepo, walletRepo: walletRepo}
}

// seedServices creates two catalog services: 100+150 and 70+300.
func seedServices(t *testing.T, db *gorm.DB) []uuid.UUID {
	t.Helper()

	services := []entity.Service{
		{Name: "Visa Typing", Code: "VIS-TYP", Category: "Visa", ServiceFee: 10000, GovtFee: 15000, IsActive: true},
		{Name: "Medical Typing", Code: "MED-TYP", Category: "Medical", ServiceFee: 7000, GovtFee: 30000, IsActive: true},
	}
	for i := range services {
		require.NoError(t, db.Create(&services[i]).Error)
	}
	return []uuid.UUID{services[0].ID, services[1].ID}
}

func seedCard(t *testing.T, db *gorm.DB, balance int64, status enum.CardStatus) *entity.WalletCard {
	t.Helper()

	card := &entity.WalletCard{CardName: "Govt Services Card", CardType: "prepaid", Balance: balance, Status: status}
	require.NoError(t, db.Create(card).Error)
	return card
}

func TestCreateInvoiceCashSale(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	ctx := context.Background()

	doc, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		AmountTendered:  700,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", doc.Number)
	assert.Equal(t, int64(17000), doc.ServiceFee)
	assert.Equal(t, int64(45000), doc.GovtFee)
	assert.Equal(t, int64(62000), doc.Total)
	assert.Equal(t, enum.PaymentStatusPaid, doc.PaymentStatus)
	assert.Equal(t, enum.PaymentTypeCash, doc.PaymentType)
	assert.Equal(t, int64(70000), doc.AmountReceived)
	assert.Equal(t, int64(8000), doc.Change)
	assert.Len(t, doc.Items, 2)
	assert.Equal(t, int64(25000), doc.Items[0].Price)
}

func TestCreateInvoiceCashShortfallConvertsToCredit(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)

	doc, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Omar Farouk",
		BeneficiaryName: "Omar Farouk",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		AmountTendered:  200,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.PaymentStatusPending, doc.PaymentStatus)
	assert.Equal(t, enum.PaymentTypeCredit, doc.PaymentType)
	assert.Equal(t, int64(20000), doc.AmountReceived)
	assert.Zero(t, doc.Change)
}

// An operator keying the exact decimal total must settle as Paid even when
// the float64 representation of the tender falls a hair below the total.
func TestExactDecimalTenderSettlesPaid(t *testing.T) {
	env := newTestEnv(t)
	svc := entity.Service{Name: "Document Attestation", Code: "DOC-ATT", ServiceFee: 31005, GovtFee: 31050, IsActive: true}
	require.NoError(t, env.db.Create(&svc).Error)

	doc, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      []uuid.UUID{svc.ID},
		PaymentType:     enum.PaymentTypeCash,
		AmountTendered:  620.55,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(62055), doc.Total)
	assert.Equal(t, enum.PaymentStatusPaid, doc.PaymentStatus)
	assert.Equal(t, enum.PaymentTypeCash, doc.PaymentType)
	assert.Equal(t, int64(62055), doc.AmountReceived)
	assert.Zero(t, doc.Change)
}

func TestCreateQuotationCarriesNoPayment(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)

	doc, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindQuotation,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
	})
	require.NoError(t, err)

	assert.Equal(t, "QT-000001", doc.Number)
	assert.Equal(t, enum.PaymentStatusQuotation, doc.PaymentStatus)
	assert.Equal(t, enum.PaymentTypeCredit, doc.PaymentType)
	assert.Zero(t, doc.AmountReceived)
	assert.Zero(t, doc.Change)
	assert.Equal(t, int64(62000), doc.Total)
}

func TestCreateCombinedDocumentForMultipleBeneficiaries(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)

	doc, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:          enum.DocumentKindInvoice,
		CustomerName:  "Aisha Rahman",
		Beneficiaries: "Aisha Rahman, 784-1990-1\nOmar Farouk, 784-1985-2\nLeila Hassan",
		ServiceIDs:    serviceIDs,
		PaymentType:   enum.PaymentTypeCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, doc.BeneficiaryCount)
	assert.Equal(t, "Aisha Rahman + 2 others", doc.BeneficiaryLabel)
	assert.Len(t, doc.Items, 6)
	assert.Equal(t, int64(3*62000), doc.Total)
	assert.Equal(t, int64(62000), doc.PerPersonTotal)
	assert.Equal(t, "Omar Farouk", doc.Items[2].BeneficiaryName)
}

func TestCreateSeparateDocumentsPerBeneficiary(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	ctx := context.Background()

	created, requested, err := env.docs.CreateSeparateDocuments(ctx, &CreateDocumentInput{
		Kind:          enum.DocumentKindInvoice,
		CustomerName:  "Aisha Rahman",
		Beneficiaries: "Aisha Rahman\nOmar Farouk\nLeila Hassan",
		ServiceIDs:    serviceIDs,
		PaymentType:   enum.PaymentTypeCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	assert.Equal(t, 3, requested)

	var docs []entity.Document
	require.NoError(t, env.db.Preload("Items").Order("number").Find(&docs).Error)
	require.Len(t, docs, 3)
	for _, d := range docs {
		assert.Len(t, d.Items, 2)
		assert.Equal(t, int64(62000), d.Total)
		assert.Equal(t, 1, d.BeneficiaryCount)
	}
	assert.Equal(t, "INV-000001", docs[0].Number)
	assert.Equal(t, "INV-000003", docs[2].Number)
}

func TestCreateInvoiceWithWalletCardDeductsGovtFee(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	card := seedCard(t, env.db, 100000, enum.CardStatusActive)
	ctx := context.Background()

	doc, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		WalletCardID:    &card.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, &card.ID, doc.WalletCardID)

	var after entity.WalletCard
	require.NoError(t, env.db.First(&after, "id = ?", card.ID).Error)
	assert.Equal(t, int64(55000), after.Balance)

	var tx entity.WalletTransaction
	require.NoError(t, env.db.First(&tx, "card_id = ?", card.ID).Error)
	assert.Equal(t, entity.WalletTxDeduction, tx.Kind)
	assert.Equal(t, int64(45000), tx.Amount)
	require.NotNil(t, tx.DocumentID)
	assert.Equal(t, doc.ID, *tx.DocumentID)
}

func TestInsufficientBalanceAbortsBeforePersistence(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	card := seedCard(t, env.db, 20000, enum.CardStatusActive)

	_, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		WalletCardID:    &card.ID,
	})
	require.ErrorIs(t, err, apperror.ErrInsufficientBalance)

	var docCount, txCount int64
	env.db.Model(&entity.Document{}).Count(&docCount)
	env.db.Model(&entity.WalletTransaction{}).Count(&txCount)
	assert.Zero(t, docCount)
	assert.Zero(t, txCount)

	var after entity.WalletCard
	require.NoError(t, env.db.First(&after, "id = ?", card.ID).Error)
	assert.Equal(t, int64(20000), after.Balance)
}

func TestInactiveCardRejected(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	card := seedCard(t, env.db, 100000, enum.CardStatusInactive)

	_, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		WalletCardID:    &card.ID,
	})
	require.ErrorIs(t, err, apperror.ErrCardInactive)
}

// failingDocRepo makes document creation fail after any wallet deduction has
// already happened, to exercise the compensating reversal.
type failingDocRepo struct {
	repository.DocumentRepository
	failCreate bool
}

func (f *failingDocRepo) Create(ctx context.Context, doc *entity.Document) error {
	if f.failCreate {
		return errors.New("disk full")
	}
	return f.DocumentRepository.Create(ctx, doc)
}

func TestPersistFailureAfterDeductionIsReversed(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	card := seedCard(t, env.db, 100000, enum.CardStatusActive)

	failing := &failingDocRepo{DocumentRepository: env.docRepo, failCreate: true}
	docs := NewDocumentService(
		failing,
		infraRepo.NewDocumentItemRepository(env.db),
		infraRepo.NewServiceRepository(env.db),
		infraRepo.NewCustomerRepository(env.db),
		env.walletRepo,
		nil,
		config.StoreConfig{Name: "Test Typing Center"},
	)

	_, err := docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		WalletCardID:    &card.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reversed")

	// Balance restored, with both movements on record.
	var after entity.WalletCard
	require.NoError(t, env.db.First(&after, "id = ?", card.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)

	var kinds []string
	env.db.Model(&entity.WalletTransaction{}).Order("created_at").Pluck("kind", &kinds)
	assert.Equal(t, []string{entity.WalletTxDeduction, entity.WalletTxReversal}, kinds)
}

func TestUnresolvedServiceRejected(t *testing.T) {
	env := newTestEnv(t)
	seedServices(t, env.db)

	_, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      []uuid.UUID{uuid.New()},
		PaymentType:     enum.PaymentTypeCash,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	var count int64
	env.db.Model(&entity.Document{}).Count(&count)
	assert.Zero(t, count)
}

func TestMarkInvoicePaid(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	ctx := context.Background()

	doc, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Omar Farouk",
		BeneficiaryName: "Omar Farouk",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCredit,
	})
	require.NoError(t, err)
	require.Equal(t, enum.PaymentStatusPending, doc.PaymentStatus)

	paid, err := env.docs.MarkInvoicePaid(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	// Fees are untouched by the settlement.
	assert.Equal(t, doc.Total, paid.Total)

	// Settling twice is a no-op.
	again, err := env.docs.MarkInvoicePaid(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, again.PaymentStatus)
}

func TestGenerateInvoiceFromWorkOrderIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	ctx := context.Background()

	wo, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
		Kind:            enum.DocumentKindWorkOrder,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCredit,
	})
	require.NoError(t, err)
	assert.Equal(t, "WO-000001", wo.Number)

	// Not completed yet: no invoice may be generated.
	_, err = env.docs.GenerateInvoiceFromWorkOrder(ctx, wo.ID, &GenerateInvoiceInput{PaymentType: enum.PaymentTypeCash})
	require.Error(t, err)

	_, err = env.docs.UpdateWorkOrderStatus(ctx, wo.ID, enum.WorkStatusCompleted)
	require.NoError(t, err)

	first, err := env.docs.GenerateInvoiceFromWorkOrder(ctx, wo.ID, &GenerateInvoiceInput{PaymentType: enum.PaymentTypeCash})
	require.NoError(t, err)
	assert.Equal(t, enum.DocumentKindInvoice, first.Kind)
	assert.Equal(t, wo.Total, first.Total)
	assert.Len(t, first.Items, len(wo.Items))

	second, err := env.docs.GenerateInvoiceFromWorkOrder(ctx, wo.ID, &GenerateInvoiceInput{PaymentType: enum.PaymentTypeCash})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var invoiceCount int64
	env.db.Model(&entity.Document{}).Where("kind = ?", enum.DocumentKindInvoice).Count(&invoiceCount)
	assert.Equal(t, int64(1), invoiceCount)
}

func TestBuildReceipt(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	card := seedCard(t, env.db, 100000, enum.CardStatusActive)
	ctx := context.Background()

	doc, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
		Kind:            enum.DocumentKindInvoice,
		CustomerName:    "Aisha Rahman",
		BeneficiaryName: "Aisha Rahman",
		ServiceIDs:      serviceIDs,
		PaymentType:     enum.PaymentTypeCash,
		AmountTendered:  700,
		WalletCardID:    &card.ID,
	})
	require.NoError(t, err)

	receipt, err := env.docs.BuildReceipt(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, "Test Typing Center", receipt.Header.StoreName)
	assert.Equal(t, doc.Number, receipt.Number)
	assert.Equal(t, 620.0, receipt.Total)
	assert.Equal(t, 80.0, receipt.Change)
	assert.True(t, receipt.PaidByCard)
	assert.Len(t, receipt.Items, 2)
}

func TestListDocumentsWithCursor(t *testing.T) {
	env := newTestEnv(t)
	serviceIDs := seedServices(t, env.db)
	ctx := context.Background()

	names := []string{"Aisha Rahman", "Omar Farouk", "Leila Hassan", "Yusuf Khan"}
	for _, name := range names {
		_, err := env.docs.CreateDocument(ctx, &CreateDocumentInput{
			Kind:            enum.DocumentKindQuotation,
			CustomerName:    name,
			BeneficiaryName: name,
			ServiceIDs:      serviceIDs,
		})
		require.NoError(t, err)
	}

	first, err := env.docs.ListDocumentsWithCursor(ctx, &repository.DocumentCursorFilterParams{
		Cursor: &pagination.CursorParams{Limit: 3, Direction: pagination.CursorDirectionNext},
	})
	require.NoError(t, err)
	assert.Len(t, first.Items, 3)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)
	require.NotNil(t, first.Pagination.NextCursor)

	second, err := env.docs.ListDocumentsWithCursor(ctx, &repository.DocumentCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    *first.Pagination.NextCursor,
			Limit:     3,
			Direction: pagination.CursorDirectionNext,
		},
	})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.False(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrev)

	// The two pages together cover all documents with no overlap.
	seen := make(map[uuid.UUID]bool)
	for _, d := range append(first.Items, second.Items...) {
		seen[d.ID] = true
	}
	assert.Len(t, seen, len(names))
}

func TestValidationRejectsEmptyInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.docs.CreateDocument(context.Background(), &CreateDocumentInput{
		Kind: enum.DocumentKind("note"),
	})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.NotEmpty(t, appErr.Errors)
}
