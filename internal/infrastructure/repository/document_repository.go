package repository

import (
	"context"
	"errors"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	domainRepo "github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (r *documentRepository) UpdateWorkStatus(ctx context.Context, id uuid.UUID, status enum.WorkStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ?", id).
		Update("work_status", status).Error
}

// LinkInvoice attaches the generated invoice id to its work order. The
// conditional WHERE keeps the attachment one-time: a second link attempt
// affects no rows.
func (r *documentRepository) LinkInvoice(ctx context.Context, workOrderID, invoiceID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&entity.Document{}).
		Where("id = ? AND linked_invoice_id IS NULL", workOrderID).
		Update("linked_invoice_id", invoiceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Document{})

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if params.WorkStatus != nil {
		query = query.Where("work_status = ?", *params.WorkStatus)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR beneficiary_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&docs).Error

	return docs, total, err
}

// ListWithCursor returns documents using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *documentRepository) ListWithCursor(ctx context.Context, params *domainRepo.DocumentCursorFilterParams) ([]entity.Document, error) {
	var docs []entity.Document

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Document{})

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Items").
		Order("created_at ASC, id ASC").
		Find(&docs).Error

	return docs, err
}

func (r *documentRepository) GetNextSequence(ctx context.Context, kind enum.DocumentKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Document{}).
		Unscoped().
		Where("kind = ?", kind).
		Count(&count).Error
	return count + 1, err
}

type documentItemRepository struct {
	db *gorm.DB
}

// NewDocumentItemRepository creates a new document item repository
func NewDocumentItemRepository(db *gorm.DB) domainRepo.DocumentItemRepository {
	return &documentItemRepository{db: db}
}

func (r *documentItemRepository) CreateBatch(ctx context.Context, items []entity.DocumentItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
