package repository

import (
	"context"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// DocumentFilterParams holds filtering options for listing documents
type DocumentFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Kind          *enum.DocumentKind
	PaymentStatus *enum.PaymentStatus
	WorkStatus    *enum.WorkStatus
	CustomerID    *uuid.UUID
}

// DocumentCursorFilterParams holds filtering options for cursor-based listing
type DocumentCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Kind       *enum.DocumentKind
	CustomerID *uuid.UUID
}

// DocumentRepository defines the persistence contract for documents.
// Implementations assign the canonical id and created_at on Create; callers
// treat persisted documents as immutable apart from the status transitions
// exposed below.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// GetWithItems returns the document with its line items preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// UpdatePaymentStatus flips the settlement status (Pending -> Paid); fee
	// fields are never recomputed
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
	// UpdateWorkStatus sets a work order's processing state
	UpdateWorkStatus(ctx context.Context, id uuid.UUID, status enum.WorkStatus) error
	// LinkInvoice attaches a generated invoice id to its originating work
	// order exactly once
	LinkInvoice(ctx context.Context, workOrderID, invoiceID uuid.UUID) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
	ListWithCursor(ctx context.Context, params *DocumentCursorFilterParams) ([]entity.Document, error)
	// GetNextSequence returns the next document number for a kind
	GetNextSequence(ctx context.Context, kind enum.DocumentKind) (int64, error)
}

// DocumentItemRepository defines persistence for document line items
type DocumentItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.DocumentItem) error
}
