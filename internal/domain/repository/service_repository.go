package repository

import (
	"context"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// ServiceFilterParams holds filtering options for listing catalog services
type ServiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
}

// ServiceRepository defines the interface for catalog service data operations.
// The document core only reads the catalog; fee snapshots are copied into
// document items at creation time and never re-derived.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByCode(ctx context.Context, code string) (*entity.Service, error)
	// GetByIDs retrieves multiple services in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ServiceFilterParams) ([]entity.Service, int64, error)
}
