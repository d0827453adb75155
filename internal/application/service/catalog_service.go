package service

import (
	"context"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// CatalogService handles the service catalog: the typing services on offer
// and their two-part fees
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateServiceInput represents the create catalog service input
type CreateServiceInput struct {
	Name       string
	Code       string
	Category   string
	ServiceFee float64
	GovtFee    float64
	Notes      *string
}

// CreateService adds a service to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Code == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "code", Message: "code is required"})
	}
	if input.ServiceFee < 0 || input.GovtFee < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "fees", Message: "fees cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.serviceRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A service with this code already exists")
	}

	service := &entity.Service{
		Name:     input.Name,
		Code:     input.Code,
		Category: input.Category,
		IsActive: true,
		Notes:    input.Notes,
	}
	if input.Category == "" {
		service.Category = "General"
	}
	service.SetServiceFeeFromDecimal(input.ServiceFee)
	service.SetGovtFeeFromDecimal(input.GovtFee)

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// GetService retrieves a catalog service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return service, nil
}

// ListServices lists catalog services with filtering
func (s *CatalogService) ListServices(ctx context.Context, params *repository.ServiceFilterParams) (*pagination.PaginatedResult[entity.Service], error) {
	services, total, err := s.serviceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateServiceInput represents the update catalog service input
type UpdateServiceInput struct {
	Name       *string
	Category   *string
	ServiceFee *float64
	GovtFee    *float64
	IsActive   *bool
	Notes      *string
}

// UpdateService updates a catalog service. Fee changes only affect future
// documents; persisted documents keep the snapshot taken at creation time.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *UpdateServiceInput) (*entity.Service, error) {
	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.ServiceFee != nil {
		if *input.ServiceFee < 0 {
			return nil, apperror.NewBadRequestError("Service fee cannot be negative")
		}
		service.SetServiceFeeFromDecimal(*input.ServiceFee)
	}
	if input.GovtFee != nil {
		if *input.GovtFee < 0 {
			return nil, apperror.NewBadRequestError("Government fee cannot be negative")
		}
		service.SetGovtFeeFromDecimal(*input.GovtFee)
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		service.Notes = input.Notes
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteService removes a service from the catalog. Documents that referenced
// it keep their fee snapshots.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}
