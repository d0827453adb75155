package handler

import (
	"github.com/docudesk/typecenter-api/internal/application/service"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateServiceRequest represents the create catalog service request body
type CreateServiceRequest struct {
	Name       string  `json:"name" binding:"required"`
	Code       string  `json:"code" binding:"required"`
	Category   string  `json:"category"`
	ServiceFee float64 `json:"service_fee" binding:"min=0"`
	GovtFee    float64 `json:"govt_fee" binding:"min=0"`
	Notes      *string `json:"notes"`
}

// Create handles adding a service to the catalog
// @Summary Create Service
// @Description Add a typing service with its two-part fee to the catalog
// @Tags services
// @Accept json
// @Produce json
// @Param request body CreateServiceRequest true "Service data"
// @Success 201 {object} response.APIResponse
// @Router /services [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		Name:       req.Name,
		Code:       req.Code,
		Category:   req.Category,
		ServiceFee: req.ServiceFee,
		GovtFee:    req.GovtFee,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// List handles listing catalog services
// @Summary List Services
// @Description Get all catalog services with pagination and filtering
// @Tags services
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param category query string false "Category filter"
// @Param active_only query bool false "Only active services"
// @Success 200 {object} response.APIResponse
// @Router /services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	params := &repository.ServiceFilterParams{
		Pagination: parsePaginationParams(c),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		ActiveOnly: c.Query("active_only") == "true",
	}

	result, err := h.catalogService.ListServices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// Get handles getting a single catalog service
// @Summary Get Service
// @Description Get a catalog service by ID
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /services/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// UpdateServiceRequest represents the update catalog service request body
type UpdateServiceRequest struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	ServiceFee *float64 `json:"service_fee"`
	GovtFee    *float64 `json:"govt_fee"`
	IsActive   *bool    `json:"is_active"`
	Notes      *string  `json:"notes"`
}

// Update handles updating a catalog service
// @Summary Update Service
// @Description Update a catalog service. Fee changes only affect future documents.
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body UpdateServiceRequest true "Service data"
// @Success 200 {object} response.APIResponse
// @Router /services/{id} [put]
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, &service.UpdateServiceInput{
		Name:       req.Name,
		Category:   req.Category,
		ServiceFee: req.ServiceFee,
		GovtFee:    req.GovtFee,
		IsActive:   req.IsActive,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// Delete handles removing a catalog service
// @Summary Delete Service
// @Description Remove a service from the catalog
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /services/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service deleted successfully", nil)
}
