package handler

import (
	"github.com/docudesk/typecenter-api/internal/application/service"
	"github.com/docudesk/typecenter-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents the create customer request body
type CreateCustomerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Mobile   *string `json:"mobile"`
	Email    *string `json:"email"`
	IDNumber *string `json:"id_number"`
	Address  *string `json:"address"`
}

// Create handles creating a customer
// @Summary Create Customer
// @Description Create a new customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer data"
// @Success 201 {object} response.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		IDNumber: req.IDNumber,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// List handles listing customers
// @Summary List Customers
// @Description Get all customers with pagination
// @Tags customers
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), parsePaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// ListWithCursor handles listing customers with cursor-based pagination
// @Summary List Customers (cursor)
// @Description Get customers using cursor-based pagination
// @Tags customers
// @Produce json
// @Param cursor query string false "Cursor"
// @Param direction query string false "next or prev"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /customers/cursor [get]
func (h *CustomerHandler) ListWithCursor(c *gin.Context) {
	result, err := h.customerService.ListCustomersWithCursor(c.Request.Context(), parseCursorParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", result)
}

// Get handles getting a single customer
// @Summary Get Customer
// @Description Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// UpdateCustomerRequest represents the update customer request body
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Mobile   *string `json:"mobile"`
	Email    *string `json:"email"`
	IDNumber *string `json:"id_number"`
	Address  *string `json:"address"`
}

// Update handles updating a customer
// @Summary Update Customer
// @Description Update a customer. Documents keep their customer snapshots.
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body UpdateCustomerRequest true "Customer data"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		IDNumber: req.IDNumber,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles removing a customer
// @Summary Delete Customer
// @Description Remove a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} response.APIResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}
