package handler

import (
	"github.com/docudesk/typecenter-api/internal/application/service"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateDocumentRequest represents the create document request body
type CreateDocumentRequest struct {
	Kind                string  `json:"kind" binding:"required"`
	CustomerID          *string `json:"customer_id"`
	CustomerName        string  `json:"customer_name"`
	CustomerMobile      string  `json:"customer_mobile"`
	CustomerEmail       string  `json:"customer_email"`
	SameAsCustomer      bool    `json:"same_as_customer"`
	BeneficiaryName     string  `json:"beneficiary_name"`
	BeneficiaryIDNumber string  `json:"beneficiary_id_number"`
	// Beneficiaries holds the bulk listing, one "name, id number" per line
	Beneficiaries   string   `json:"beneficiaries"`
	Separate        bool     `json:"separate"`
	ServiceIDs      []string `json:"service_ids" binding:"required,min=1"`
	PaymentType     string   `json:"payment_type"`
	AmountTendered  float64  `json:"amount_tendered"`
	WalletCardID    *string  `json:"wallet_card_id"`
	ReferenceNumber *string  `json:"reference_number"`
	Notes           *string  `json:"notes"`
}

func (r *CreateDocumentRequest) toInput() (*service.CreateDocumentInput, error) {
	input := &service.CreateDocumentInput{
		Kind:                enum.DocumentKind(r.Kind),
		CustomerName:        r.CustomerName,
		CustomerMobile:      r.CustomerMobile,
		CustomerEmail:       r.CustomerEmail,
		SameAsCustomer:      r.SameAsCustomer,
		BeneficiaryName:     r.BeneficiaryName,
		BeneficiaryIDNumber: r.BeneficiaryIDNumber,
		Beneficiaries:       r.Beneficiaries,
		PaymentType:         enum.PaymentType(r.PaymentType),
		AmountTendered:      r.AmountTendered,
		ReferenceNumber:     r.ReferenceNumber,
		Notes:               r.Notes,
	}

	if r.CustomerID != nil && *r.CustomerID != "" {
		id, err := uuid.Parse(*r.CustomerID)
		if err != nil {
			return nil, err
		}
		input.CustomerID = &id
	}

	if r.WalletCardID != nil && *r.WalletCardID != "" {
		id, err := uuid.Parse(*r.WalletCardID)
		if err != nil {
			return nil, err
		}
		input.WalletCardID = &id
	}

	for _, s := range r.ServiceIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		input.ServiceIDs = append(input.ServiceIDs, id)
	}

	return input, nil
}

// Create handles creating a document
// @Summary Create Document
// @Description Create a quotation, work order or invoice. With separate=true
// @Description one document per beneficiary is created instead of a combined one.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body CreateDocumentRequest true "Document data"
// @Success 201 {object} response.APIResponse
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "Invalid ID format: "+err.Error())
		return
	}

	if req.Separate {
		created, requested, err := h.documentService.CreateSeparateDocuments(c.Request.Context(), input)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, "Documents created successfully", gin.H{
			"created":   created,
			"requested": requested,
		})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document created successfully", doc)
}

// List handles listing documents
// @Summary List Documents
// @Description Get all documents with pagination and filtering
// @Tags documents
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param kind query string false "Document kind filter"
// @Param payment_status query int false "Payment status filter"
// @Param work_status query int false "Work status filter"
// @Success 200 {object} response.APIResponse
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	params := &repository.DocumentFilterParams{
		Pagination: parsePaginationParams(c),
		Search:     c.Query("search"),
	}

	if k := c.Query("kind"); k != "" {
		kind := enum.DocumentKind(k)
		if !kind.Valid() {
			response.BadRequest(c, "Invalid document kind")
			return
		}
		params.Kind = &kind
	}

	if s := c.Query("payment_status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.PaymentStatus(parsed)
			params.PaymentStatus = &st
		}
	}

	if s := c.Query("work_status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.WorkStatus(parsed)
			params.WorkStatus = &st
		}
	}

	if cid := c.Query("customer_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &id
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents retrieved successfully", result)
}

// ListWithCursor handles listing documents with cursor-based pagination
// @Summary List Documents (cursor)
// @Description Get documents using cursor-based pagination
// @Tags documents
// @Produce json
// @Param cursor query string false "Cursor"
// @Param direction query string false "next or prev"
// @Param limit query int false "Items per page"
// @Param search query string false "Search term"
// @Param kind query string false "Document kind filter"
// @Success 200 {object} response.APIResponse
// @Router /documents/cursor [get]
func (h *DocumentHandler) ListWithCursor(c *gin.Context) {
	params := &repository.DocumentCursorFilterParams{
		Cursor: parseCursorParams(c),
		Search: c.Query("search"),
	}

	if k := c.Query("kind"); k != "" {
		kind := enum.DocumentKind(k)
		if !kind.Valid() {
			response.BadRequest(c, "Invalid document kind")
			return
		}
		params.Kind = &kind
	}

	if cid := c.Query("customer_id"); cid != "" {
		id, err := uuid.Parse(cid)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &id
	}

	result, err := h.documentService.ListDocumentsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Documents retrieved successfully", result)
}

// Get handles getting a single document
// @Summary Get Document
// @Description Get a document with its line items
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document retrieved successfully", doc)
}

// MarkPaid handles settling a pending invoice
// @Summary Mark Invoice Paid
// @Description Settle a pending invoice without recomputing fees
// @Tags documents
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/pay [patch]
func (h *DocumentHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.MarkInvoicePaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked as paid", doc)
}

// UpdateWorkStatusRequest represents the work status update request body
type UpdateWorkStatusRequest struct {
	WorkStatus int `json:"work_status" binding:"min=0"`
}

// UpdateWorkStatus handles updating a work order's processing state
// @Summary Update Work Order Status
// @Description Move a work order through pending/in_progress/waiting_docs/completed
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body UpdateWorkStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/work-status [patch]
func (h *DocumentHandler) UpdateWorkStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var req UpdateWorkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.documentService.UpdateWorkOrderStatus(c.Request.Context(), id, enum.WorkStatus(req.WorkStatus))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order status updated", doc)
}

// GenerateInvoiceRequest represents the generate invoice request body
type GenerateInvoiceRequest struct {
	PaymentType    string  `json:"payment_type" binding:"required"`
	AmountTendered float64 `json:"amount_tendered"`
	WalletCardID   *string `json:"wallet_card_id"`
}

// GenerateInvoice handles generating the invoice for a completed work order
// @Summary Generate Invoice
// @Description Generate the invoice for a completed work order. Repeated calls
// @Description return the existing invoice instead of creating a duplicate.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Work order ID"
// @Param request body GenerateInvoiceRequest true "Payment details"
// @Success 201 {object} response.APIResponse
// @Router /documents/{id}/invoice [post]
func (h *DocumentHandler) GenerateInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.GenerateInvoiceInput{
		PaymentType:    enum.PaymentType(req.PaymentType),
		AmountTendered: req.AmountTendered,
	}
	if req.WalletCardID != nil && *req.WalletCardID != "" {
		cardID, err := uuid.Parse(*req.WalletCardID)
		if err != nil {
			response.BadRequest(c, "Invalid wallet card ID")
			return
		}
		input.WalletCardID = &cardID
	}

	invoice, err := h.documentService.GenerateInvoiceFromWorkOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice generated successfully", invoice)
}

// Receipt handles composing a printable receipt for a document
// @Summary Get Receipt
// @Description Get the printable receipt value for a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.APIResponse
// @Router /documents/{id}/receipt [get]
func (h *DocumentHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid document ID")
		return
	}

	receipt, err := h.documentService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}
