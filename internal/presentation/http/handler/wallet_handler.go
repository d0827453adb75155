package handler

import (
	"github.com/docudesk/typecenter-api/internal/application/service"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet card HTTP requests
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// CreateCardRequest represents the create wallet card request body
type CreateCardRequest struct {
	CardName       string  `json:"card_name" binding:"required"`
	CardType       string  `json:"card_type"`
	InitialBalance float64 `json:"initial_balance"`
}

// Create handles registering a wallet card
// @Summary Create Wallet Card
// @Description Register a new prepaid wallet card
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body CreateCardRequest true "Card data"
// @Success 201 {object} response.APIResponse
// @Router /wallet-cards [post]
func (h *WalletHandler) Create(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.walletService.CreateCard(c.Request.Context(), &service.CreateCardInput{
		CardName:       req.CardName,
		CardType:       req.CardType,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Wallet card created successfully", card)
}

// List handles listing wallet cards
// @Summary List Wallet Cards
// @Description Get all wallet cards with pagination
// @Tags wallet
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards [get]
func (h *WalletHandler) List(c *gin.Context) {
	result, err := h.walletService.ListCards(c.Request.Context(), parsePaginationParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Wallet cards retrieved successfully", result)
}

// ListActive handles listing chargeable cards
// @Summary List Active Wallet Cards
// @Description Get the cards that may currently be charged
// @Tags wallet
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/active [get]
func (h *WalletHandler) ListActive(c *gin.Context) {
	cards, err := h.walletService.ListActiveCards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active wallet cards retrieved successfully", cards)
}

// Get handles getting a single wallet card
// @Summary Get Wallet Card
// @Description Get a wallet card by ID
// @Tags wallet
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/{id} [get]
func (h *WalletHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.walletService.GetCard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wallet card retrieved successfully", card)
}

// UpdateCardRequest represents the update wallet card request body
type UpdateCardRequest struct {
	CardName *string `json:"card_name"`
	CardType *string `json:"card_type"`
	Status   *int    `json:"status"`
}

// Update handles updating a wallet card
// @Summary Update Wallet Card
// @Description Update a card's name, type or status. The balance moves only
// @Description through top-ups and deductions.
// @Tags wallet
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body UpdateCardRequest true "Card data"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/{id} [put]
func (h *WalletHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateCardInput{
		CardName: req.CardName,
		CardType: req.CardType,
	}
	if req.Status != nil {
		status := enum.CardStatus(*req.Status)
		input.Status = &status
	}

	card, err := h.walletService.UpdateCard(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wallet card updated successfully", card)
}

// Delete handles removing a wallet card
// @Summary Delete Wallet Card
// @Description Remove a wallet card
// @Tags wallet
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/{id} [delete]
func (h *WalletHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.walletService.DeleteCard(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wallet card deleted successfully", nil)
}

// TopUpRequest represents the top-up request body
type TopUpRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Memo   string  `json:"memo"`
}

// TopUp handles crediting a wallet card
// @Summary Top Up Wallet Card
// @Description Credit a card balance and record the top-up
// @Tags wallet
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body TopUpRequest true "Top-up data"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/{id}/top-up [post]
func (h *WalletHandler) TopUp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.walletService.TopUp(c.Request.Context(), id, req.Amount, req.Memo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wallet card topped up successfully", card)
}

// Transactions handles listing a card's balance movements
// @Summary List Wallet Card Transactions
// @Description Get a card's balance movements, newest first
// @Tags wallet
// @Produce json
// @Param id path string true "Card ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /wallet-cards/{id}/transactions [get]
func (h *WalletHandler) Transactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid card ID")
		return
	}

	result, err := h.walletService.ListTransactions(c.Request.Context(), id, parsePaginationParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}
