package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/docudesk/typecenter-api/internal/application/billing"
	"github.com/docudesk/typecenter-api/internal/config"
	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/pkg/apperror"
	"github.com/docudesk/typecenter-api/pkg/email"
	"github.com/docudesk/typecenter-api/pkg/pagination"
	"github.com/google/uuid"
)

// DocumentService coordinates fee calculation, payment resolution, wallet
// deduction and persistence for quotations, work orders and invoices.
//
// Ordering contract: when an invoice funds its government fee from a wallet
// card, the deduction strictly precedes document persistence. A persistence
// failure after a successful deduction triggers a compensating credit; if
// that credit also fails the error tells the operator the card must be
// reconciled before retrying.
type DocumentService struct {
	docRepo      repository.DocumentRepository
	itemRepo     repository.DocumentItemRepository
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	walletRepo   repository.WalletCardRepository
	emailService *email.EmailService
	store        config.StoreConfig
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	walletRepo repository.WalletCardRepository,
	emailService *email.EmailService,
	store config.StoreConfig,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		itemRepo:     itemRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		walletRepo:   walletRepo,
		emailService: emailService,
		store:        store,
	}
}

// CreateDocumentInput represents the create document input. Beneficiaries
// holds the bulk listing (one "name, id number" per line) for combined
// multi-beneficiary documents; when empty the single-beneficiary fields
// apply.
type CreateDocumentInput struct {
	Kind                enum.DocumentKind
	CustomerID          *uuid.UUID
	CustomerName        string
	CustomerMobile      string
	CustomerEmail       string
	SameAsCustomer      bool
	BeneficiaryName     string
	BeneficiaryIDNumber string
	Beneficiaries       string
	ServiceIDs          []uuid.UUID
	PaymentType         enum.PaymentType
	AmountTendered      float64
	WalletCardID        *uuid.UUID
	ReferenceNumber     *string
	Notes               *string
}

// CreateDocument creates a single document: a quotation, a work order, or an
// invoice covering one beneficiary or a combined group of beneficiaries.
func (s *DocumentService) CreateDocument(ctx context.Context, input *CreateDocumentInput) (*entity.Document, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	if err := s.resolveCustomer(ctx, input); err != nil {
		return nil, err
	}

	services, err := s.resolveServices(ctx, input.ServiceIDs)
	if err != nil {
		return nil, err
	}

	beneficiaries := billing.ParseBeneficiaries(input.Beneficiaries)

	doc, items := s.assemble(input, services, beneficiaries)

	number, err := s.nextNumber(ctx, input.Kind)
	if err != nil {
		return nil, err
	}
	doc.Number = number

	return s.persist(ctx, doc, items, input.CustomerEmail)
}

// CreateSeparateDocuments creates one independent document per beneficiary in
// the bulk listing, each carrying the same selected services at per-person
// totals. Creation is sequential in list order and stops on the first
// failure; documents already created are kept and the error reports how many
// succeeded. Each document settles at its own per-person total, so a cash
// tender is not split across them.
func (s *DocumentService) CreateSeparateDocuments(ctx context.Context, input *CreateDocumentInput) (int, int, error) {
	beneficiaries := billing.ParseBeneficiaries(input.Beneficiaries)
	if len(beneficiaries) == 0 {
		return 0, 0, apperror.NewBadRequestError("Beneficiary list is empty")
	}

	for i, b := range beneficiaries {
		single := *input
		single.Beneficiaries = ""
		single.SameAsCustomer = false
		single.BeneficiaryName = b.Name
		single.BeneficiaryIDNumber = b.IDNumber
		single.AmountTendered = 0

		if _, err := s.CreateDocument(ctx, &single); err != nil {
			if i > 0 {
				return i, len(beneficiaries), apperror.NewPartialFailureError(i, len(beneficiaries), err)
			}
			return 0, len(beneficiaries), err
		}
	}

	return len(beneficiaries), len(beneficiaries), nil
}

// GetDocument retrieves a document with its line items
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocuments lists documents with filtering
func (s *DocumentService) ListDocuments(ctx context.Context, params *repository.DocumentFilterParams) (*pagination.PaginatedResult[entity.Document], error) {
	docs, total, err := s.docRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}

// ListDocumentsWithCursor lists documents with cursor-based pagination
func (s *DocumentService) ListDocumentsWithCursor(ctx context.Context, params *repository.DocumentCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Document], error) {
	docs, err := s.docRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(docs, params.Cursor.Limit,
		func(d entity.Document) string { return d.ID.String() },
		func(d entity.Document) time.Time { return d.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// MarkInvoicePaid settles a pending invoice. Fees are never recomputed; only
// the payment status changes.
func (s *DocumentService) MarkInvoicePaid(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if doc.Kind != enum.DocumentKindInvoice {
		return nil, apperror.NewBadRequestError("Document is not an invoice")
	}
	if doc.PaymentStatus == enum.PaymentStatusPaid {
		return s.docRepo.GetWithItems(ctx, id)
	}

	if err := s.docRepo.UpdatePaymentStatus(ctx, id, enum.PaymentStatusPaid); err != nil {
		return nil, err
	}

	return s.docRepo.GetWithItems(ctx, id)
}

// UpdateWorkOrderStatus moves a work order through its processing states. The
// states are freely settable by the operator; no strict ordering is enforced.
func (s *DocumentService) UpdateWorkOrderStatus(ctx context.Context, id uuid.UUID, status enum.WorkStatus) (*entity.Document, error) {
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid work status")
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	if doc.Kind != enum.DocumentKindWorkOrder {
		return nil, apperror.NewBadRequestError("Document is not a work order")
	}

	if err := s.docRepo.UpdateWorkStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.docRepo.GetWithItems(ctx, id)
}

// GenerateInvoiceInput represents the payment details for an invoice
// generated from a completed work order
type GenerateInvoiceInput struct {
	PaymentType    enum.PaymentType
	AmountTendered float64
	WalletCardID   *uuid.UUID
}

// GenerateInvoiceFromWorkOrder creates the invoice for a completed work
// order. A work order generates at most one invoice: once an invoice has been
// linked, repeated calls return the existing invoice instead of creating a
// duplicate.
func (s *DocumentService) GenerateInvoiceFromWorkOrder(ctx context.Context, workOrderID uuid.UUID, input *GenerateInvoiceInput) (*entity.Document, error) {
	wo, err := s.docRepo.GetWithItems(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	if wo.Kind != enum.DocumentKindWorkOrder {
		return nil, apperror.NewBadRequestError("Document is not a work order")
	}

	if wo.LinkedInvoiceID != nil {
		return s.docRepo.GetWithItems(ctx, *wo.LinkedInvoiceID)
	}

	if wo.WorkStatus != enum.WorkStatusCompleted {
		return nil, apperror.NewBadRequestError("Work order is not completed")
	}

	if !input.PaymentType.Valid() {
		return nil, apperror.NewBadRequestError("Invalid payment type")
	}

	number, err := s.nextNumber(ctx, enum.DocumentKindInvoice)
	if err != nil {
		return nil, err
	}

	outcome := billing.ResolvePayment(wo.Total, input.PaymentType, billing.ToCents(input.AmountTendered))

	invoice := &entity.Document{
		ID:                  uuid.New(),
		Kind:                enum.DocumentKindInvoice,
		Number:              number,
		CustomerID:          wo.CustomerID,
		CustomerName:        wo.CustomerName,
		CustomerMobile:      wo.CustomerMobile,
		CustomerEmail:       wo.CustomerEmail,
		BeneficiaryName:     wo.BeneficiaryName,
		BeneficiaryIDNumber: wo.BeneficiaryIDNumber,
		BeneficiaryLabel:    wo.BeneficiaryLabel,
		BeneficiaryCount:    wo.BeneficiaryCount,
		ServiceFee:          wo.ServiceFee,
		GovtFee:             wo.GovtFee,
		Total:               wo.Total,
		PerPersonTotal:      wo.PerPersonTotal,
		PaymentStatus:       outcome.Status,
		PaymentType:         outcome.PaymentType,
		AmountReceived:      outcome.AmountReceived,
		Change:              outcome.Change,
		WalletCardID:        input.WalletCardID,
		ReferenceNumber:     wo.ReferenceNumber,
		Notes:               wo.Notes,
	}

	items := make([]entity.DocumentItem, 0, len(wo.Items))
	for _, item := range wo.Items {
		items = append(items, entity.DocumentItem{
			ServiceID:       item.ServiceID,
			ServiceName:     item.ServiceName,
			ServiceCode:     item.ServiceCode,
			BeneficiaryName: item.BeneficiaryName,
			ServiceFee:      item.ServiceFee,
			GovtFee:         item.GovtFee,
			Price:           item.Price,
		})
	}

	persisted, err := s.persist(ctx, invoice, items, wo.CustomerEmail)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.LinkInvoice(ctx, workOrderID, persisted.ID); err != nil {
		return nil, apperror.NewPersistenceError("invoice link", err)
	}

	return persisted, nil
}

// BuildReceipt composes a printable receipt value from a persisted document.
// The receipt is read-only to downstream rendering.
func (s *DocumentService) BuildReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ReceiptItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, entity.ReceiptItem{
			Name:        item.ServiceName,
			Beneficiary: item.BeneficiaryName,
			ServiceFee:  float64(item.ServiceFee) / 100,
			GovtFee:     float64(item.GovtFee) / 100,
			Price:       float64(item.Price) / 100,
		})
	}

	beneficiary := doc.BeneficiaryName
	if doc.BeneficiaryCount > 1 {
		beneficiary = doc.BeneficiaryLabel
	}

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.store.Name,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
			TaxID:     s.store.TaxID,
		},
		Kind:           doc.Kind.String(),
		Number:         doc.Number,
		Date:           doc.CreatedAt.Format("2006-01-02 15:04"),
		Customer:       doc.CustomerName,
		Beneficiary:    beneficiary,
		PaymentType:    doc.PaymentType.String(),
		PaymentStatus:  doc.PaymentStatus.String(),
		Items:          items,
		ServiceFee:     float64(doc.ServiceFee) / 100,
		GovtFee:        float64(doc.GovtFee) / 100,
		Total:          doc.GetTotalDecimal(),
		AmountReceived: float64(doc.AmountReceived) / 100,
		Change:         float64(doc.Change) / 100,
		PaidByCard:     doc.WalletCardID != nil,
	}, nil
}

func (s *DocumentService) validateInput(input *CreateDocumentInput) error {
	var fieldErrors []apperror.FieldError

	if !input.Kind.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "kind", Message: "must be quotation, work_order or invoice"})
	}

	if input.CustomerID == nil && input.CustomerName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "customer is required"})
	}

	if len(input.ServiceIDs) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "service_ids", Message: "at least one service is required"})
	}

	if input.Kind != enum.DocumentKindQuotation && !input.PaymentType.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_type", Message: "must be cash, card, bank_transfer or credit"})
	}

	if input.Beneficiaries == "" && !input.SameAsCustomer && input.BeneficiaryName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "beneficiary_name", Message: "beneficiary is required"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// resolveCustomer loads the customer record when an id is supplied and fills
// the snapshot fields the document stores
func (s *DocumentService) resolveCustomer(ctx context.Context, input *CreateDocumentInput) error {
	if input.CustomerID == nil {
		return nil
	}

	customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	if input.CustomerName == "" {
		input.CustomerName = customer.Name
	}
	if input.CustomerMobile == "" && customer.Mobile != nil {
		input.CustomerMobile = *customer.Mobile
	}
	if input.CustomerEmail == "" && customer.Email != nil {
		input.CustomerEmail = *customer.Email
	}
	return nil
}

// resolveServices batch fetches the selected services and rejects unresolved
// ids. A line item referencing a missing service would otherwise silently
// contribute zero fees to the total.
func (s *DocumentService) resolveServices(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	found, err := s.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	serviceMap := make(map[uuid.UUID]*entity.Service, len(found))
	for i := range found {
		serviceMap[found[i].ID] = &found[i]
	}

	services := make([]entity.Service, 0, len(ids))
	for _, id := range ids {
		svc, exists := serviceMap[id]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Service %s", id))
		}
		services = append(services, *svc)
	}
	return services, nil
}

// assemble builds the unsaved document and its line items. For a combined
// multi-beneficiary document the items are the cross-product of beneficiaries
// and services and the totals carry the full multiplier; otherwise one item
// per service at per-person totals.
func (s *DocumentService) assemble(input *CreateDocumentInput, services []entity.Service, beneficiaries []billing.Beneficiary) (*entity.Document, []entity.DocumentItem) {
	doc := &entity.Document{
		ID:               uuid.New(),
		Kind:             input.Kind,
		CustomerID:       input.CustomerID,
		CustomerName:     input.CustomerName,
		CustomerMobile:   input.CustomerMobile,
		CustomerEmail:    input.CustomerEmail,
		BeneficiaryCount: 1,
		WalletCardID:     input.WalletCardID,
		ReferenceNumber:  input.ReferenceNumber,
		Notes:            input.Notes,
	}

	var items []entity.DocumentItem

	if len(beneficiaries) > 0 {
		doc.BeneficiaryCount = len(beneficiaries)
		doc.BeneficiaryLabel = beneficiaries[0].Name
		if len(beneficiaries) > 1 {
			doc.BeneficiaryLabel = fmt.Sprintf("%s + %d others", beneficiaries[0].Name, len(beneficiaries)-1)
		}
		doc.BeneficiaryName = beneficiaries[0].Name
		doc.BeneficiaryIDNumber = beneficiaries[0].IDNumber

		for _, b := range beneficiaries {
			for _, svc := range services {
				items = append(items, entity.DocumentItem{
					ServiceID:       svc.ID,
					ServiceName:     svc.Name,
					ServiceCode:     svc.Code,
					BeneficiaryName: b.Name,
					ServiceFee:      svc.ServiceFee,
					GovtFee:         svc.GovtFee,
					Price:           svc.ServiceFee + svc.GovtFee,
				})
			}
		}
	} else {
		if input.SameAsCustomer {
			doc.BeneficiaryName = input.CustomerName
		} else {
			doc.BeneficiaryName = input.BeneficiaryName
			doc.BeneficiaryIDNumber = input.BeneficiaryIDNumber
		}

		for _, svc := range services {
			items = append(items, entity.DocumentItem{
				ServiceID:   svc.ID,
				ServiceName: svc.Name,
				ServiceCode: svc.Code,
				ServiceFee:  svc.ServiceFee,
				GovtFee:     svc.GovtFee,
				Price:       svc.ServiceFee + svc.GovtFee,
			})
		}
	}

	totals := billing.ComputeTotals(services, doc.BeneficiaryCount)
	doc.ServiceFee = totals.ServiceFee
	doc.GovtFee = totals.GovtFee
	doc.Total = totals.Total
	doc.PerPersonTotal = totals.PerPersonTotal

	var outcome billing.PaymentOutcome
	if input.Kind == enum.DocumentKindQuotation {
		outcome = billing.QuotationOutcome()
	} else {
		outcome = billing.ResolvePayment(totals.Total, input.PaymentType, billing.ToCents(input.AmountTendered))
	}
	doc.PaymentStatus = outcome.Status
	doc.PaymentType = outcome.PaymentType
	doc.AmountReceived = outcome.AmountReceived
	doc.Change = outcome.Change

	return doc, items
}

// persist runs the deduct-then-save sequence for an assembled document.
// Quotations and work orders never touch the wallet; an invoice charges the
// card before anything is saved and reverses the charge if saving fails.
func (s *DocumentService) persist(ctx context.Context, doc *entity.Document, items []entity.DocumentItem, customerEmail string) (*entity.Document, error) {
	deducted := doc.Kind == enum.DocumentKindInvoice && doc.WalletCardID != nil && doc.GovtFee > 0

	if deducted {
		memo := fmt.Sprintf("Government fees for %s", doc.Number)
		if _, err := s.walletRepo.Deduct(ctx, *doc.WalletCardID, doc.GovtFee, &doc.ID, memo); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		if deducted {
			return nil, s.reverseDeduction(ctx, doc, err)
		}
		return nil, apperror.NewPersistenceError("document", err)
	}

	for i := range items {
		items[i].DocumentID = doc.ID
	}

	if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
		if deducted {
			return nil, s.reverseDeduction(ctx, doc, err)
		}
		return nil, apperror.NewPersistenceError("document items", err)
	}

	if doc.Kind == enum.DocumentKindInvoice {
		s.sendReceiptEmail(doc, items, customerEmail)
	}

	return s.docRepo.GetWithItems(ctx, doc.ID)
}

// reverseDeduction issues the compensating credit after a failed save
func (s *DocumentService) reverseDeduction(ctx context.Context, doc *entity.Document, cause error) error {
	memo := fmt.Sprintf("Reversal for failed save of %s", doc.Number)
	_, revErr := s.walletRepo.Credit(ctx, *doc.WalletCardID, doc.GovtFee, entity.WalletTxReversal, &doc.ID, memo)
	if revErr != nil {
		log.Printf("Error: reversal of %d cents on card %s failed: %v", doc.GovtFee, doc.WalletCardID, revErr)
	}
	return apperror.NewChargedPersistenceError(revErr == nil, cause)
}

// sendReceiptEmail emails the invoice receipt when mail is configured and the
// customer left an address. Failures are logged, never surfaced; the sale
// already went through.
func (s *DocumentService) sendReceiptEmail(doc *entity.Document, items []entity.DocumentItem, toEmail string) {
	if s.emailService == nil || !s.emailService.Enabled() || toEmail == "" {
		return
	}

	data := email.InvoiceEmailData{
		StoreName:      s.store.Name,
		Number:         doc.Number,
		Date:           time.Now().Format("2006-01-02"),
		Customer:       doc.CustomerName,
		PaymentType:    doc.PaymentType.String(),
		PaymentStatus:  doc.PaymentStatus.String(),
		ServiceFee:     float64(doc.ServiceFee) / 100,
		GovtFee:        float64(doc.GovtFee) / 100,
		Total:          doc.GetTotalDecimal(),
		AmountReceived: float64(doc.AmountReceived) / 100,
		Change:         float64(doc.Change) / 100,
	}
	for _, item := range items {
		data.Items = append(data.Items, email.InvoiceItemData{
			Name:        item.ServiceName,
			Beneficiary: item.BeneficiaryName,
			ServiceFee:  float64(item.ServiceFee) / 100,
			GovtFee:     float64(item.GovtFee) / 100,
			Price:       float64(item.Price) / 100,
		})
	}

	if err := s.emailService.SendInvoiceReceipt(toEmail, data); err != nil {
		log.Printf("Warning: failed to email receipt for %s: %v", doc.Number, err)
	}
}

// nextNumber generates the next sequential document number for a kind
func (s *DocumentService) nextNumber(ctx context.Context, kind enum.DocumentKind) (string, error) {
	seq, err := s.docRepo.GetNextSequence(ctx, kind)
	if err != nil {
		return "", err
	}

	prefix := "QT"
	switch kind {
	case enum.DocumentKindWorkOrder:
		prefix = "WO"
	case enum.DocumentKindInvoice:
		prefix = "INV"
	}

	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}
