package billing

import (
	"github.com/docudesk/typecenter-api/internal/domain/enum"
)

// PaymentOutcome is the resolved settlement of an invoice at creation time.
type PaymentOutcome struct {
	Status         enum.PaymentStatus `json:"status"`
	PaymentType    enum.PaymentType   `json:"payment_type"`
	AmountReceived int64              `json:"amount_received"`
	Change         int64              `json:"change"`
}

// ResolvePayment determines settlement status, amount received and change for
// an invoice total.
//
// Credit always settles as Pending with nothing received. For the paid
// methods (cash, card, bank transfer) an omitted or zero tender is treated as
// exact payment. A tender short of the total converts the sale to a Pending
// credit sale: the shortfall is owed, the partial amount is kept on record
// and no change is due.
func ResolvePayment(total int64, paymentType enum.PaymentType, amountTendered int64) PaymentOutcome {
	if !paymentType.IsPaidMethod() {
		return PaymentOutcome{
			Status:         enum.PaymentStatusPending,
			PaymentType:    enum.PaymentTypeCredit,
			AmountReceived: 0,
			Change:         0,
		}
	}

	received := amountTendered
	if received <= 0 {
		received = total
	}

	if received < total {
		return PaymentOutcome{
			Status:         enum.PaymentStatusPending,
			PaymentType:    enum.PaymentTypeCredit,
			AmountReceived: received,
			Change:         0,
		}
	}

	return PaymentOutcome{
		Status:         enum.PaymentStatusPaid,
		PaymentType:    paymentType,
		AmountReceived: received,
		Change:         received - total,
	}
}

// QuotationOutcome is the fixed settlement for quotations, which carry no
// payment at all.
func QuotationOutcome() PaymentOutcome {
	return PaymentOutcome{
		Status:         enum.PaymentStatusQuotation,
		PaymentType:    enum.PaymentTypeCredit,
		AmountReceived: 0,
		Change:         0,
	}
}
