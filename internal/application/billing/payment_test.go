package billing

import (
	"testing"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/docudesk/typecenter-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestResolvePayment(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		paymentType    enum.PaymentType
		amountTendered int64
		want           PaymentOutcome
	}{
		{
			name:           "cash overpayment returns change",
			total:          30000,
			paymentType:    enum.PaymentTypeCash,
			amountTendered: 50000,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPaid,
				PaymentType:    enum.PaymentTypeCash,
				AmountReceived: 50000,
				Change:         20000,
			},
		},
		{
			name:           "cash underpayment converts to pending credit",
			total:          30000,
			paymentType:    enum.PaymentTypeCash,
			amountTendered: 20000,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPending,
				PaymentType:    enum.PaymentTypeCredit,
				AmountReceived: 20000,
				Change:         0,
			},
		},
		{
			name:        "omitted tender treated as exact payment",
			total:       30000,
			paymentType: enum.PaymentTypeCash,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPaid,
				PaymentType:    enum.PaymentTypeCash,
				AmountReceived: 30000,
				Change:         0,
			},
		},
		{
			name:           "exact cash payment",
			total:          30000,
			paymentType:    enum.PaymentTypeCash,
			amountTendered: 30000,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPaid,
				PaymentType:    enum.PaymentTypeCash,
				AmountReceived: 30000,
				Change:         0,
			},
		},
		{
			name:        "bank transfer without tender",
			total:       45000,
			paymentType: enum.PaymentTypeBankTransfer,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPaid,
				PaymentType:    enum.PaymentTypeBankTransfer,
				AmountReceived: 45000,
				Change:         0,
			},
		},
		{
			name:           "credit always pending regardless of tender",
			total:          30000,
			paymentType:    enum.PaymentTypeCredit,
			amountTendered: 50000,
			want: PaymentOutcome{
				Status:         enum.PaymentStatusPending,
				PaymentType:    enum.PaymentTypeCredit,
				AmountReceived: 0,
				Change:         0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePayment(tt.total, tt.paymentType, tt.amountTendered)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Walks a complete worked sale: two services at 100+150 and 70+300,
// one beneficiary, 700 cash tendered.
func TestResolvePaymentWorkedExample(t *testing.T) {
	services := []entity.Service{
		{ServiceFee: 10000, GovtFee: 15000},
		{ServiceFee: 7000, GovtFee: 30000},
	}
	totals := ComputeTotals(services, 1)
	assert.Equal(t, int64(17000), totals.ServiceFee)
	assert.Equal(t, int64(45000), totals.GovtFee)
	assert.Equal(t, int64(62000), totals.Total)

	outcome := ResolvePayment(totals.Total, enum.PaymentTypeCash, 70000)
	assert.Equal(t, enum.PaymentStatusPaid, outcome.Status)
	assert.Equal(t, int64(8000), outcome.Change)
}

func TestQuotationOutcome(t *testing.T) {
	got := QuotationOutcome()
	assert.Equal(t, enum.PaymentStatusQuotation, got.Status)
	assert.Equal(t, enum.PaymentTypeCredit, got.PaymentType)
	assert.Zero(t, got.AmountReceived)
	assert.Zero(t, got.Change)
}
