// Package billing holds the pure fee and payment arithmetic for document
// creation. Everything in here is deterministic and side-effect free; amounts
// are integer cents throughout so totals add up exactly.
package billing

import (
	"github.com/docudesk/typecenter-api/internal/domain/entity"
)

// FeeTotals is the derived fee breakdown for a document. Total always equals
// ServiceFee + GovtFee and PerPersonTotal * BeneficiaryCount exactly.
type FeeTotals struct {
	ServiceFee       int64 `json:"service_fee"`
	GovtFee          int64 `json:"govt_fee"`
	Total            int64 `json:"total"`
	PerPersonTotal   int64 `json:"per_person_total"`
	BeneficiaryCount int   `json:"beneficiary_count"`
}

// ComputeTotals sums the fee components across the selected services once,
// then multiplies the accumulated sums by the beneficiary count. Multiplying
// after summation keeps the per-person and grand totals exactly additive.
// A count below 1 is treated as 1 so an empty beneficiary list never
// collapses the totals to zero.
func ComputeTotals(services []entity.Service, beneficiaryCount int) FeeTotals {
	if beneficiaryCount < 1 {
		beneficiaryCount = 1
	}

	var serviceFee, govtFee int64
	for _, s := range services {
		serviceFee += s.ServiceFee
		govtFee += s.GovtFee
	}

	perPerson := serviceFee + govtFee
	n := int64(beneficiaryCount)

	return FeeTotals{
		ServiceFee:       serviceFee * n,
		GovtFee:          govtFee * n,
		Total:            perPerson * n,
		PerPersonTotal:   perPerson,
		BeneficiaryCount: beneficiaryCount,
	}
}
