package billing

import (
	"testing"

	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	services := []entity.Service{
		{Name: "Visa Typing", ServiceFee: 10000, GovtFee: 15000},
		{Name: "Medical Typing", ServiceFee: 7000, GovtFee: 30000},
	}

	tests := []struct {
		name             string
		services         []entity.Service
		beneficiaryCount int
		want             FeeTotals
	}{
		{
			name:             "single beneficiary",
			services:         services,
			beneficiaryCount: 1,
			want: FeeTotals{
				ServiceFee:       17000,
				GovtFee:          45000,
				Total:            62000,
				PerPersonTotal:   62000,
				BeneficiaryCount: 1,
			},
		},
		{
			name:             "two beneficiaries multiply accumulated sums",
			services:         services,
			beneficiaryCount: 2,
			want: FeeTotals{
				ServiceFee:       34000,
				GovtFee:          90000,
				Total:            124000,
				PerPersonTotal:   62000,
				BeneficiaryCount: 2,
			},
		},
		{
			name:             "five beneficiaries",
			services:         services,
			beneficiaryCount: 5,
			want: FeeTotals{
				ServiceFee:       85000,
				GovtFee:          225000,
				Total:            310000,
				PerPersonTotal:   62000,
				BeneficiaryCount: 5,
			},
		},
		{
			name:             "zero count clamps to one",
			services:         services,
			beneficiaryCount: 0,
			want: FeeTotals{
				ServiceFee:       17000,
				GovtFee:          45000,
				Total:            62000,
				PerPersonTotal:   62000,
				BeneficiaryCount: 1,
			},
		},
		{
			name:             "no services",
			services:         nil,
			beneficiaryCount: 3,
			want: FeeTotals{
				ServiceFee:       0,
				GovtFee:          0,
				Total:            0,
				PerPersonTotal:   0,
				BeneficiaryCount: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.services, tt.beneficiaryCount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTotalsAdditivity(t *testing.T) {
	services := []entity.Service{
		{ServiceFee: 333, GovtFee: 667},
		{ServiceFee: 101, GovtFee: 99},
	}

	for _, n := range []int{1, 2, 5} {
		got := ComputeTotals(services, n)
		assert.Equal(t, got.ServiceFee+got.GovtFee, got.Total)
		assert.Equal(t, got.PerPersonTotal*int64(n), got.Total)
		assert.Equal(t, int64(n)*1200, got.Total)
	}
}
