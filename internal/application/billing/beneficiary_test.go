package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBeneficiaries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Beneficiary
	}{
		{
			name:  "name and id per line",
			input: "Aisha Rahman, 784-1990-1234567-1\nOmar Farouk, 784-1985-7654321-2",
			want: []Beneficiary{
				{Name: "Aisha Rahman", IDNumber: "784-1990-1234567-1"},
				{Name: "Omar Farouk", IDNumber: "784-1985-7654321-2"},
			},
		},
		{
			name:  "name only",
			input: "Aisha Rahman",
			want:  []Beneficiary{{Name: "Aisha Rahman"}},
		},
		{
			name:  "blank lines dropped",
			input: "\nAisha Rahman, 123\n\n\nOmar Farouk\n",
			want: []Beneficiary{
				{Name: "Aisha Rahman", IDNumber: "123"},
				{Name: "Omar Farouk"},
			},
		},
		{
			name:  "line with no name excluded",
			input: ", 784-1990-1234567-1\nOmar Farouk",
			want:  []Beneficiary{{Name: "Omar Farouk"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Aisha Rahman ,  123  ",
			want:  []Beneficiary{{Name: "Aisha Rahman", IDNumber: "123"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "id with extra commas kept verbatim",
			input: "Aisha Rahman, 123, extra",
			want:  []Beneficiary{{Name: "Aisha Rahman", IDNumber: "123, extra"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBeneficiaries(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}
