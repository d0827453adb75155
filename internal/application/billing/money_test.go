package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole amount", amount: 700, want: 70000},
		{name: "exact cents", amount: 19.99, want: 1999},
		{name: "float artifact rounds up", amount: 620.55, want: 62055},
		{name: "float artifact rounds down", amount: 0.29, want: 29},
		{name: "zero", amount: 0, want: 0},
		{name: "negative", amount: -1.5, want: -150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCents(tt.amount))
		})
	}
}
