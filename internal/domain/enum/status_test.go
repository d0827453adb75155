package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStringKnownValues(t *testing.T) {
	assert.Equal(t, "Pending", PaymentStatusPending.String())
	assert.Equal(t, "Paid", PaymentStatusPaid.String())
	assert.Equal(t, "Quotation", PaymentStatusQuotation.String())
	assert.Equal(t, "Completed", WorkStatusCompleted.String())
	assert.Equal(t, "Inactive", CardStatusInactive.String())
}

// A stray value scanned from the database must still render and marshal
// instead of panicking.
func TestStatusStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Unknown", PaymentStatus(99).String())
	assert.Equal(t, "Unknown", PaymentStatus(-1).String())
	assert.Equal(t, "Unknown", WorkStatus(42).String())
	assert.Equal(t, "Unknown", CardStatus(7).String())

	data, err := json.Marshal(PaymentStatus(99))
	require.NoError(t, err)
	assert.Equal(t, `"Unknown"`, string(data))
}
