package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentType represents how a customer pays for a document
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeCard         PaymentType = "card"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCredit       PaymentType = "credit"
)

func (t PaymentType) String() string {
	return string(t)
}

// Valid reports whether the payment type is one of the known methods
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeBankTransfer, PaymentTypeCredit:
		return true
	}
	return false
}

// IsPaidMethod reports whether the payment type settles immediately.
// Credit sales always remain pending.
func (t PaymentType) IsPaidMethod() bool {
	return t != PaymentTypeCredit
}

func (t PaymentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *PaymentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = PaymentType(str)
	return nil
}

func (t PaymentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *PaymentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = PaymentType(v)
	case []byte:
		*t = PaymentType(v)
	}
	return nil
}
