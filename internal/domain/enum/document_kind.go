package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DocumentKind represents the type of a generated document
type DocumentKind string

const (
	DocumentKindQuotation DocumentKind = "quotation"
	DocumentKindWorkOrder DocumentKind = "work_order"
	DocumentKindInvoice   DocumentKind = "invoice"
)

func (k DocumentKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the known document kinds
func (k DocumentKind) Valid() bool {
	switch k {
	case DocumentKindQuotation, DocumentKindWorkOrder, DocumentKindInvoice:
		return true
	}
	return false
}

func (k DocumentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

func (k *DocumentKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*k = DocumentKind(str)
	return nil
}

func (k DocumentKind) Value() (driver.Value, error) {
	return string(k), nil
}

func (k *DocumentKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*k = DocumentKind(v)
	case []byte:
		*k = DocumentKind(v)
	}
	return nil
}
