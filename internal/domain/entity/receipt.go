package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name        string  `json:"name"`
	Beneficiary string  `json:"beneficiary,omitempty"`
	ServiceFee  float64 `json:"service_fee"`
	GovtFee     float64 `json:"govt_fee"`
	Price       float64 `json:"price"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity — it is composed from document data at print
// time and treated as read-only by downstream rendering.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	Kind           string        `json:"kind"`
	Number         string        `json:"number"`
	Date           string        `json:"date"`
	Customer       string        `json:"customer,omitempty"`
	Beneficiary    string        `json:"beneficiary,omitempty"`
	PaymentType    string        `json:"payment_type,omitempty"`
	PaymentStatus  string        `json:"payment_status"`
	Items          []ReceiptItem `json:"items"`
	ServiceFee     float64       `json:"service_fee"`
	GovtFee        float64       `json:"govt_fee"`
	Total          float64       `json:"total"`
	AmountReceived float64       `json:"amount_received"`
	Change         float64       `json:"change"`
	PaidByCard     bool          `json:"paid_by_card"`
}
