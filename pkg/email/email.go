package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP is configured. When it is not, callers skip
// sending instead of failing the operation.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// InvoiceItemData is one line of an emailed invoice receipt
type InvoiceItemData struct {
	Name        string
	Beneficiary string
	ServiceFee  float64
	GovtFee     float64
	Price       float64
}

// InvoiceEmailData carries everything the invoice receipt template needs
type InvoiceEmailData struct {
	StoreName      string
	Number         string
	Date           string
	Customer       string
	PaymentType    string
	PaymentStatus  string
	Items          []InvoiceItemData
	ServiceFee     float64
	GovtFee        float64
	Total          float64
	AmountReceived float64
	Change         float64
}

// SendInvoiceReceipt emails a receipt for a generated invoice
func (s *EmailService) SendInvoiceReceipt(toEmail string, data InvoiceEmailData) error {
	if data.StoreName == "" {
		data.StoreName = s.config.FromName
	}

	htmlContent, err := s.renderInvoiceReceipt(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your receipt %s - %s", data.Number, data.StoreName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds a complete email message with headers
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}

const invoiceReceiptTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.StoreName}}</h2>
  <p>Receipt <strong>{{.Number}}</strong> &mdash; {{.Date}}</p>
  {{if .Customer}}<p>Customer: {{.Customer}}</p>{{end}}
  <table width="100%" cellpadding="6" style="border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #ccc; text-align: left;">
      <th>Service</th><th>Service fee</th><th>Govt fee</th><th>Price</th>
    </tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}{{if .Beneficiary}} ({{.Beneficiary}}){{end}}</td>
      <td>{{printf "%.2f" .ServiceFee}}</td>
      <td>{{printf "%.2f" .GovtFee}}</td>
      <td>{{printf "%.2f" .Price}}</td>
    </tr>
    {{end}}
  </table>
  <hr/>
  <p>Service fees: {{printf "%.2f" .ServiceFee}}<br/>
     Government fees: {{printf "%.2f" .GovtFee}}<br/>
     <strong>Total: {{printf "%.2f" .Total}}</strong></p>
  <p>Paid via {{.PaymentType}} ({{.PaymentStatus}})<br/>
     Received: {{printf "%.2f" .AmountReceived}} &mdash; Change: {{printf "%.2f" .Change}}</p>
  <p style="color: #888; font-size: 12px;">Thank you for your business.</p>
</body>
</html>`

// renderInvoiceReceipt renders the invoice receipt HTML
func (s *EmailService) renderInvoiceReceipt(data InvoiceEmailData) (string, error) {
	tmpl, err := template.New("invoice_receipt").Parse(invoiceReceiptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
