// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
)

// Service sends transactional mail over SMTP. A service without an
// SMTP host configured reports Enabled() == false; callers skip it
// rather than treating every order as a delivery failure.
type Service struct {
	config *config.Config
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// Enabled reports whether SMTP delivery is configured.
func (s *Service) Enabled() bool {
	return s.config.External.Email.SMTPHost != ""
}

var confirmationTemplate = template.Must(template.New("order_confirmation").
	Funcs(template.FuncMap{
		"formatMinor": func(v int64) string {
			return fmt.Sprintf("₹%d.%02d", v/100, v%100)
		},
	}).
	Parse(`
<h2>Thanks for your order, {{.Order.ShippingInfo.Name}}!</h2>
<p>Order #{{.Order.ID}} has been received.</p>
<table>
{{range .Order.Items}}
  <tr>
    <td>{{.Name}}{{if .Size}} ({{.Size}}{{if .Color}}, {{.Color}}{{end}}){{end}}</td>
    <td>x{{.Quantity}}</td>
    <td>{{formatMinor .Price}}</td>
  </tr>
{{end}}
</table>
<p>Subtotal: {{formatMinor .Order.Subtotal}}<br>
Tax: {{formatMinor .Order.Tax}}<br>
<strong>Total: {{formatMinor .Order.Total}}</strong></p>
<p>Payment method: {{.Order.PaymentMethod}}</p>
`))

// SendOrderConfirmation renders and delivers the confirmation for a
// placed order to the shipping email address.
func (s *Service) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	if !s.Enabled() {
		return fmt.Errorf("email service not configured")
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, map[string]interface{}{"Order": o}); err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	subject := fmt.Sprintf("Order confirmation #%d", o.ID)
	return s.send(ctx, o.ShippingInfo.Email, subject, body.String())
}

// send delivers one HTML message over SMTP.
func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := s.config.External.Email

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
