package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	apptrade "github.com/atelier/storefront/internal/application/trade"
	"github.com/k3a/html2text"
	"go.uber.org/zap"
)

const orderConfirmationSubject = "Confirmation de commande"

//go:embed templates/*.html
var templateFS embed.FS

// OrderMailer renders and sends order confirmations
type OrderMailer struct {
	sender       Sender
	confirmation *template.Template
	logger       *zap.Logger
}

// NewOrderMailer parses the embedded templates with money formatted by money
func NewOrderMailer(sender Sender, money *MoneyFormatter, logger *zap.Logger) (*OrderMailer, error) {
	tmpl, err := template.New("order_confirmation.html").
		Funcs(template.FuncMap{"money": money.Format}).
		ParseFS(templateFS, "templates/order_confirmation.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail templates: %w", err)
	}
	return &OrderMailer{sender: sender, confirmation: tmpl, logger: logger}, nil
}

// SendOrderConfirmation emails the order summary to the customer
func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, confirmation apptrade.OrderConfirmation) error {
	msg, err := m.RenderOrderConfirmation(confirmation)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, msg)
}

// RenderOrderConfirmation builds the confirmation message without sending it
func (m *OrderMailer) RenderOrderConfirmation(confirmation apptrade.OrderConfirmation) (Message, error) {
	var body bytes.Buffer
	if err := m.confirmation.Execute(&body, confirmation); err != nil {
		return Message{}, fmt.Errorf("failed to render order confirmation: %w", err)
	}
	html := body.String()
	return Message{
		To:      confirmation.CustomerEmail,
		ToName:  confirmation.CustomerName,
		Subject: orderConfirmationSubject,
		HTML:    html,
		Text:    html2text.HTML2Text(html),
	}, nil
}

var _ apptrade.OrderNotifier = (*OrderMailer)(nil)
