package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// Line is one order line rendered into the confirmation email.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// OrderConfirmation is the template payload for a "thanks for your order"
// email. Sending is best-effort; callers log failures and move on.
type OrderConfirmation struct {
	OrderID     string
	Total       float64
	ShippingFee float64
	Lines       []Line
}

type Mailer struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewMailer(apiKey, from string) (*Mailer, error) {
	if apiKey == "" {
		return nil, errors.New("mail API key not set")
	}

	return &Mailer{
		apiKey:  apiKey,
		from:    from,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, toEmail string, conf OrderConfirmation) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Your order %s is confirmed", conf.OrderID),
		HTML:    renderConfirmation(conf),
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return errors.New("failed to send order confirmation: " + buf.String())
	}

	return nil
}

func renderConfirmation(conf OrderConfirmation) string {
	var sb strings.Builder

	sb.WriteString("<p>Thank you for your order!</p>")
	sb.WriteString(fmt.Sprintf("<p>Order reference: <strong>%s</strong></p>", conf.OrderID))
	sb.WriteString("<ul>")
	for _, line := range conf.Lines {
		sb.WriteString(fmt.Sprintf("<li>%d &times; %s &mdash; %.2f each</li>",
			line.Quantity, line.Name, line.UnitPrice))
	}
	sb.WriteString("</ul>")
	if conf.ShippingFee > 0 {
		sb.WriteString(fmt.Sprintf("<p>Shipping: %.2f</p>", conf.ShippingFee))
	} else {
		sb.WriteString("<p>Shipping: free</p>")
	}
	sb.WriteString(fmt.Sprintf("<p>Total: <strong>%.2f</strong></p>", conf.Total))

	return sb.String()
}
