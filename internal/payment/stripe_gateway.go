package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"teabloom-be/internal/logger"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewStripeGateway(secretKey string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Stripe secret key is empty")
	}

	return &stripeGateway{
		secretKey: secretKey,
		baseURL:   stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- CreateIntent -----------------

func (s *stripeGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("amount_cents", amountCents),
		zap.String("currency", currency),
	)

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("failed creating payment intent request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("requesting payment intent")

	intent, err := s.send(req)
	if err != nil {
		log.Error("payment intent request failed", zap.Error(err))
		return nil, err
	}

	log.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("status", intent.Status),
	)

	return intent, nil
}

// ----------------- GetIntent -----------------

func (s *stripeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	log := logger.FromCtx(ctx).With(zap.String("intent_id", id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/v1/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	intent, err := s.send(req)
	if err != nil {
		log.Error("payment intent lookup failed", zap.Error(err))
		return nil, err
	}

	return intent, nil
}

func (s *stripeGateway) send(req *http.Request) (*Intent, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("stripe error: %s", string(body))
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed decoding stripe response: %w", err)
	}

	return &intent, nil
}
