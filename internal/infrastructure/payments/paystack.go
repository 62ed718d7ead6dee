// Package payments talks to the Paystack transaction API.
package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/breaker"
)

const (
	defaultBaseURL = "https://api.paystack.co"
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config captures the Paystack settings.
type Config struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
	Timeout     time.Duration
}

// Paystack implements ports.PaymentGateway.
type Paystack struct {
	secret      string
	baseURL     string
	callbackURL string
	httpClient  *http.Client
	cb          *gobreaker.CircuitBreaker
}

func NewPaystack(cfg Config, log zerolog.Logger) *Paystack {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Paystack{
		secret:      cfg.SecretKey,
		baseURL:     base,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: timeout},
		cb:          breaker.New(breaker.Payments, log),
	}
}

// envelope is the shape of every Paystack response.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type transaction struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Channel   string `json:"channel"`
	PaidAt    string `json:"paid_at"`
}

func (t transaction) toPort() *ports.GatewayTransaction {
	out := &ports.GatewayTransaction{
		Reference:   t.Reference,
		Status:      strings.ToLower(t.Status),
		AmountMinor: t.Amount,
		Currency:    t.Currency,
		Channel:     t.Channel,
	}
	if t.PaidAt != "" {
		if ts, err := time.Parse(time.RFC3339, t.PaidAt); err == nil {
			ts = ts.UTC()
			out.PaidAt = &ts
		}
	}
	return out
}

// Initialize opens a checkout and returns the hosted payment page.
func (p *Paystack) Initialize(ctx context.Context, req ports.InitializeRequest) (*ports.InitializeResponse, error) {
	payload := map[string]any{
		"email":     req.Email,
		"amount":    req.AmountMinor,
		"reference": req.Reference,
		"currency":  req.Currency,
		"metadata":  req.Metadata,
	}
	if p.callbackURL != "" {
		payload["callback_url"] = p.callbackURL
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := p.call(ctx, http.MethodPost, "/transaction/initialize", payload, &data); err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	return &ports.InitializeResponse{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the current state of a transaction.
func (p *Paystack) Verify(ctx context.Context, reference string) (*ports.GatewayTransaction, error) {
	var data transaction
	if err := p.call(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	return data.toPort(), nil
}

// VerifySignature checks the x-paystack-signature header, a hex HMAC-SHA512
// of the raw body keyed with the secret key.
func (p *Paystack) VerifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha512.New, []byte(p.secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), got)
}

// ParseWebhook decodes charge.* events; anything else yields nil.
func (p *Paystack) ParseWebhook(body []byte) (*ports.GatewayTransaction, error) {
	var evt struct {
		Event string      `json:"event"`
		Data  transaction `json:"data"`
	}
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	if !strings.HasPrefix(evt.Event, "charge.") {
		return nil, nil
	}
	if evt.Data.Reference == "" {
		return nil, errors.New("webhook without reference")
	}
	return evt.Data.toPort(), nil
}

// apiError is a 4xx answer. It does not count against the breaker.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("http=%d message=%s", e.status, e.message)
}

func (p *Paystack) call(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	res, err := p.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+p.secret)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("http=%d body=%s", resp.StatusCode, string(raw))
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w body=%s", err, string(raw))
		}
		if resp.StatusCode >= http.StatusBadRequest || !env.Status {
			return &apiError{status: resp.StatusCode, message: env.Message}, nil
		}
		return env.Data, nil
	})
	if err != nil {
		return err
	}

	switch v := res.(type) {
	case *apiError:
		return v
	case json.RawMessage:
		if err := json.Unmarshal(v, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
