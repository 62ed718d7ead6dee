package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const testSecret = "sk_test_123"

func newTestPaystack(t *testing.T, h http.HandlerFunc) *Paystack {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewPaystack(Config{SecretKey: testSecret, BaseURL: srv.URL, CallbackURL: "https://hotel.test/paid"}, zerolog.Nop())
}

func TestInitialize(t *testing.T) {
	var got map[string]any
	p := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer "+testSecret {
			t.Errorf("missing bearer secret")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"PAY-1"}}`))
	})

	res, err := p.Initialize(context.Background(), ports.InitializeRequest{
		Reference: "PAY-1", Email: "ada@example.com", AmountMinor: 7500050, Currency: "NGN",
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if res.AuthorizationURL != "https://checkout.paystack.com/abc" || res.AccessCode != "abc" {
		t.Errorf("unexpected response: %+v", res)
	}
	if got["amount"] != float64(7500050) || got["callback_url"] != "https://hotel.test/paid" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestInitialize_APIError(t *testing.T) {
	p := newTestPaystack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid Email Address Passed"}`))
	})

	if _, err := p.Initialize(context.Background(), ports.InitializeRequest{Reference: "PAY-1"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestVerify(t *testing.T) {
	p := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/PAY-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"reference":"PAY-1","status":"success","amount":500000,"currency":"NGN","channel":"card","paid_at":"2026-03-01T10:00:00.000Z"}}`))
	})

	tx, err := p.Verify(context.Background(), "PAY-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if tx.Status != "success" || tx.AmountMinor != 500000 || tx.Channel != "card" {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if tx.PaidAt == nil || tx.PaidAt.Year() != 2026 {
		t.Errorf("paid_at not parsed: %v", tx.PaidAt)
	}
}

func TestVerify_ServerErrorIsReturned(t *testing.T) {
	p := newTestPaystack(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := p.Verify(context.Background(), "PAY-1"); err == nil {
		t.Fatal("expected an error")
	}
}

func sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	p := NewPaystack(Config{SecretKey: testSecret}, zerolog.Nop())
	body := []byte(`{"event":"charge.success"}`)

	if !p.VerifySignature(body, sign(body)) {
		t.Error("valid signature rejected")
	}
	if p.VerifySignature(body, sign([]byte("tampered"))) {
		t.Error("signature of another body accepted")
	}
	if p.VerifySignature(body, "") || p.VerifySignature(body, "not-hex") {
		t.Error("malformed signature accepted")
	}
}

func TestParseWebhook(t *testing.T) {
	p := NewPaystack(Config{SecretKey: testSecret}, zerolog.Nop())

	tx, err := p.ParseWebhook([]byte(`{"event":"charge.success","data":{"reference":"PAY-9","status":"success","amount":1000}}`))
	if err != nil || tx == nil || tx.Reference != "PAY-9" || tx.AmountMinor != 1000 {
		t.Fatalf("unexpected result: %+v, %v", tx, err)
	}

	tx, err = p.ParseWebhook([]byte(`{"event":"transfer.success","data":{"reference":"TRF-1"}}`))
	if err != nil || tx != nil {
		t.Errorf("non-charge events should be ignored, got %+v, %v", tx, err)
	}

	if _, err := p.ParseWebhook([]byte(`{`)); err == nil {
		t.Error("expected decode error")
	}
}
