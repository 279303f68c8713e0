package biz

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signPayload(t *testing.T, payload []byte, secret string, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	tolerance := 300 * time.Second

	t.Run("valid signature accepted", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, "whsec_other", ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err == nil {
			t.Error("expected error for wrong secret")
		}
	})

	t.Run("tampered payload rejected", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, secret, ts))
		tampered := []byte(`{"id":"evt_1","type":"checkout.session.async_payment_failed"}`)
		if err := VerifyWebhookSignature(tampered, header, secret, now, tolerance); err == nil {
			t.Error("expected error for tampered payload")
		}
	})

	t.Run("timestamp inside tolerance accepted", func(t *testing.T) {
		ts := now.Add(-299 * time.Second).Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("stale timestamp rejected even with valid signature", func(t *testing.T) {
		ts := now.Add(-301 * time.Second).Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err == nil {
			t.Error("expected error for stale timestamp")
		}
	})

	t.Run("future timestamp outside tolerance rejected", func(t *testing.T) {
		ts := now.Add(301 * time.Second).Unix()
		header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err == nil {
			t.Error("expected error for future timestamp")
		}
	})

	t.Run("missing timestamp rejected", func(t *testing.T) {
		header := fmt.Sprintf("v1=%s", signPayload(t, payload, secret, now.Unix()))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err == nil {
			t.Error("expected error for missing timestamp")
		}
	})

	t.Run("missing v1 rejected", func(t *testing.T) {
		header := fmt.Sprintf("t=%d", now.Unix())
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err == nil {
			t.Error("expected error for missing v1")
		}
	})

	t.Run("empty header rejected", func(t *testing.T) {
		if err := VerifyWebhookSignature(payload, "", secret, now, tolerance); err == nil {
			t.Error("expected error for empty header")
		}
	})

	t.Run("one valid signature among several accepted", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d,v1=%s,v1=%s", ts, signPayload(t, payload, "rotated_out", ts), signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("whitespace between parts tolerated", func(t *testing.T) {
		ts := now.Unix()
		header := fmt.Sprintf("t=%d, v1=%s", ts, signPayload(t, payload, secret, ts))
		if err := VerifyWebhookSignature(payload, header, secret, now, tolerance); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
